package flatfile

import (
	"errors"
)

// ErrEmptyFileName is returned by WithFileNames for a blank file name.
var ErrEmptyFileName = errors.New("empty file name supplied")

// ErrNilFileIO is returned by WithFileIO for a nil FileIO.
var ErrNilFileIO = errors.New("nil file io supplied")

// Logger interface for operational messages, warnings and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring a Gateway.
type Option func(*Gateway) error

// WithLogger sets the logger for the Gateway.
//
// Debug level: every file read and write with its line count
// Warn level: skipped lines and data files that could not be read at startup
// Error level: failed writes.
func WithLogger(logger Logger) Option {
	return func(g *Gateway) error {
		g.logger = logger
		return nil
	}
}

// WithFileIO replaces the os backed file access, e.g. to inject failures in tests.
func WithFileIO(fileIO FileIO) Option {
	return func(g *Gateway) error {
		if fileIO == nil {
			return ErrNilFileIO
		}

		g.fileIO = fileIO

		return nil
	}
}

// WithFileNames overrides the default file names (books.txt, users.txt, transactions.txt).
func WithFileNames(books string, users string, transactions string) Option {
	return func(g *Gateway) error {
		if books == "" || users == "" || transactions == "" {
			return ErrEmptyFileName
		}

		g.fileNames = map[TableName]string{
			Books:        books,
			Users:        users,
			Transactions: transactions,
		}

		return nil
	}
}
