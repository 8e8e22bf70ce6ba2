package pgmirror

import (
	"errors"
)

// ErrEmptyTableName is returned by WithTableName for an empty name.
var ErrEmptyTableName = errors.New("empty table name supplied")

// Logger interface for SQL logging, warnings and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring a Mirror.
type Option func(*Mirror) error

// WithTableName sets the table the transactions are written to.
func WithTableName(tableName string) Option {
	return func(m *Mirror) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		m.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Mirror.
//
// Debug level: SQL statements with execution timing
// Error level: failed statements.
func WithLogger(logger Logger) Option {
	return func(m *Mirror) error {
		m.logger = logger
		return nil
	}
}
