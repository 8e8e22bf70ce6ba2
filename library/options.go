package library

import (
	"context"
	"time"

	"github.com/AntonStoeckl/flatfile-library-go/core"
	"github.com/AntonStoeckl/flatfile-library-go/flatfile"
	"github.com/AntonStoeckl/flatfile-library-go/table"
)

const (
	// DefaultBookCapacity is the book table limit used unless configured otherwise.
	DefaultBookCapacity = 100

	// DefaultUserCapacity is the user table limit used unless configured otherwise.
	DefaultUserCapacity = 100
)

// Persistence is what the Engine needs from the flat-file gateway.
type Persistence interface {
	LoadAll(books *table.Table[core.Book], users *table.Table[core.User]) flatfile.LoadReport
	SnapshotWrite(name flatfile.TableName, lines []string) error
	LogAppend(line string) error
	ReadLines(name flatfile.TableName) ([]string, error)
}

// TransactionMirror receives every transaction after it was appended to the log.
type TransactionMirror interface {
	Append(ctx context.Context, tx core.Transaction) error
}

// Logger interface for operational messages, warnings and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging.
// When set, it is used instead of the Logger.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// Option defines a functional option for configuring an Engine.
type Option func(*Engine) error

// WithBookCapacity limits the number of books. Zero means unbounded.
func WithBookCapacity(capacity int) Option {
	return func(e *Engine) error {
		if capacity < 0 {
			return ErrInvalidCapacity
		}

		e.bookCapacity = capacity

		return nil
	}
}

// WithUserCapacity limits the number of users. Zero means unbounded.
func WithUserCapacity(capacity int) Option {
	return func(e *Engine) error {
		if capacity < 0 {
			return ErrInvalidCapacity
		}

		e.userCapacity = capacity

		return nil
	}
}

// WithClock sets the time source for transaction timestamps.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) error {
		e.clock = clock
		return nil
	}
}

// WithTransactionMirror forwards every logged transaction to mirror.
// Mirror failures are logged and never fail the operation.
func WithTransactionMirror(mirror TransactionMirror) Option {
	return func(e *Engine) error {
		e.mirror = mirror
		return nil
	}
}

// WithLogger sets the logger for the Engine.
//
// Info level: completed and rejected operations
// Warn level: skipped log lines, mirror failures
// Error level: persistence failures.
func WithLogger(logger Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger for the Engine.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(e *Engine) error {
		e.contextualLogger = logger
		return nil
	}
}
