package library

import (
	"errors"

	"github.com/AntonStoeckl/flatfile-library-go/table"
)

var (
	// ErrCapacityExceeded is returned when a book or user is added to a full table.
	ErrCapacityExceeded = table.ErrCapacityExceeded

	// ErrUserNotRegistered is returned when a borrow or return names an unknown user id.
	ErrUserNotRegistered = errors.New("user is not registered")

	// ErrBookNotFound is returned when a borrow or return names an unknown ISBN.
	ErrBookNotFound = errors.New("book not found")

	// ErrAlreadyBorrowed is returned when borrowing a book that is not available.
	ErrAlreadyBorrowed = errors.New("book is already borrowed")

	// ErrNotBorrowed is returned when returning a book that is available.
	ErrNotBorrowed = errors.New("book was not borrowed")

	// ErrPersistenceFailed is joined with the underlying I/O error when a data file could not be written or read.
	ErrPersistenceFailed = errors.New("persisting library data failed")

	// ErrNilPersistence is returned by NewEngine without a Persistence.
	ErrNilPersistence = errors.New("nil persistence supplied")

	// ErrInvalidCapacity is returned for a negative table capacity.
	ErrInvalidCapacity = errors.New("capacity must not be negative")
)

// Result states: a query found nothing. These are not failures.
var (
	ErrNoBooks         = errors.New("no books available")
	ErrNoUsers         = errors.New("no users registered")
	ErrNoMatchingBooks = errors.New("no matching book found")
	ErrNoTransactions  = errors.New("no transactions recorded yet")
)

// IsResultState reports whether err only says that a query had nothing to return.
func IsResultState(err error) bool {
	return errors.Is(err, ErrNoBooks) ||
		errors.Is(err, ErrNoUsers) ||
		errors.Is(err, ErrNoMatchingBooks) ||
		errors.Is(err, ErrNoTransactions)
}
