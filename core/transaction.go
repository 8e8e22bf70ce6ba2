package core

import (
	"time"
)

// Action is what happened to a book in a Transaction.
type Action string

const (
	// ActionBorrowed marks a book leaving the library.
	ActionBorrowed Action = "Borrowed"

	// ActionReturned marks a book coming back.
	ActionReturned Action = "Returned"
)

// IsKnown reports whether the action is one this system writes.
// Older log files may contain other values, which are kept as they are.
func (a Action) IsKnown() bool {
	return a == ActionBorrowed || a == ActionReturned
}

// Transaction is one immutable entry of the borrow/return log.
type Transaction struct {
	UserID    UserIDString    `json:"userId"`
	BookISBN  ISBNString      `json:"bookIsbn"`
	Action    Action          `json:"action"`
	Timestamp TimestampString `json:"timestamp"`
}

// BuildTransaction creates a new Transaction that occurred at the given time.
func BuildTransaction(userID UserIDString, bookISBN ISBNString, action Action, occurredAt time.Time) Transaction {
	return Transaction{
		UserID:    userID,
		BookISBN:  bookISBN,
		Action:    action,
		Timestamp: FormatTimestamp(occurredAt),
	}
}

// LogEntry is one line of the transaction log, exactly as stored.
// Transaction is nil when the line does not hold a well-formed transaction.
type LogEntry struct {
	Line        string       `json:"line"`
	Transaction *Transaction `json:"transaction,omitempty"`
}

// Decoded reports whether the line could be read as a Transaction.
func (e LogEntry) Decoded() bool {
	return e.Transaction != nil
}
