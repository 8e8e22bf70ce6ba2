package core

import (
	"time"
)

// A few alias types instead of full value objects ...

// ISBNString represents the identity key of a book.
type ISBNString = string

// UserIDString represents the identity key of a user.
type UserIDString = string

// TimestampString is a human-readable local time as written to the transaction log.
type TimestampString = string

// TimestampLayout is the ctime(3) layout without the trailing newline, e.g. "Wed Jun 12 14:32:10 2024".
const TimestampLayout = time.ANSIC

// FormatTimestamp renders t in the transaction log layout, using t's own location.
func FormatTimestamp(t time.Time) TimestampString {
	return t.Format(TimestampLayout)
}
