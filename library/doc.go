// Package library implements the operations of a small lending library on top of
// flat-file persistence: adding books and users, searching and listing, borrowing
// and returning books, and sorting the catalog.
//
// The Engine owns the in-memory book and user tables. Every mutating operation
// writes the affected file before it reports success, and every borrow or return
// is appended to the transaction log first. Business rule violations are reported
// as sentinel errors and leave all state unchanged:
//
//	tx, err := engine.BorrowBook(ctx, "u-17", "978-0441013593")
//	switch {
//	case errors.Is(err, library.ErrUserNotRegistered):
//	case errors.Is(err, library.ErrBookNotFound):
//	case errors.Is(err, library.ErrAlreadyBorrowed):
//	case err != nil:
//		// persistence failure
//	}
//
// An Engine is meant for one caller running one operation at a time; it is not
// safe for concurrent use.
package library
