package library

import (
	"context"

	"github.com/AntonStoeckl/flatfile-library-go/core"
)

// AddBook adds an available book to the end of the catalog and rewrites the book file.
// ISBNs are not checked for uniqueness.
func (e *Engine) AddBook(ctx context.Context, title string, author string, isbn string) (core.Book, error) {
	op := e.begin(ctx, opAddBook)

	if e.books.Full() {
		op.rejected(ErrCapacityExceeded, logAttrISBN, isbn)
		return core.Book{}, ErrCapacityExceeded
	}

	book := core.BuildBook(title, author, isbn)

	// The file is written first so that a failed write leaves the table untouched.
	if err := e.snapshotBooks(append(e.books.All(), book)); err != nil {
		return core.Book{}, op.failed(err, logAttrISBN, isbn)
	}

	if err := e.books.Add(book); err != nil {
		return core.Book{}, err
	}

	op.completed(logAttrISBN, isbn, logAttrBooks, e.books.Len())

	return book, nil
}

// AddUser registers a user at the end of the user table and rewrites the user file.
// User ids are not checked for uniqueness.
func (e *Engine) AddUser(ctx context.Context, id string, name string, contact string) (core.User, error) {
	op := e.begin(ctx, opAddUser)

	if e.users.Full() {
		op.rejected(ErrCapacityExceeded, logAttrUserID, id)
		return core.User{}, ErrCapacityExceeded
	}

	user := core.BuildUser(id, name, contact)

	if err := e.snapshotUsers(append(e.users.All(), user)); err != nil {
		return core.User{}, op.failed(err, logAttrUserID, id)
	}

	if err := e.users.Add(user); err != nil {
		return core.User{}, err
	}

	op.completed(logAttrUserID, id, logAttrUsers, e.users.Len())

	return user, nil
}
