package library

import (
	"context"

	"github.com/AntonStoeckl/flatfile-library-go/codec"
	"github.com/AntonStoeckl/flatfile-library-go/core"
)

// lendingState is what a borrow or return decision needs to know about the tables.
type lendingState struct {
	userIsRegistered bool
	bookExists       bool
	bookIsAvailable  bool
	bookIndex        int // first book with the ISBN, -1 if none
}

// project looks up the user and the first book with the given ISBN.
func (e *Engine) project(userID string, isbn string) lendingState {
	_, userFound := e.users.FindFirst(func(u core.User) bool {
		return u.ID == userID
	})

	s := lendingState{
		userIsRegistered: userFound,
		bookIndex:        -1,
	}

	if !userFound {
		return s
	}

	i, bookFound := e.books.FindFirst(func(b core.Book) bool {
		return b.ISBN == isbn
	})

	if bookFound {
		s.bookExists = true
		s.bookIndex = i
		s.bookIsAvailable = e.books.At(i).Available
	}

	return s
}

// decideBorrow checks the borrow preconditions in order: user, book, availability.
func decideBorrow(s lendingState) error {
	switch {
	case !s.userIsRegistered:
		return ErrUserNotRegistered
	case !s.bookExists:
		return ErrBookNotFound
	case !s.bookIsAvailable:
		return ErrAlreadyBorrowed
	}

	return nil
}

// decideReturn checks the return preconditions in order: user, book, not available.
func decideReturn(s lendingState) error {
	switch {
	case !s.userIsRegistered:
		return ErrUserNotRegistered
	case !s.bookExists:
		return ErrBookNotFound
	case s.bookIsAvailable:
		return ErrNotBorrowed
	}

	return nil
}

// BorrowBook lends the first book with the given ISBN to a registered user.
//
// The Borrowed transaction is durable in the log before the book is flagged as unavailable
// and the book file is rewritten. If that rewrite fails, the book stays unavailable in memory
// (matching the log) and ErrPersistenceFailed is returned together with the transaction.
func (e *Engine) BorrowBook(ctx context.Context, userID string, isbn string) (core.Transaction, error) {
	op := e.begin(ctx, opBorrowBook)
	s := e.project(userID, isbn)

	if err := decideBorrow(s); err != nil {
		op.rejected(err, logAttrUserID, userID, logAttrISBN, isbn)
		return core.Transaction{}, err
	}

	tx := core.BuildTransaction(userID, isbn, core.ActionBorrowed, e.clock())

	return e.record(op, s.bookIndex, tx, false)
}

// ReturnBook takes back the first book with the given ISBN from a registered user.
// It mirrors BorrowBook, see there for the persistence order.
//
// The returning user is not checked against the borrowing user.
func (e *Engine) ReturnBook(ctx context.Context, userID string, isbn string) (core.Transaction, error) {
	op := e.begin(ctx, opReturnBook)
	s := e.project(userID, isbn)

	if err := decideReturn(s); err != nil {
		op.rejected(err, logAttrUserID, userID, logAttrISBN, isbn)
		return core.Transaction{}, err
	}

	tx := core.BuildTransaction(userID, isbn, core.ActionReturned, e.clock())

	return e.record(op, s.bookIndex, tx, true)
}

func (e *Engine) record(op operation, bookIndex int, tx core.Transaction, available bool) (core.Transaction, error) {
	if err := e.store.LogAppend(codec.EncodeTransaction(tx)); err != nil {
		return core.Transaction{}, op.failed(err, logAttrUserID, tx.UserID, logAttrISBN, tx.BookISBN)
	}

	e.mirrorTransaction(op, tx)

	book := e.books.At(bookIndex)
	book.Available = available
	e.books.Set(bookIndex, book)

	if err := e.snapshotBooks(e.books.All()); err != nil {
		return tx, op.failed(err, logAttrUserID, tx.UserID, logAttrISBN, tx.BookISBN)
	}

	op.completed(logAttrUserID, tx.UserID, logAttrISBN, tx.BookISBN)

	return tx, nil
}

func (e *Engine) mirrorTransaction(op operation, tx core.Transaction) {
	if e.mirror == nil {
		return
	}

	if err := e.mirror.Append(op.ctx, tx); err != nil {
		op.warn(logMsgMirrorFailed, logAttrUserID, tx.UserID, logAttrISBN, tx.BookISBN, logAttrError, err.Error())
	}
}
