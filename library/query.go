package library

import (
	"context"
	"errors"
	"io/fs"

	"github.com/AntonStoeckl/flatfile-library-go/codec"
	"github.com/AntonStoeckl/flatfile-library-go/core"
	"github.com/AntonStoeckl/flatfile-library-go/flatfile"
)

// SearchBooks returns every book whose title, author or ISBN equals keyword exactly.
func (e *Engine) SearchBooks(ctx context.Context, keyword string) ([]core.Book, error) {
	op := e.begin(ctx, opSearchBooks)

	found := e.books.FindAll(func(b core.Book) bool {
		return b.Matches(keyword)
	})

	if len(found) == 0 {
		op.rejected(ErrNoMatchingBooks, logAttrKeyword, keyword)
		return nil, ErrNoMatchingBooks
	}

	op.completed(logAttrKeyword, keyword, logAttrCount, len(found))

	return found, nil
}

// ListBooks returns all books in catalog order.
func (e *Engine) ListBooks(ctx context.Context) ([]core.Book, error) {
	op := e.begin(ctx, opListBooks)

	if e.books.Len() == 0 {
		op.rejected(ErrNoBooks)
		return nil, ErrNoBooks
	}

	op.completed(logAttrCount, e.books.Len())

	return e.books.All(), nil
}

// ListUsers returns all registered users in registration order.
func (e *Engine) ListUsers(ctx context.Context) ([]core.User, error) {
	op := e.begin(ctx, opListUsers)

	if e.users.Len() == 0 {
		op.rejected(ErrNoUsers)
		return nil, ErrNoUsers
	}

	op.completed(logAttrCount, e.users.Len())

	return e.users.All(), nil
}

// ListTransactions reads the transaction log from disk and returns every line, oldest first.
// Lines that cannot be decoded are kept with their text only.
func (e *Engine) ListTransactions(ctx context.Context) ([]core.LogEntry, error) {
	op := e.begin(ctx, opListTransactions)

	lines, err := e.store.ReadLines(flatfile.Transactions)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			op.rejected(ErrNoTransactions)
			return nil, ErrNoTransactions
		}

		return nil, op.failed(err)
	}

	// A missing log and an empty one both mean nothing was recorded yet.
	if len(lines) == 0 {
		op.rejected(ErrNoTransactions)
		return nil, ErrNoTransactions
	}

	entries := make([]core.LogEntry, 0, len(lines))
	undecoded := 0

	for _, line := range lines {
		entry := core.LogEntry{Line: line}

		tx, decodeErr := codec.DecodeTransaction(line)
		if decodeErr == nil {
			entry.Transaction = &tx
		} else {
			undecoded++
		}

		entries = append(entries, entry)
	}

	if undecoded > 0 {
		op.warn(logMsgLogLinesUndecoded, logAttrCount, undecoded)
	}

	op.completed(logAttrCount, len(entries))

	return entries, nil
}
