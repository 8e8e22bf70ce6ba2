package library

import (
	"context"
	"strings"

	"github.com/AntonStoeckl/flatfile-library-go/core"
)

// SortBooksByTitle sorts the catalog by title (byte-wise, case-sensitive, ascending) and rewrites the book file.
// Books with equal titles keep their relative order. The file is written even if nothing moved.
func (e *Engine) SortBooksByTitle(ctx context.Context) error {
	op := e.begin(ctx, opSortBooksByTitle)

	e.books.SortStable(func(a, b core.Book) int {
		return strings.Compare(a.Title, b.Title)
	})

	if err := e.snapshotBooks(e.books.All()); err != nil {
		return op.failed(err)
	}

	op.completed(logAttrCount, e.books.Len())

	return nil
}
