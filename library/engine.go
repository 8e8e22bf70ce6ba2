package library

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/flatfile-library-go/codec"
	"github.com/AntonStoeckl/flatfile-library-go/core"
	"github.com/AntonStoeckl/flatfile-library-go/flatfile"
	"github.com/AntonStoeckl/flatfile-library-go/table"
)

const (
	opAddBook               = "add book"
	opAddUser               = "add user"
	opSearchBooks           = "search books"
	opBorrowBook            = "borrow book"
	opReturnBook            = "return book"
	opListBooks             = "list books"
	opListUsers             = "list users"
	opListTransactions      = "list transactions"
	opSortBooksByTitle      = "sort books by title"
	logMsgLoaded            = "library loaded"
	logMsgCompleted         = "library operation completed: "
	logMsgRejected          = "library operation rejected: "
	logMsgFailed            = "library operation failed: "
	logMsgMirrorFailed      = "mirroring transaction failed"
	logMsgLogLinesUndecoded = "transaction log lines kept undecoded"
	logAttrOperationID      = "operation_id"
	logAttrReason           = "reason"
	logAttrError            = "error"
	logAttrBooks            = "books"
	logAttrUsers            = "users"
	logAttrSkippedBooks     = "skipped_books"
	logAttrSkippedUsers     = "skipped_users"
	logAttrUserID           = "user_id"
	logAttrISBN             = "isbn"
	logAttrKeyword          = "keyword"
	logAttrCount            = "count"
)

// Engine runs the library operations against the book and user tables it owns.
type Engine struct {
	store            Persistence
	books            *table.Table[core.Book]
	users            *table.Table[core.User]
	bookCapacity     int
	userCapacity     int
	clock            func() time.Time
	mirror           TransactionMirror
	logger           Logger
	contextualLogger ContextualLogger
}

// NewEngine creates an Engine and loads books and users through store.
// Missing or unreadable data files result in empty tables.
func NewEngine(store Persistence, options ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrNilPersistence
	}

	e := &Engine{
		store:        store,
		bookCapacity: DefaultBookCapacity,
		userCapacity: DefaultUserCapacity,
		clock:        time.Now,
	}

	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}

	e.books = table.New[core.Book](e.bookCapacity)
	e.users = table.New[core.User](e.userCapacity)

	report := store.LoadAll(e.books, e.users)

	e.logInfo(
		context.Background(),
		logMsgLoaded,
		logAttrBooks, report.Books.Loaded,
		logAttrUsers, report.Users.Loaded,
		logAttrSkippedBooks, report.Books.Skipped,
		logAttrSkippedUsers, report.Users.Skipped,
	)

	return e, nil
}

// BookCount returns the number of books in the catalog.
func (e *Engine) BookCount() int {
	return e.books.Len()
}

// UserCount returns the number of registered users.
func (e *Engine) UserCount() int {
	return e.users.Len()
}

func (e *Engine) snapshotBooks(books []core.Book) error {
	return e.store.SnapshotWrite(flatfile.Books, encodeAll(books, codec.EncodeBook))
}

func (e *Engine) snapshotUsers(users []core.User) error {
	return e.store.SnapshotWrite(flatfile.Users, encodeAll(users, codec.EncodeUser))
}

func encodeAll[T any](records []T, encode func(T) string) []string {
	lines := make([]string, 0, len(records))
	for _, record := range records {
		lines = append(lines, encode(record))
	}

	return lines
}

// operation carries the logging context of one Engine call.
type operation struct {
	engine *Engine
	ctx    context.Context
	name   string
	id     string
}

func (e *Engine) begin(ctx context.Context, name string) operation {
	return operation{
		engine: e,
		ctx:    ctx,
		name:   name,
		id:     uuid.NewString(),
	}
}

func (op operation) completed(args ...any) {
	op.engine.logInfo(op.ctx, logMsgCompleted+op.name, append([]any{logAttrOperationID, op.id}, args...)...)
}

func (op operation) rejected(reason error, args ...any) {
	args = append([]any{logAttrOperationID, op.id, logAttrReason, reason.Error()}, args...)
	op.engine.logInfo(op.ctx, logMsgRejected+op.name, args...)
}

func (op operation) failed(err error, args ...any) error {
	args = append([]any{logAttrOperationID, op.id, logAttrError, err.Error()}, args...)
	op.engine.logError(op.ctx, logMsgFailed+op.name, args...)

	return errors.Join(ErrPersistenceFailed, err)
}

func (op operation) warn(msg string, args ...any) {
	op.engine.logWarn(op.ctx, msg, append([]any{logAttrOperationID, op.id}, args...)...)
}

func (e *Engine) logInfo(ctx context.Context, msg string, args ...any) {
	switch {
	case e.contextualLogger != nil:
		e.contextualLogger.InfoContext(ctx, msg, args...)
	case e.logger != nil:
		e.logger.Info(msg, args...)
	}
}

func (e *Engine) logWarn(ctx context.Context, msg string, args ...any) {
	switch {
	case e.contextualLogger != nil:
		e.contextualLogger.WarnContext(ctx, msg, args...)
	case e.logger != nil:
		e.logger.Warn(msg, args...)
	}
}

func (e *Engine) logError(ctx context.Context, msg string, args ...any) {
	switch {
	case e.contextualLogger != nil:
		e.contextualLogger.ErrorContext(ctx, msg, args...)
	case e.logger != nil:
		e.logger.Error(msg, args...)
	}
}
