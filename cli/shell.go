package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AntonStoeckl/flatfile-library-go/core"
	"github.com/AntonStoeckl/flatfile-library-go/library"
)

const (
	menu = "\n===== Library Management System =====\n" +
		"1. Add Book\n2. Add User\n3. Borrow Book\n4. Return Book\n" +
		"5. Search Book\n6. Display Books\n7. Display Transactions\n" +
		"8. Sort Books by Title\n9. Display Users\n0. Exit\n"

	promptChoice   = "Enter choice: "
	promptTitle    = "Enter Title: "
	promptAuthor   = "Enter Author: "
	promptISBN     = "Enter ISBN: "
	promptBookISBN = "Enter Book ISBN: "
	promptUserID   = "Enter User ID: "
	promptName     = "Enter Name: "
	promptContact  = "Enter Contact: "
	promptKeyword  = "Enter Title/Author/ISBN to search: "

	msgBookAdded         = "Book added and saved successfully!"
	msgBookStorageFull   = "Book storage full!"
	msgUserAdded         = "User added and saved successfully!"
	msgUserStorageFull   = "User storage full!"
	msgBookBorrowed      = "Book borrowed successfully!"
	msgBookReturned      = "Book returned successfully!"
	msgCannotBorrow      = "User not registered! Cannot borrow book."
	msgCannotReturn      = "User not registered! Cannot return book."
	msgAlreadyBorrowed   = "Book already borrowed."
	msgNotBorrowed       = "Book was not borrowed."
	msgBookNotFound      = "Book not found."
	msgNoBooks           = "No books available."
	msgNoUsers           = "No users registered."
	msgNoTransactions    = "No transactions recorded yet."
	msgSorted            = "Books sorted by title and saved successfully!"
	msgExiting           = "Exiting... Data saved successfully."
	msgInvalidChoice     = "Invalid choice!"
	msgPersistenceFailed = "Saving data failed: "
	msgLogStateUnclear   = "The transaction was logged, but saving the book list failed: "
)

const (
	choiceExit             = "0"
	choiceAddBook          = "1"
	choiceAddUser          = "2"
	choiceBorrowBook       = "3"
	choiceReturnBook       = "4"
	choiceSearchBook       = "5"
	choiceDisplayBooks     = "6"
	choiceDisplayTransacts = "7"
	choiceSortBooks        = "8"
	choiceDisplayUsers     = "9"
)

// Library is the part of the library Engine the Shell drives.
type Library interface {
	AddBook(ctx context.Context, title string, author string, isbn string) (core.Book, error)
	AddUser(ctx context.Context, id string, name string, contact string) (core.User, error)
	SearchBooks(ctx context.Context, keyword string) ([]core.Book, error)
	BorrowBook(ctx context.Context, userID string, isbn string) (core.Transaction, error)
	ReturnBook(ctx context.Context, userID string, isbn string) (core.Transaction, error)
	ListBooks(ctx context.Context) ([]core.Book, error)
	ListUsers(ctx context.Context) ([]core.User, error)
	ListTransactions(ctx context.Context) ([]core.LogEntry, error)
	SortBooksByTitle(ctx context.Context) error
}

// ErrNilLibrary is returned by NewShell without a Library.
var ErrNilLibrary = errors.New("nil library supplied")

// errEndOfInput ends Run when the input is exhausted in the middle of an operation.
var errEndOfInput = errors.New("end of input")

// Shell is the interactive menu loop.
type Shell struct {
	lib    Library
	in     *bufio.Scanner
	out    io.Writer
	output string
	status statusPrinter
}

// NewShell creates a Shell reading from in and writing to out.
func NewShell(lib Library, in io.Reader, out io.Writer, options ...Option) (*Shell, error) {
	if lib == nil {
		return nil, ErrNilLibrary
	}

	s := &Shell{
		lib:    lib,
		in:     bufio.NewScanner(in),
		out:    out,
		output: OutputTable,
		status: newStatusPrinter(),
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Run shows the menu until the user chooses Exit, the input ends or ctx is cancelled.
// Operation failures are reported to the user and do not end the loop.
// Only output write errors and context cancellation are returned.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := fmt.Fprint(s.out, menu); err != nil {
			return err
		}

		choice, ok := s.ask(promptChoice)
		if !ok {
			return nil
		}

		choice = strings.TrimSpace(choice)
		if choice == choiceExit {
			return s.info(msgExiting)
		}

		if err := s.dispatch(ctx, choice); err != nil {
			if errors.Is(err, errEndOfInput) {
				return nil
			}

			return err
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case choiceAddBook:
		return s.addBook(ctx)
	case choiceAddUser:
		return s.addUser(ctx)
	case choiceBorrowBook:
		return s.borrowBook(ctx)
	case choiceReturnBook:
		return s.returnBook(ctx)
	case choiceSearchBook:
		return s.searchBook(ctx)
	case choiceDisplayBooks:
		return s.displayBooks(ctx)
	case choiceDisplayTransacts:
		return s.displayTransactions(ctx)
	case choiceSortBooks:
		return s.sortBooks(ctx)
	case choiceDisplayUsers:
		return s.displayUsers(ctx)
	default:
		return s.failure(msgInvalidChoice)
	}
}

func (s *Shell) addBook(ctx context.Context) error {
	answers, ok := s.askAll(promptTitle, promptAuthor, promptISBN)
	if !ok {
		return errEndOfInput
	}

	_, err := s.lib.AddBook(ctx, answers[0], answers[1], answers[2])

	switch {
	case err == nil:
		return s.success(msgBookAdded)
	case errors.Is(err, library.ErrCapacityExceeded):
		return s.failure(msgBookStorageFull)
	default:
		return s.failure(msgPersistenceFailed + err.Error())
	}
}

func (s *Shell) addUser(ctx context.Context) error {
	answers, ok := s.askAll(promptUserID, promptName, promptContact)
	if !ok {
		return errEndOfInput
	}

	_, err := s.lib.AddUser(ctx, strings.TrimSpace(answers[0]), answers[1], answers[2])

	switch {
	case err == nil:
		return s.success(msgUserAdded)
	case errors.Is(err, library.ErrCapacityExceeded):
		return s.failure(msgUserStorageFull)
	default:
		return s.failure(msgPersistenceFailed + err.Error())
	}
}

func (s *Shell) borrowBook(ctx context.Context) error {
	userID, isbn, ok := s.askLending()
	if !ok {
		return errEndOfInput
	}

	tx, err := s.lib.BorrowBook(ctx, userID, isbn)

	switch {
	case err == nil:
		return s.success(msgBookBorrowed)
	case errors.Is(err, library.ErrUserNotRegistered):
		return s.failure(msgCannotBorrow)
	default:
		return s.lendingFailure(tx, err)
	}
}

func (s *Shell) returnBook(ctx context.Context) error {
	userID, isbn, ok := s.askLending()
	if !ok {
		return errEndOfInput
	}

	tx, err := s.lib.ReturnBook(ctx, userID, isbn)

	switch {
	case err == nil:
		return s.success(msgBookReturned)
	case errors.Is(err, library.ErrUserNotRegistered):
		return s.failure(msgCannotReturn)
	default:
		return s.lendingFailure(tx, err)
	}
}

func (s *Shell) askLending() (string, string, bool) {
	answers, ok := s.askAll(promptUserID, promptBookISBN)
	if !ok {
		return "", "", false
	}

	return strings.TrimSpace(answers[0]), strings.TrimSpace(answers[1]), true
}

func (s *Shell) lendingFailure(tx core.Transaction, err error) error {
	switch {
	case errors.Is(err, library.ErrBookNotFound):
		return s.failure(msgBookNotFound)
	case errors.Is(err, library.ErrAlreadyBorrowed):
		return s.failure(msgAlreadyBorrowed)
	case errors.Is(err, library.ErrNotBorrowed):
		return s.failure(msgNotBorrowed)
	case tx != (core.Transaction{}):
		return s.failure(msgLogStateUnclear + err.Error())
	default:
		return s.failure(msgPersistenceFailed + err.Error())
	}
}

func (s *Shell) searchBook(ctx context.Context) error {
	keyword, ok := s.ask(promptKeyword)
	if !ok {
		return errEndOfInput
	}

	books, err := s.lib.SearchBooks(ctx, keyword)
	if err != nil {
		return s.queryFailure(err, msgBookNotFound)
	}

	return s.render(books, bookHeaders, bookRows(books))
}

func (s *Shell) displayBooks(ctx context.Context) error {
	books, err := s.lib.ListBooks(ctx)
	if err != nil {
		return s.queryFailure(err, msgNoBooks)
	}

	return s.render(books, bookHeaders, bookRows(books))
}

func (s *Shell) displayUsers(ctx context.Context) error {
	users, err := s.lib.ListUsers(ctx)
	if err != nil {
		return s.queryFailure(err, msgNoUsers)
	}

	return s.render(users, userHeaders, userRows(users))
}

func (s *Shell) displayTransactions(ctx context.Context) error {
	entries, err := s.lib.ListTransactions(ctx)
	if err != nil {
		return s.queryFailure(err, msgNoTransactions)
	}

	return s.render(entries, transactionHeaders, transactionRows(entries))
}

func (s *Shell) sortBooks(ctx context.Context) error {
	if err := s.lib.SortBooksByTitle(ctx); err != nil {
		return s.failure(msgPersistenceFailed + err.Error())
	}

	return s.success(msgSorted)
}

func (s *Shell) queryFailure(err error, emptyMsg string) error {
	if library.IsResultState(err) {
		return s.info(emptyMsg)
	}

	return s.failure(msgPersistenceFailed + err.Error())
}

func (s *Shell) render(v any, headers []string, rows [][]string) error {
	if s.output == OutputJSON {
		return renderJSON(s.out, v)
	}

	return renderTable(s.out, headers, rows)
}

// ask prints prompt and reads one line. ok is false once the input is exhausted.
func (s *Shell) ask(prompt string) (string, bool) {
	_, _ = fmt.Fprint(s.out, prompt) // write errors surface on the next status line

	if !s.in.Scan() {
		return "", false
	}

	return s.in.Text(), true
}

// askAll asks every prompt in turn and stops at the first one left unanswered.
func (s *Shell) askAll(prompts ...string) ([]string, bool) {
	answers := make([]string, 0, len(prompts))

	for _, prompt := range prompts {
		answer, ok := s.ask(prompt)
		if !ok {
			return nil, false
		}
		answers = append(answers, answer)
	}

	return answers, true
}

func (s *Shell) success(msg string) error {
	_, err := s.status.success.Fprintln(s.out, msg)
	return err
}

func (s *Shell) info(msg string) error {
	_, err := s.status.info.Fprintln(s.out, msg)
	return err
}

func (s *Shell) failure(msg string) error {
	_, err := s.status.failure.Fprintln(s.out, msg)
	return err
}
