package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/flatfile-library-go/cli"
	"github.com/AntonStoeckl/flatfile-library-go/flatfile"
	"github.com/AntonStoeckl/flatfile-library-go/library"
	"github.com/AntonStoeckl/flatfile-library-go/testutil/helper"
)

var fakeNow = time.Date(2024, time.June, 12, 14, 32, 10, 0, time.UTC)

type shellEnv struct {
	dir    string
	spy    *helper.FileIOSpy
	engine *library.Engine
}

func setupShellEnvironment(t *testing.T) shellEnv {
	t.Helper()

	dir := t.TempDir()
	spy := helper.NewFileIOSpy()

	gateway, err := flatfile.NewGateway(dir, flatfile.WithFileIO(spy))
	require.NoError(t, err)

	engine, err := library.NewEngine(gateway, library.WithClock(func() time.Time { return fakeNow }))
	require.NoError(t, err)

	return shellEnv{dir: dir, spy: spy, engine: engine}
}

func runShell(t *testing.T, env shellEnv, input string, options ...cli.Option) string {
	t.Helper()

	out := &bytes.Buffer{}
	options = append([]cli.Option{cli.WithColor(false)}, options...)

	shell, err := cli.NewShell(env.engine, strings.NewReader(input), out, options...)
	require.NoError(t, err)

	require.NoError(t, shell.Run(context.Background()))

	return out.String()
}

func lines(entries ...string) string {
	return strings.Join(entries, "\n") + "\n"
}

func Test_NewShell_RejectsInvalidArguments(t *testing.T) {
	_, err := cli.NewShell(nil, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, cli.ErrNilLibrary)

	env := setupShellEnvironment(t)
	_, err = cli.NewShell(env.engine, strings.NewReader(""), &bytes.Buffer{}, cli.WithOutput("xml"))
	assert.ErrorIs(t, err, cli.ErrUnknownOutput)
}

func Test_Run_ExitAndEndOfInput(t *testing.T) {
	env := setupShellEnvironment(t)

	assert.Contains(t, runShell(t, env, lines("0")), "Exiting... Data saved successfully.")
	assert.Contains(t, runShell(t, env, ""), "===== Library Management System =====")
}

func Test_Run_EndOfInputDuringPrompt(t *testing.T) {
	for name, input := range map[string]string{
		"add book":    lines("1"),
		"add book 2":  lines("1", "Dune", "Frank Herbert"),
		"add user":    lines("2", "u1"),
		"borrow book": lines("3", "u1"),
		"return book": lines("4"),
		"search book": lines("5"),
	} {
		t.Run(name, func(t *testing.T) {
			// arrange
			env := setupShellEnvironment(t)

			// act
			out := runShell(t, env, input)

			// assert
			assert.Equal(t, 0, env.engine.BookCount())
			assert.Equal(t, 0, env.engine.UserCount())
			assert.NoFileExists(t, filepath.Join(env.dir, "books.txt"))
			assert.NoFileExists(t, filepath.Join(env.dir, "users.txt"))
			assert.NoFileExists(t, filepath.Join(env.dir, "transactions.txt"))
			assert.NotContains(t, out, "successfully")
			assert.Equal(t, 1, strings.Count(out, "===== Library Management System ====="))
		})
	}
}

func Test_Run_InvalidChoice(t *testing.T) {
	env := setupShellEnvironment(t)

	out := runShell(t, env, lines("42", "abc", "0"))

	assert.Equal(t, 2, strings.Count(out, "Invalid choice!"))
}

func Test_Run_AddBookAndDisplay(t *testing.T) {
	// arrange
	env := setupShellEnvironment(t)
	input := lines(
		"1", "Dune", "Frank Herbert", "978-0",
		"6",
		"0",
	)

	// act
	out := runShell(t, env, input)

	// assert
	assert.Contains(t, out, "Enter Title: Enter Author: Enter ISBN: Book added and saved successfully!")
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Frank Herbert")
	assert.Contains(t, out, "Available")
	assert.Equal(t, 1, env.engine.BookCount())
}

func Test_Run_BorrowAndReturnFlow(t *testing.T) {
	// arrange
	env := setupShellEnvironment(t)
	input := lines(
		"1", "Dune", "Frank Herbert", "978-0",
		"2", "u1", "Alice", "alice@example.com",
		"3", "u1", "978-0",
		"3", "u1", "978-0",
		"6",
		"4", "u1", "978-0",
		"4", "u1", "978-0",
		"3", "ghost", "978-0",
		"4", "u1", "999",
		"7",
		"0",
	)

	// act
	out := runShell(t, env, input)

	// assert
	assert.Contains(t, out, "User added and saved successfully!")
	assert.Contains(t, out, "Book borrowed successfully!")
	assert.Contains(t, out, "Book already borrowed.")
	assert.Contains(t, out, "Issued")
	assert.Contains(t, out, "Book returned successfully!")
	assert.Contains(t, out, "Book was not borrowed.")
	assert.Contains(t, out, "User not registered! Cannot borrow book.")
	assert.Contains(t, out, "Book not found.")
	assert.Contains(t, out, "Wed Jun 12 14:32:10 2024")
	assert.Contains(t, out, "Borrowed")
	assert.Contains(t, out, "Returned")
}

func Test_Run_EmptyListingsAreInformational(t *testing.T) {
	env := setupShellEnvironment(t)

	out := runShell(t, env, lines("6", "9", "7", "5", "Dune", "0"))

	assert.Contains(t, out, "No books available.")
	assert.Contains(t, out, "No users registered.")
	assert.Contains(t, out, "No transactions recorded yet.")
	assert.Contains(t, out, "Book not found.")
}

func Test_Run_SortBooks(t *testing.T) {
	// arrange
	env := setupShellEnvironment(t)
	input := lines(
		"1", "Zen", "A", "1",
		"1", "Alpha", "B", "2",
		"8",
		"6",
		"0",
	)

	// act
	out := runShell(t, env, input)

	// assert
	assert.Contains(t, out, "Books sorted by title and saved successfully!")
	listing := out[strings.LastIndex(out, "Books sorted by title"):]
	assert.Less(t, strings.Index(listing, "Alpha"), strings.Index(listing, "Zen"))
}

func Test_Run_DisplayTransactionsShowsUndecodableLines(t *testing.T) {
	// arrange
	env := setupShellEnvironment(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(env.dir, "transactions.txt"),
		[]byte("u1|978-0|Borrowed|Wed Jun 12 14:32:10 2024\nhand-written note\n"),
		0o644,
	))

	// act
	out := runShell(t, env, lines("7", "0"))

	// assert
	assert.Contains(t, out, "Borrowed")
	assert.Contains(t, out, "hand-written note")
}

func Test_Run_JSONOutput(t *testing.T) {
	env := setupShellEnvironment(t)

	out := runShell(t, env, lines("2", "u1", "Alice", "alice@example.com", "9", "0"), cli.WithOutput(cli.OutputJSON))

	assert.Contains(t, out, `"id": "u1"`)
	assert.Contains(t, out, `"contact": "alice@example.com"`)
}

func Test_Run_PersistenceFailureIsReported(t *testing.T) {
	// arrange
	env := setupShellEnvironment(t)
	env.spy.FailWrites(true)

	// act
	out := runShell(t, env, lines("1", "Dune", "Frank Herbert", "978-0", "0"))

	// assert
	assert.Contains(t, out, "Saving data failed: ")
	assert.Equal(t, 0, env.engine.BookCount())
}

func Test_Run_StopsWhenTheContextIsCancelled(t *testing.T) {
	env := setupShellEnvironment(t)
	shell, err := cli.NewShell(env.engine, strings.NewReader(lines("6")), &bytes.Buffer{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, shell.Run(ctx), context.Canceled)
}
