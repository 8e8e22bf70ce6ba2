package library_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/flatfile-library-go/core"
	"github.com/AntonStoeckl/flatfile-library-go/flatfile"
	"github.com/AntonStoeckl/flatfile-library-go/library"
	"github.com/AntonStoeckl/flatfile-library-go/testutil/helper"
)

var fakeNow = time.Date(2024, time.June, 12, 14, 32, 10, 0, time.UTC)

const fakeTimestamp = "Wed Jun 12 14:32:10 2024"

type testEnv struct {
	ctx    context.Context
	dir    string
	spy    *helper.FileIOSpy
	logs   *helper.TestLogHandler
	engine *library.Engine
}

func setupTestEnvironment(t *testing.T, options ...library.Option) testEnv {
	t.Helper()

	return setupTestEnvironmentIn(t, t.TempDir(), options...)
}

func setupTestEnvironmentIn(t *testing.T, dir string, options ...library.Option) testEnv {
	t.Helper()

	spy := helper.NewFileIOSpy()
	logger, logs := helper.NewTestLogger()

	gateway, err := flatfile.NewGateway(dir, flatfile.WithFileIO(spy))
	require.NoError(t, err)

	options = append([]library.Option{
		library.WithClock(func() time.Time { return fakeNow }),
		library.WithLogger(logger),
	}, options...)

	engine, err := library.NewEngine(gateway, options...)
	require.NoError(t, err)

	return testEnv{
		ctx:    context.Background(),
		dir:    dir,
		spy:    spy,
		logs:   logs,
		engine: engine,
	}
}

func (env testEnv) path(file string) string {
	return filepath.Join(env.dir, file)
}

func (env testEnv) readFile(t *testing.T, file string) string {
	t.Helper()

	content, err := os.ReadFile(env.path(file))
	if errors.Is(err, os.ErrNotExist) {
		return ""
	}
	require.NoError(t, err)

	return string(content)
}

func givenBook(t *testing.T, env testEnv, title string, author string, isbn string) {
	t.Helper()

	_, err := env.engine.AddBook(env.ctx, title, author, isbn)
	require.NoError(t, err)
}

func givenUser(t *testing.T, env testEnv, id string) {
	t.Helper()

	_, err := env.engine.AddUser(env.ctx, id, "Name of "+id, id+"@example.org")
	require.NoError(t, err)
}

func givenBorrowed(t *testing.T, env testEnv, userID string, isbn string) {
	t.Helper()

	_, err := env.engine.BorrowBook(env.ctx, userID, isbn)
	require.NoError(t, err)
}

func writeFile(t *testing.T, dir string, file string, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
}

type mirrorSpy struct {
	mu           sync.Mutex
	transactions []core.Transaction
	err          error
}

func (m *mirrorSpy) Append(_ context.Context, tx core.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	m.transactions = append(m.transactions, tx)

	return nil
}

type contextualLoggerSpy struct {
	mu       sync.Mutex
	messages []string
}

func (l *contextualLoggerSpy) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *contextualLoggerSpy) DebugContext(_ context.Context, msg string, _ ...any) { l.record(msg) }
func (l *contextualLoggerSpy) InfoContext(_ context.Context, msg string, _ ...any)  { l.record(msg) }
func (l *contextualLoggerSpy) WarnContext(_ context.Context, msg string, _ ...any)  { l.record(msg) }
func (l *contextualLoggerSpy) ErrorContext(_ context.Context, msg string, _ ...any) { l.record(msg) }
