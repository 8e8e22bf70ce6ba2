// Package postgreswrapper opens a pgmirror.Mirror against a real PostgreSQL database for integration tests.
//
// The tests are skipped unless LIBRARY_TEST_PG_DSN is set. ADAPTER_TYPE selects the
// connection driver (pgx, sql or sqlx, default pgx).
package postgreswrapper

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // postgres driver
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/flatfile-library-go/pgmirror"
)

const (
	envDSN         = "LIBRARY_TEST_PG_DSN"
	envAdapterType = "ADAPTER_TYPE"
)

// Wrapper bundles a Mirror on a per-test table with a plain connection for assertions.
type Wrapper struct {
	Mirror pgmirror.Mirror
	db     *sql.DB
}

// CreateWrapperWithTestConfig opens the mirror on a fresh table and registers cleanup on t.
func CreateWrapperWithTestConfig(t testing.TB) Wrapper {
	t.Helper()

	dsn := os.Getenv(envDSN)
	if dsn == "" {
		t.Skipf("%s not set, skipping PostgreSQL integration test", envDSN)
	}

	driver := strings.ToLower(os.Getenv(envAdapterType))
	if driver == "" {
		driver = pgmirror.DriverPGX
	}

	tableName := "library_transactions_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	mirror, closeMirror, err := pgmirror.Open(context.Background(), driver, dsn, pgmirror.WithTableName(tableName))
	require.NoError(t, err, "error connecting the mirror in test setup")

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err, "error connecting to DB in test setup")

	t.Cleanup(func() {
		_, _ = db.Exec(`DROP TABLE IF EXISTS "` + tableName + `"`) // ignore error
		_ = db.Close()                                           // ignore error
		_ = closeMirror()                                        // ignore error
	})

	return Wrapper{Mirror: mirror, db: db}
}

// CountRows returns the number of mirrored transactions.
func (w Wrapper) CountRows(t testing.TB) int {
	t.Helper()

	var cnt int
	row := w.db.QueryRow(`SELECT count(*) FROM "` + w.Mirror.TableName() + `"`)
	require.NoError(t, row.Scan(&cnt), "error counting mirrored rows")

	return cnt
}

// PayloadUserID reads the userId field of the newest payload column.
func (w Wrapper) PayloadUserID(t testing.TB) string {
	t.Helper()

	var userID string
	row := w.db.QueryRow(`SELECT payload->>'userId' FROM "` + w.Mirror.TableName() + `" ORDER BY sequence_number DESC LIMIT 1`)
	require.NoError(t, row.Scan(&userID), "error reading mirrored payload")

	return userID
}
