package pgmirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/flatfile-library-go/core"
	"github.com/AntonStoeckl/flatfile-library-go/pgmirror/internal/adapters"
)

const (
	defaultTableName        = "library_transactions"
	dialectPostgres         = "postgres"
	colSequenceNumber       = "sequence_number"
	colEntryID              = "entry_id"
	colUserID               = "user_id"
	colBookISBN             = "book_isbn"
	colAction               = "action"
	colOccurredAt           = "occurred_at"
	colPayload              = "payload"
	castJsonb               = "?::jsonb"
	logMsgSQLExecuted       = "executed sql for: "
	logMsgBuildQueryFailed  = "failed to build query"
	logMsgDBExecFailed      = "database execution failed"
	logMsgDBQueryFailed     = "database query execution failed"
	logMsgCloseRowsFailed   = "failed to close database rows"
	logAttrError            = "error"
	logAttrQuery            = "query"
	logAttrDurationMS       = "duration_ms"
	logActionEnsureTable    = "ensure table"
	logActionAppend         = "append"
	logActionQuery          = "query"
	createTableSQLStatement = `CREATE TABLE IF NOT EXISTS %s (
	sequence_number BIGSERIAL PRIMARY KEY,
	entry_id UUID NOT NULL,
	user_id TEXT NOT NULL,
	book_isbn TEXT NOT NULL,
	action TEXT NOT NULL,
	occurred_at TEXT NOT NULL,
	payload JSONB NOT NULL
)`
)

var (
	// ErrNilDatabaseConnection is returned by the constructors for a nil connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrBuildingQueryFailed is returned when goqu cannot render a statement.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrEnsuringTableFailed is returned when the mirror table cannot be created.
	ErrEnsuringTableFailed = errors.New("ensuring mirror table failed")

	// ErrAppendingTransactionFailed is returned when the insert fails or inserts nothing.
	ErrAppendingTransactionFailed = errors.New("appending transaction failed")

	// ErrQueryingTransactionsFailed is returned when reading the mirror table fails.
	ErrQueryingTransactionsFailed = errors.New("querying transactions failed")
)

// Mirror writes transactions into a PostgreSQL table.
type Mirror struct {
	db        adapters.DBAdapter
	tableName string
	logger    Logger
}

// NewMirrorFromPGXPool creates a new Mirror using a pgx Pool with optional configuration.
func NewMirrorFromPGXPool(db *pgxpool.Pool, options ...Option) (Mirror, error) {
	if db == nil {
		return Mirror{}, ErrNilDatabaseConnection
	}

	return newMirror(adapters.NewPGXAdapter(db), options...)
}

// NewMirrorFromSQLDB creates a new Mirror using a sql.DB with optional configuration.
func NewMirrorFromSQLDB(db *sql.DB, options ...Option) (Mirror, error) {
	if db == nil {
		return Mirror{}, ErrNilDatabaseConnection
	}

	return newMirror(adapters.NewSQLAdapter(db), options...)
}

// NewMirrorFromSQLX creates a new Mirror using a sqlx.DB with optional configuration.
func NewMirrorFromSQLX(db *sqlx.DB, options ...Option) (Mirror, error) {
	if db == nil {
		return Mirror{}, ErrNilDatabaseConnection
	}

	return newMirror(adapters.NewSQLXAdapter(db), options...)
}

func newMirror(db adapters.DBAdapter, options ...Option) (Mirror, error) {
	m := Mirror{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(&m); err != nil {
			return Mirror{}, err
		}
	}

	return m, nil
}

// TableName returns the name of the mirror table.
func (m Mirror) TableName() string {
	return m.tableName
}

// EnsureTable creates the mirror table if it does not exist yet.
func (m Mirror) EnsureTable(ctx context.Context) error {
	sqlQuery := fmt.Sprintf(createTableSQLStatement, quoteTableName(m.tableName))

	if _, err := m.exec(ctx, sqlQuery, logActionEnsureTable); err != nil {
		return errors.Join(ErrEnsuringTableFailed, err)
	}

	return nil
}

// Append inserts one transaction, together with its JSON representation.
func (m Mirror) Append(ctx context.Context, tx core.Transaction) error {
	sqlQuery, err := m.buildInsertQuery(tx)
	if err != nil {
		return err
	}

	result, err := m.exec(ctx, sqlQuery, logActionAppend)
	if err != nil {
		return errors.Join(ErrAppendingTransactionFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrAppendingTransactionFailed, err)
	}

	if rowsAffected != 1 {
		return fmt.Errorf("%w: %d rows affected", ErrAppendingTransactionFailed, rowsAffected)
	}

	return nil
}

// Query returns all mirrored transactions in insertion order.
func (m Mirror) Query(ctx context.Context) ([]core.Transaction, error) {
	sqlQuery, err := m.buildSelectQuery()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := m.db.Query(ctx, sqlQuery)
	m.logQueryWithDuration(sqlQuery, logActionQuery, time.Since(start))

	if err != nil {
		m.logError(logMsgDBQueryFailed, logAttrError, err.Error(), logAttrQuery, sqlQuery)
		return nil, errors.Join(ErrQueryingTransactionsFailed, err)
	}
	defer m.closeRows(rows)

	var transactions []core.Transaction

	for rows.Next() {
		var tx core.Transaction
		var action string

		if scanErr := rows.Scan(&tx.UserID, &tx.BookISBN, &action, &tx.Timestamp); scanErr != nil {
			return nil, errors.Join(ErrQueryingTransactionsFailed, scanErr)
		}

		tx.Action = core.Action(action)
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrQueryingTransactionsFailed, err)
	}

	return transactions, nil
}

func (m Mirror) buildInsertQuery(tx core.Transaction) (string, error) {
	payloadJSON, err := jsoniter.ConfigFastest.Marshal(tx)
	if err != nil {
		return "", errors.Join(ErrBuildingQueryFailed, err)
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(m.tableName).
		Rows(goqu.Record{
			colEntryID:    uuid.NewString(),
			colUserID:     tx.UserID,
			colBookISBN:   tx.BookISBN,
			colAction:     string(tx.Action),
			colOccurredAt: tx.Timestamp,
			colPayload:    goqu.L(castJsonb, string(payloadJSON)),
		})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		m.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (m Mirror) buildSelectQuery() (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(m.tableName).
		Select(colUserID, colBookISBN, colAction, colOccurredAt).
		Order(goqu.I(colSequenceNumber).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		m.logError(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error())
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// quoteTableName quotes each dot-separated part, so "public.tx" names the same table goqu addresses.
func quoteTableName(tableName string) string {
	parts := strings.Split(tableName, ".")
	for i, part := range parts {
		parts[i] = pq.QuoteIdentifier(part)
	}

	return strings.Join(parts, ".")
}

func (m Mirror) exec(ctx context.Context, sqlQuery string, action string) (adapters.DBResult, error) {
	start := time.Now()
	result, err := m.db.Exec(ctx, sqlQuery)
	m.logQueryWithDuration(sqlQuery, action, time.Since(start))

	if err != nil {
		m.logError(logMsgDBExecFailed, logAttrError, err.Error(), logAttrQuery, sqlQuery)
		return nil, err
	}

	return result, nil
}

func (m Mirror) closeRows(rows adapters.DBRows) {
	if err := rows.Close(); err != nil {
		m.logError(logMsgCloseRowsFailed, logAttrError, err.Error())
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug level if the logger is configured.
func (m Mirror) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if m.logger != nil {
		m.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

func (m Mirror) logError(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Error(msg, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
