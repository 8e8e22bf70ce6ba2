package pgmirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver for database/sql and sqlx
)

// Supported connection drivers for Open.
const (
	DriverPGX  = "pgx"
	DriverSQL  = "sql"
	DriverSQLX = "sqlx"
)

const (
	sqlDriverName      = "postgres"
	maxConnections     = 4
	minConnections     = 1
	maxConnLifetime    = time.Hour
	maxConnIdleTime    = time.Minute * 5
	healthCheckPeriod  = time.Minute
	connectTimeout     = time.Second * 5
	maxIdleConnections = 1
)

var (
	// ErrUnsupportedDriver is returned by Open for an unknown driver name.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrConnectingFailed is returned by Open when the database cannot be reached.
	ErrConnectingFailed = errors.New("connecting to database failed")
)

// Open connects to dsn with the given driver, makes sure the mirror table exists and returns
// the Mirror together with a function that closes the connection.
func Open(ctx context.Context, driver string, dsn string, options ...Option) (Mirror, func() error, error) {
	var (
		mirror  Mirror
		closeFn func() error
		err     error
	)

	switch driver {
	case DriverPGX:
		mirror, closeFn, err = openPGXPool(ctx, dsn, options...)
	case DriverSQL:
		mirror, closeFn, err = openSQLDB(ctx, dsn, options...)
	case DriverSQLX:
		mirror, closeFn, err = openSQLX(ctx, dsn, options...)
	default:
		return Mirror{}, nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	if err != nil {
		return Mirror{}, nil, err
	}

	if ensureErr := mirror.EnsureTable(ctx); ensureErr != nil {
		return Mirror{}, nil, errors.Join(ensureErr, closeFn())
	}

	return mirror, closeFn, nil
}

func openPGXPool(ctx context.Context, dsn string, options ...Option) (Mirror, func() error, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return Mirror{}, nil, errors.Join(ErrConnectingFailed, err)
	}

	poolConfig.MaxConns = maxConnections
	poolConfig.MinConns = minConnections
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return Mirror{}, nil, errors.Join(ErrConnectingFailed, err)
	}

	closeFn := func() error {
		pool.Close()
		return nil
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return Mirror{}, nil, errors.Join(ErrConnectingFailed, pingErr)
	}

	mirror, err := NewMirrorFromPGXPool(pool, options...)
	if err != nil {
		pool.Close()
		return Mirror{}, nil, err
	}

	return mirror, closeFn, nil
}

func openSQLDB(ctx context.Context, dsn string, options ...Option) (Mirror, func() error, error) {
	db, err := sql.Open(sqlDriverName, dsn)
	if err != nil {
		return Mirror{}, nil, errors.Join(ErrConnectingFailed, err)
	}

	configurePool(db)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		return Mirror{}, nil, errors.Join(ErrConnectingFailed, pingErr, db.Close())
	}

	mirror, err := NewMirrorFromSQLDB(db, options...)
	if err != nil {
		return Mirror{}, nil, errors.Join(err, db.Close())
	}

	return mirror, db.Close, nil
}

func openSQLX(ctx context.Context, dsn string, options ...Option) (Mirror, func() error, error) {
	db, err := sqlx.Open(sqlDriverName, dsn)
	if err != nil {
		return Mirror{}, nil, errors.Join(ErrConnectingFailed, err)
	}

	configurePool(db.DB)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		return Mirror{}, nil, errors.Join(ErrConnectingFailed, pingErr, db.Close())
	}

	mirror, err := NewMirrorFromSQLX(db, options...)
	if err != nil {
		return Mirror{}, nil, errors.Join(err, db.Close())
	}

	return mirror, db.Close, nil
}

func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(maxConnections)
	db.SetMaxIdleConns(maxIdleConnections)
	db.SetConnMaxLifetime(maxConnLifetime)
	db.SetConnMaxIdleTime(maxConnIdleTime)
}
