package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/AntonStoeckl/flatfile-library-go/library"
	"github.com/AntonStoeckl/flatfile-library-go/pgmirror"
)

// Environment variables read by FromEnv.
const (
	EnvDataDir      = "LIBRARY_DATA_DIR"
	EnvBookCapacity = "LIBRARY_BOOK_CAPACITY"
	EnvUserCapacity = "LIBRARY_USER_CAPACITY"
	EnvLogLevel     = "LIBRARY_LOG_LEVEL"
	EnvOutput       = "LIBRARY_OUTPUT"
	EnvPGDSN        = "LIBRARY_PG_DSN"
	EnvPGDriver     = "LIBRARY_PG_DRIVER"
	EnvPGTable      = "LIBRARY_PG_TABLE"
)

// Output formats for listings.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

const (
	defaultDataDir  = "."
	defaultLogLevel = "warn"
	defaultPGTable  = "library_transactions"
)

var (
	ErrInvalidCapacity = errors.New("capacity must be zero (unbounded) or positive")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidOutput   = errors.New("invalid output format")
	ErrInvalidDriver   = errors.New("invalid postgres driver")
	ErrEmptyDataDir    = errors.New("data directory must not be empty")
	ErrEmptyPGTable    = errors.New("postgres table name must not be empty")
)

// Postgres configures the optional transaction mirror. An empty DSN disables it.
type Postgres struct {
	DSN    string
	Driver string
	Table  string
}

// Enabled reports whether a mirror should be opened.
func (p Postgres) Enabled() bool {
	return p.DSN != ""
}

// Config is the complete command configuration.
type Config struct {
	DataDir      string
	BookCapacity int
	UserCapacity int
	LogLevel     string
	Output       string
	Postgres     Postgres
}

// Default returns the standard configuration: current directory, 100 books, 100 users, table output.
func Default() Config {
	return Config{
		DataDir:      defaultDataDir,
		BookCapacity: library.DefaultBookCapacity,
		UserCapacity: library.DefaultUserCapacity,
		LogLevel:     defaultLogLevel,
		Output:       OutputTable,
		Postgres: Postgres{
			Driver: pgmirror.DriverPGX,
			Table:  defaultPGTable,
		},
	}
}

// FromEnv overlays the environment variables found by lookup (usually os.LookupEnv) on Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvDataDir); ok {
		cfg.DataDir = v
	}

	if v, ok := lookup(EnvBookCapacity); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q", ErrInvalidCapacity, EnvBookCapacity, v)
		}
		cfg.BookCapacity = n
	}

	if v, ok := lookup(EnvUserCapacity); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q", ErrInvalidCapacity, EnvUserCapacity, v)
		}
		cfg.UserCapacity = n
	}

	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}

	if v, ok := lookup(EnvOutput); ok {
		cfg.Output = v
	}

	if v, ok := lookup(EnvPGDSN); ok {
		cfg.Postgres.DSN = v
	}

	if v, ok := lookup(EnvPGDriver); ok {
		cfg.Postgres.Driver = v
	}

	if v, ok := lookup(EnvPGTable); ok {
		cfg.Postgres.Table = v
	}

	return cfg, nil
}

// Validate checks every field and returns all problems at once.
func (c Config) Validate() error {
	var errs []error

	if c.DataDir == "" {
		errs = append(errs, ErrEmptyDataDir)
	}

	if c.BookCapacity < 0 {
		errs = append(errs, fmt.Errorf("%w: books=%d", ErrInvalidCapacity, c.BookCapacity))
	}

	if c.UserCapacity < 0 {
		errs = append(errs, fmt.Errorf("%w: users=%d", ErrInvalidCapacity, c.UserCapacity))
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if c.Output != OutputTable && c.Output != OutputJSON {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidOutput, c.Output))
	}

	if c.Postgres.Enabled() {
		switch c.Postgres.Driver {
		case pgmirror.DriverPGX, pgmirror.DriverSQL, pgmirror.DriverSQLX:
		default:
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidDriver, c.Postgres.Driver))
		}

		if c.Postgres.Table == "" {
			errs = append(errs, ErrEmptyPGTable)
		}
	}

	return errors.Join(errs...)
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error", case-insensitive).
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	return level, nil
}
