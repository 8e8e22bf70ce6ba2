// Command library is the interactive library records system.
//
// Books, users and the transaction log are kept as pipe-delimited files in the data
// directory. When a PostgreSQL DSN is configured, every transaction is copied into a
// database table as well.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/AntonStoeckl/flatfile-library-go/cli"
	"github.com/AntonStoeckl/flatfile-library-go/config"
	"github.com/AntonStoeckl/flatfile-library-go/flatfile"
	"github.com/AntonStoeckl/flatfile-library-go/library"
	"github.com/AntonStoeckl/flatfile-library-go/pgmirror"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "library: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv(os.LookupEnv)
	if err != nil {
		return err
	}

	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding books.txt, users.txt and transactions.txt")
	flag.IntVar(&cfg.BookCapacity, "books", cfg.BookCapacity, "maximum number of books, 0 for unbounded")
	flag.IntVar(&cfg.UserCapacity, "users", cfg.UserCapacity, "maximum number of users, 0 for unbounded")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	flag.StringVar(&cfg.Output, "output", cfg.Output, "listing format: table or json")
	flag.StringVar(&cfg.Postgres.DSN, "pg-dsn", cfg.Postgres.DSN, "PostgreSQL DSN for the transaction mirror (empty disables it)")
	flag.StringVar(&cfg.Postgres.Driver, "pg-driver", cfg.Postgres.Driver, "PostgreSQL driver: pgx, sql or sqlx")
	flag.StringVar(&cfg.Postgres.Table, "pg-table", cfg.Postgres.Table, "PostgreSQL table for the transaction mirror")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.SlogLevel() // validated above
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()

	gateway, err := flatfile.NewGateway(cfg.DataDir, flatfile.WithLogger(logger))
	if err != nil {
		return err
	}

	options := []library.Option{
		library.WithBookCapacity(cfg.BookCapacity),
		library.WithUserCapacity(cfg.UserCapacity),
		library.WithContextualLogger(logger),
	}

	if cfg.Postgres.Enabled() {
		mirror, closeMirror, mirrorErr := pgmirror.Open(
			ctx,
			cfg.Postgres.Driver,
			cfg.Postgres.DSN,
			pgmirror.WithTableName(cfg.Postgres.Table),
			pgmirror.WithLogger(logger),
		)
		if mirrorErr != nil {
			return mirrorErr
		}
		defer func() {
			if closeErr := closeMirror(); closeErr != nil {
				logger.Warn("closing the transaction mirror failed", "error", closeErr.Error())
			}
		}()

		options = append(options, library.WithTransactionMirror(mirror))
	}

	engine, err := library.NewEngine(gateway, options...)
	if err != nil {
		return err
	}

	shell, err := cli.NewShell(engine, os.Stdin, os.Stdout, cli.WithOutput(cfg.Output))
	if err != nil {
		return err
	}

	return shell.Run(ctx)
}
