// Package pgmirror copies library transactions into a PostgreSQL table.
//
// The flat transaction log stays the source of truth; the mirror exists so that
// lending history can be queried with SQL. A Mirror can be built on top of a
// pgxpool.Pool, a sql.DB (lib/pq driver) or a sqlx.DB:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	mirror, err := pgmirror.NewMirrorFromPGXPool(pool, pgmirror.WithTableName("lending_history"))
//	if err != nil {
//		// handle error
//	}
//	_ = mirror.EnsureTable(ctx)
//
//	engine, err := library.NewEngine(gateway, library.WithTransactionMirror(mirror))
package pgmirror
