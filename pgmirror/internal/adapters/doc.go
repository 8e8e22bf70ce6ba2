// Package adapters hides the differences between pgxpool.Pool, sql.DB and sqlx.DB
// behind the small DBAdapter interface used by the transaction mirror.
package adapters
