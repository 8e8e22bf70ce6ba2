// Package flatfile persists library tables as plain text files, one record per line.
//
// Books and users are written as whole-table snapshots: every write replaces the
// file's entire content. Transactions go to an append-only log that is never
// rewritten or truncated and never loaded into memory as a whole.
//
// Every write opens, writes and closes its file within the call, so no handle stays
// open between operations. The files are assumed to be private to one process.
package flatfile
