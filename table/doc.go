// Package table provides Table, an insertion-ordered collection of records with
// linear-scan lookup and an optional fixed capacity.
//
// A Table is owned by a single caller and is not safe for concurrent use.
package table
