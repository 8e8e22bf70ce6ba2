// Package core contains the records of the library: books, users and the
// borrow/return transactions recorded against them.
//
// The types are plain values. Identity keys (Book.ISBN, User.ID) are used for
// lookups but are not guaranteed to be unique; the first match in table order wins.
package core
