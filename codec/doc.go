// Package codec encodes library records to single pipe-delimited text lines and decodes them back.
//
// Line formats:
//
//	book:        title|author|isbn|available(1|0)
//	user:        id|name|contact
//	transaction: userId|bookIsbn|action|timestamp
//
// Values are not escaped. Decoding splits on the first n-1 delimiters and hands the
// remainder of the line to the last field verbatim, so a delimiter inside any but the
// last field shifts the following fields. This matches the files written by earlier
// versions and is kept for compatibility.
package codec
