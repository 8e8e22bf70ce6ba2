package codec

import (
	"github.com/AntonStoeckl/flatfile-library-go/core"
)

const (
	bookFieldCount        = 4
	userFieldCount        = 3
	transactionFieldCount = 4
	availableTrue         = "1"
	availableFalse        = "0"
)

// EncodeBook renders a book as title|author|isbn|available.
func EncodeBook(b core.Book) string {
	available := availableFalse
	if b.Available {
		available = availableTrue
	}

	return join(b.Title, b.Author, b.ISBN, available)
}

// DecodeBook parses a line written by EncodeBook. Any availability value other than "1" decodes as false.
func DecodeBook(line string) (core.Book, error) {
	f, err := Fields(line, bookFieldCount)
	if err != nil {
		return core.Book{}, err
	}

	return core.Book{
		Title:     f[0],
		Author:    f[1],
		ISBN:      f[2],
		Available: f[3] == availableTrue,
	}, nil
}

// EncodeUser renders a user as id|name|contact.
func EncodeUser(u core.User) string {
	return join(u.ID, u.Name, u.Contact)
}

// DecodeUser parses a line written by EncodeUser.
func DecodeUser(line string) (core.User, error) {
	f, err := Fields(line, userFieldCount)
	if err != nil {
		return core.User{}, err
	}

	return core.User{
		ID:      f[0],
		Name:    f[1],
		Contact: f[2],
	}, nil
}

// EncodeTransaction renders a transaction as userId|bookIsbn|action|timestamp.
func EncodeTransaction(tx core.Transaction) string {
	return join(tx.UserID, tx.BookISBN, string(tx.Action), tx.Timestamp)
}

// DecodeTransaction parses a line written by EncodeTransaction.
// The action is taken as written, see core.Action.IsKnown.
func DecodeTransaction(line string) (core.Transaction, error) {
	f, err := Fields(line, transactionFieldCount)
	if err != nil {
		return core.Transaction{}, err
	}

	return core.Transaction{
		UserID:    f[0],
		BookISBN:  f[1],
		Action:    core.Action(f[2]),
		Timestamp: f[3],
	}, nil
}
