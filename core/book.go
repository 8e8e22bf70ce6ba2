package core

// Book is a catalog entry. Available is false while the book is borrowed.
type Book struct {
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	ISBN      ISBNString `json:"isbn"`
	Available bool       `json:"available"`
}

// BuildBook creates a new Book which is available for borrowing.
func BuildBook(title string, author string, isbn ISBNString) Book {
	return Book{
		Title:     title,
		Author:    author,
		ISBN:      isbn,
		Available: true,
	}
}

// Matches reports whether keyword equals the title, the author or the ISBN exactly.
func (b Book) Matches(keyword string) bool {
	return b.Title == keyword || b.Author == keyword || b.ISBN == keyword
}
