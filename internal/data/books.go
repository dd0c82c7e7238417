// internal/data/books.go
package data

// Book is a catalog title. AuthorID and GenreIDs are the stored references;
// Author and Genres are filled in by stores that populate them.
type Book struct {
	ID       string   `json:"id" bson:"_id"`
	Title    string   `json:"title" bson:"title"`
	AuthorID string   `json:"author" bson:"author"`
	Summary  string   `json:"summary" bson:"summary"`
	ISBN     string   `json:"isbn" bson:"isbn"`
	GenreIDs []string `json:"genre" bson:"genre"`

	Author *Author  `json:"-" bson:"-"`
	Genres []*Genre `json:"-" bson:"-"`
}

// URL is the canonical detail location of the book.
func (b Book) URL() string {
	return "/catalog/book/" + b.ID
}

// HasGenre reports whether id is one of the book's genre references.
func (b Book) HasGenre(id string) bool {
	for _, g := range b.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}
