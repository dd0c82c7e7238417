// internal/data/models.go
package data

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrRecordNotFound is returned when a lookup by identifier matches nothing.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateGenre is returned by GenreStore.Insert and GenreStore.Update when
	// another genre already carries the same name.
	ErrDuplicateGenre = errors.New("duplicate genre name")
)

// QueryTimeout bounds every individual store call.
var QueryTimeout = 3 * time.Second

// Models is a top-level container that groups all the entity stores together.
// It is passed around the application via applicationDependencies so every handler
// has access to storage without knowing which backend is in use.
type Models struct {
	Authors       AuthorStore
	Books         BookStore
	Genres        GenreStore
	BookInstances BookInstanceStore
}

// AuthorStore persists Author documents.
type AuthorStore interface {
	Insert(ctx context.Context, author *Author) error
	Get(ctx context.Context, id string) (*Author, error)
	// GetAll returns every author sorted by family name.
	GetAll(ctx context.Context) ([]*Author, error)
	Update(ctx context.Context, author *Author) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// BookStore persists Book documents. Get and GetAll populate Author, and Get
// also populates Genres.
type BookStore interface {
	Insert(ctx context.Context, book *Book) error
	Get(ctx context.Context, id string) (*Book, error)
	// GetAll returns every book sorted by title.
	GetAll(ctx context.Context) ([]*Book, error)
	GetByAuthor(ctx context.Context, authorID string) ([]*Book, error)
	GetByGenre(ctx context.Context, genreID string) ([]*Book, error)
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// GenreStore persists Genre documents. Names are unique.
type GenreStore interface {
	Insert(ctx context.Context, genre *Genre) error
	Get(ctx context.Context, id string) (*Genre, error)
	GetByName(ctx context.Context, name string) (*Genre, error)
	// GetAll returns every genre sorted by name.
	GetAll(ctx context.Context) ([]*Genre, error)
	Update(ctx context.Context, genre *Genre) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// BookInstanceStore persists BookInstance documents. Get and GetAll populate Book.
type BookInstanceStore interface {
	Insert(ctx context.Context, instance *BookInstance) error
	Get(ctx context.Context, id string) (*BookInstance, error)
	// GetAll returns every copy sorted by the title of its book.
	GetAll(ctx context.Context) ([]*BookInstance, error)
	GetByBook(ctx context.Context, bookID string) ([]*BookInstance, error)
	Update(ctx context.Context, instance *BookInstance) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status Status) (int, error)
}

// NewID returns a fresh document identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the shape of a document identifier.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
