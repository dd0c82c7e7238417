// Package memstore is an in-process implementation of the catalog stores.
// It backs the "memory" driver and the handler tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/aoideee/locallibrary/internal/data"
)

// db holds every collection behind one lock so cross-collection reads
// (populating references) see a consistent snapshot.
type db struct {
	mu            sync.RWMutex
	authors       map[string]data.Author
	books         map[string]data.Book
	genres        map[string]data.Genre
	bookInstances map[string]data.BookInstance
}

// NewModels returns empty stores sharing one in-memory database.
func NewModels() data.Models {
	d := &db{
		authors:       make(map[string]data.Author),
		books:         make(map[string]data.Book),
		genres:        make(map[string]data.Genre),
		bookInstances: make(map[string]data.BookInstance),
	}
	return data.Models{
		Authors:       AuthorModel{db: d},
		Books:         BookModel{db: d},
		Genres:        GenreModel{db: d},
		BookInstances: BookInstanceModel{db: d},
	}
}

// AuthorModel stores authors in memory.
type AuthorModel struct {
	db *db
}

func (m AuthorModel) Insert(_ context.Context, author *data.Author) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if author.ID == "" {
		author.ID = data.NewID()
	}
	m.db.authors[author.ID] = *author
	return nil
}

func (m AuthorModel) Get(_ context.Context, id string) (*data.Author, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	a, ok := m.db.authors[id]
	if !ok {
		return nil, data.ErrRecordNotFound
	}
	return &a, nil
}

func (m AuthorModel) GetAll(_ context.Context) ([]*data.Author, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	authors := make([]*data.Author, 0, len(m.db.authors))
	for _, a := range m.db.authors {
		authors = append(authors, &a)
	}
	sort.SliceStable(authors, func(i, j int) bool {
		return authors[i].FamilyName < authors[j].FamilyName
	})
	return authors, nil
}

func (m AuthorModel) Update(_ context.Context, author *data.Author) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if _, ok := m.db.authors[author.ID]; !ok {
		return data.ErrRecordNotFound
	}
	m.db.authors[author.ID] = *author
	return nil
}

func (m AuthorModel) Delete(_ context.Context, id string) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if _, ok := m.db.authors[id]; !ok {
		return data.ErrRecordNotFound
	}
	delete(m.db.authors, id)
	return nil
}

func (m AuthorModel) Count(_ context.Context) (int, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	return len(m.db.authors), nil
}

// BookModel stores books in memory.
type BookModel struct {
	db *db
}

func (m BookModel) Insert(_ context.Context, book *data.Book) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if book.ID == "" {
		book.ID = data.NewID()
	}
	m.db.books[book.ID] = stripBook(*book)
	return nil
}

func (m BookModel) Get(_ context.Context, id string) (*data.Book, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	b, ok := m.db.books[id]
	if !ok {
		return nil, data.ErrRecordNotFound
	}
	book := m.db.populateBook(b)
	for _, gid := range b.GenreIDs {
		if g, ok := m.db.genres[gid]; ok {
			book.Genres = append(book.Genres, &g)
		}
	}
	return book, nil
}

func (m BookModel) GetAll(_ context.Context) ([]*data.Book, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	return m.db.filterBooks(func(data.Book) bool { return true }), nil
}

func (m BookModel) GetByAuthor(_ context.Context, authorID string) ([]*data.Book, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	return m.db.filterBooks(func(b data.Book) bool { return b.AuthorID == authorID }), nil
}

func (m BookModel) GetByGenre(_ context.Context, genreID string) ([]*data.Book, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	return m.db.filterBooks(func(b data.Book) bool { return b.HasGenre(genreID) }), nil
}

func (m BookModel) Update(_ context.Context, book *data.Book) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if _, ok := m.db.books[book.ID]; !ok {
		return data.ErrRecordNotFound
	}
	m.db.books[book.ID] = stripBook(*book)
	return nil
}

func (m BookModel) Delete(_ context.Context, id string) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if _, ok := m.db.books[id]; !ok {
		return data.ErrRecordNotFound
	}
	delete(m.db.books, id)
	return nil
}

func (m BookModel) Count(_ context.Context) (int, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	return len(m.db.books), nil
}

// GenreModel stores genres in memory.
type GenreModel struct {
	db *db
}

func (m GenreModel) Insert(_ context.Context, genre *data.Genre) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if m.db.genreNameTaken(genre.Name, "") {
		return data.ErrDuplicateGenre
	}
	if genre.ID == "" {
		genre.ID = data.NewID()
	}
	m.db.genres[genre.ID] = *genre
	return nil
}

func (m GenreModel) Get(_ context.Context, id string) (*data.Genre, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	g, ok := m.db.genres[id]
	if !ok {
		return nil, data.ErrRecordNotFound
	}
	return &g, nil
}

func (m GenreModel) GetByName(_ context.Context, name string) (*data.Genre, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	for _, g := range m.db.genres {
		if g.Name == name {
			return &g, nil
		}
	}
	return nil, data.ErrRecordNotFound
}

func (m GenreModel) GetAll(_ context.Context) ([]*data.Genre, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	genres := make([]*data.Genre, 0, len(m.db.genres))
	for _, g := range m.db.genres {
		genres = append(genres, &g)
	}
	sort.SliceStable(genres, func(i, j int) bool {
		return genres[i].Name < genres[j].Name
	})
	return genres, nil
}

func (m GenreModel) Update(_ context.Context, genre *data.Genre) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if _, ok := m.db.genres[genre.ID]; !ok {
		return data.ErrRecordNotFound
	}
	if m.db.genreNameTaken(genre.Name, genre.ID) {
		return data.ErrDuplicateGenre
	}
	m.db.genres[genre.ID] = *genre
	return nil
}

func (m GenreModel) Delete(_ context.Context, id string) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if _, ok := m.db.genres[id]; !ok {
		return data.ErrRecordNotFound
	}
	delete(m.db.genres, id)
	return nil
}

func (m GenreModel) Count(_ context.Context) (int, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	return len(m.db.genres), nil
}

// BookInstanceModel stores book copies in memory.
type BookInstanceModel struct {
	db *db
}

func (m BookInstanceModel) Insert(_ context.Context, instance *data.BookInstance) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if instance.ID == "" {
		instance.ID = data.NewID()
	}
	stored := *instance
	stored.Book = nil
	m.db.bookInstances[instance.ID] = stored
	return nil
}

func (m BookInstanceModel) Get(_ context.Context, id string) (*data.BookInstance, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	bi, ok := m.db.bookInstances[id]
	if !ok {
		return nil, data.ErrRecordNotFound
	}
	return m.db.populateInstance(bi), nil
}

func (m BookInstanceModel) GetAll(_ context.Context) ([]*data.BookInstance, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	instances := make([]*data.BookInstance, 0, len(m.db.bookInstances))
	for _, bi := range m.db.bookInstances {
		instances = append(instances, m.db.populateInstance(bi))
	}
	sort.SliceStable(instances, func(i, j int) bool {
		return instanceTitle(instances[i]) < instanceTitle(instances[j])
	})
	return instances, nil
}

func (m BookInstanceModel) GetByBook(_ context.Context, bookID string) ([]*data.BookInstance, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	instances := []*data.BookInstance{}
	for _, bi := range m.db.bookInstances {
		if bi.BookID == bookID {
			instances = append(instances, &bi)
		}
	}
	sort.SliceStable(instances, func(i, j int) bool {
		return strings.Compare(instances[i].Imprint, instances[j].Imprint) < 0
	})
	return instances, nil
}

func (m BookInstanceModel) Update(_ context.Context, instance *data.BookInstance) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if _, ok := m.db.bookInstances[instance.ID]; !ok {
		return data.ErrRecordNotFound
	}
	stored := *instance
	stored.Book = nil
	m.db.bookInstances[instance.ID] = stored
	return nil
}

func (m BookInstanceModel) Delete(_ context.Context, id string) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if _, ok := m.db.bookInstances[id]; !ok {
		return data.ErrRecordNotFound
	}
	delete(m.db.bookInstances, id)
	return nil
}

func (m BookInstanceModel) Count(_ context.Context) (int, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	return len(m.db.bookInstances), nil
}

func (m BookInstanceModel) CountByStatus(_ context.Context, status data.Status) (int, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	n := 0
	for _, bi := range m.db.bookInstances {
		if bi.Status == status {
			n++
		}
	}
	return n, nil
}

// The helpers below expect the caller to hold db.mu.

func (d *db) populateBook(b data.Book) *data.Book {
	book := b
	book.GenreIDs = append([]string{}, b.GenreIDs...)
	if a, ok := d.authors[b.AuthorID]; ok {
		book.Author = &a
	}
	return &book
}

func (d *db) populateInstance(bi data.BookInstance) *data.BookInstance {
	instance := bi
	if b, ok := d.books[bi.BookID]; ok {
		instance.Book = d.populateBook(b)
	}
	return &instance
}

func (d *db) filterBooks(keep func(data.Book) bool) []*data.Book {
	books := []*data.Book{}
	for _, b := range d.books {
		if keep(b) {
			books = append(books, d.populateBook(b))
		}
	}
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].Title < books[j].Title
	})
	return books
}

func (d *db) genreNameTaken(name, exceptID string) bool {
	for id, g := range d.genres {
		if g.Name == name && id != exceptID {
			return true
		}
	}
	return false
}

func stripBook(b data.Book) data.Book {
	b.Author = nil
	b.Genres = nil
	b.GenreIDs = append([]string{}, b.GenreIDs...)
	return b
}

func instanceTitle(bi *data.BookInstance) string {
	if bi.Book == nil {
		return ""
	}
	return bi.Book.Title
}
