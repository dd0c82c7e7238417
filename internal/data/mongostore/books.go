// internal/data/mongostore/books.go
package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aoideee/locallibrary/internal/data"
)

// BookModel stores books in the "books" collection and populates their
// author and genre references from the sibling collections.
type BookModel struct {
	C       *mongo.Collection
	Authors *mongo.Collection
	Genres  *mongo.Collection
}

func (m BookModel) Insert(ctx context.Context, book *data.Book) error {
	if book.ID == "" {
		book.ID = data.NewID()
	}

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	_, err := m.C.InsertOne(ctx, document(book))
	return err
}

func (m BookModel) Get(ctx context.Context, id string) (*data.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	var book data.Book
	err := m.C.FindOne(ctx, byID(id)).Decode(&book)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, data.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	author, err := AuthorModel{C: m.Authors}.Get(ctx, book.AuthorID)
	switch {
	case err == nil:
		book.Author = author
	case !errors.Is(err, data.ErrRecordNotFound):
		return nil, err
	}

	book.Genres = []*data.Genre{}
	if len(book.GenreIDs) == 0 {
		return &book, nil
	}
	book.Genres, err = findAll[data.Genre](ctx, m.Genres, bson.M{"_id": bson.M{"$in": book.GenreIDs}}, sortedBy("name"))
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (m BookModel) GetAll(ctx context.Context) ([]*data.Book, error) {
	return m.list(ctx, bson.M{})
}

func (m BookModel) GetByAuthor(ctx context.Context, authorID string) ([]*data.Book, error) {
	return m.list(ctx, bson.M{"author": authorID})
}

func (m BookModel) GetByGenre(ctx context.Context, genreID string) ([]*data.Book, error) {
	return m.list(ctx, bson.M{"genre": genreID})
}

// list returns the books matching filter, sorted by title with authors populated.
func (m BookModel) list(ctx context.Context, filter bson.M) ([]*data.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	books, err := findAll[data.Book](ctx, m.C, filter, sortedBy("title"))
	if err != nil {
		return nil, err
	}
	if err := populateAuthors(ctx, m.Authors, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (m BookModel) Update(ctx context.Context, book *data.Book) error {
	return replaceByID(ctx, m.C, book.ID, document(book))
}

func (m BookModel) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, m.C, id)
}

func (m BookModel) Count(ctx context.Context) (int, error) {
	return count(ctx, m.C, bson.M{})
}

func populateAuthors(ctx context.Context, c *mongo.Collection, books []*data.Book) error {
	if len(books) == 0 {
		return nil
	}

	ids := make([]string, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.AuthorID)
	}

	authors, err := authorsByID(ctx, c, ids)
	if err != nil {
		return err
	}
	for _, b := range books {
		b.Author = authors[b.AuthorID]
	}
	return nil
}

// document returns the stored shape of book; genre is always an array.
func document(book *data.Book) data.Book {
	doc := *book
	if doc.GenreIDs == nil {
		doc.GenreIDs = []string{}
	}
	return doc
}
