// internal/data/mongostore/authors.go
package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aoideee/locallibrary/internal/data"
)

// AuthorModel stores authors in the "authors" collection.
type AuthorModel struct {
	C *mongo.Collection
}

func (m AuthorModel) Insert(ctx context.Context, author *data.Author) error {
	if author.ID == "" {
		author.ID = data.NewID()
	}

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	_, err := m.C.InsertOne(ctx, author)
	return err
}

func (m AuthorModel) Get(ctx context.Context, id string) (*data.Author, error) {
	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	var author data.Author
	err := m.C.FindOne(ctx, byID(id)).Decode(&author)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, data.ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &author, nil
}

func (m AuthorModel) GetAll(ctx context.Context) ([]*data.Author, error) {
	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	return findAll[data.Author](ctx, m.C, bson.M{}, sortedBy("family_name"))
}

func (m AuthorModel) Update(ctx context.Context, author *data.Author) error {
	return replaceByID(ctx, m.C, author.ID, author)
}

func (m AuthorModel) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, m.C, id)
}

func (m AuthorModel) Count(ctx context.Context) (int, error) {
	return count(ctx, m.C, bson.M{})
}
