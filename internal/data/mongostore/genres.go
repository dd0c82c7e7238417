// internal/data/mongostore/genres.go
package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aoideee/locallibrary/internal/data"
)

// GenreModel stores genres in the "genres" collection. Name uniqueness is
// enforced by the index EnsureIndexes creates.
type GenreModel struct {
	C *mongo.Collection
}

func (m GenreModel) Insert(ctx context.Context, genre *data.Genre) error {
	if genre.ID == "" {
		genre.ID = data.NewID()
	}

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	_, err := m.C.InsertOne(ctx, genre)
	if mongo.IsDuplicateKeyError(err) {
		return data.ErrDuplicateGenre
	}
	return err
}

func (m GenreModel) Get(ctx context.Context, id string) (*data.Genre, error) {
	return m.findOne(ctx, byID(id))
}

func (m GenreModel) GetByName(ctx context.Context, name string) (*data.Genre, error) {
	return m.findOne(ctx, bson.M{"name": name})
}

func (m GenreModel) findOne(ctx context.Context, filter bson.M) (*data.Genre, error) {
	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	var genre data.Genre
	err := m.C.FindOne(ctx, filter).Decode(&genre)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, data.ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &genre, nil
}

func (m GenreModel) GetAll(ctx context.Context) ([]*data.Genre, error) {
	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	return findAll[data.Genre](ctx, m.C, bson.M{}, sortedBy("name"))
}

func (m GenreModel) Update(ctx context.Context, genre *data.Genre) error {
	err := replaceByID(ctx, m.C, genre.ID, genre)
	if mongo.IsDuplicateKeyError(err) {
		return data.ErrDuplicateGenre
	}
	return err
}

func (m GenreModel) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, m.C, id)
}

func (m GenreModel) Count(ctx context.Context) (int, error) {
	return count(ctx, m.C, bson.M{})
}
