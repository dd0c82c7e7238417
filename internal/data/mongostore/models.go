// Package mongostore implements the catalog stores on MongoDB. Each entity
// lives in its own collection; references are stored as identifier strings
// and populated with follow-up $in queries.
package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aoideee/locallibrary/internal/data"
)

const (
	authorsCollection       = "authors"
	booksCollection         = "books"
	genresCollection        = "genres"
	bookInstancesCollection = "bookinstances"
)

// Open connects to uri and pings the deployment, giving up after five seconds.
func Open(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// NewModels returns stores backed by the collections of db.
func NewModels(db *mongo.Database) data.Models {
	authors := db.Collection(authorsCollection)
	books := db.Collection(booksCollection)
	genres := db.Collection(genresCollection)
	instances := db.Collection(bookInstancesCollection)

	return data.Models{
		Authors:       AuthorModel{C: authors},
		Books:         BookModel{C: books, Authors: authors, Genres: genres},
		Genres:        GenreModel{C: genres},
		BookInstances: BookInstanceModel{C: instances, Books: books, Authors: authors},
	}
}

// EnsureIndexes creates the unique genre-name index and the lookup indexes
// used by the dependency checks.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{genresCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{booksCollection, mongo.IndexModel{Keys: bson.D{{Key: "author", Value: 1}}}},
		{booksCollection, mongo.IndexModel{Keys: bson.D{{Key: "genre", Value: 1}}}},
		{bookInstancesCollection, mongo.IndexModel{Keys: bson.D{{Key: "book", Value: 1}}}},
	}

	for _, idx := range indexes {
		_, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model)
		if err != nil {
			return err
		}
	}
	return nil
}

func byID(id string) bson.M {
	return bson.M{"_id": id}
}

// findAll decodes every document matching filter into a slice of T.
func findAll[T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]*T, len(docs))
	for i := range docs {
		out[i] = &docs[i]
	}
	return out, nil
}

func sortedBy(field string) *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: field, Value: 1}, {Key: "_id", Value: 1}})
}

func count(ctx context.Context, c *mongo.Collection, filter any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	n, err := c.CountDocuments(ctx, filter)
	return int(n), err
}

func deleteByID(ctx context.Context, c *mongo.Collection, id string) error {
	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	res, err := c.DeleteOne(ctx, byID(id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return data.ErrRecordNotFound
	}
	return nil
}

func replaceByID(ctx context.Context, c *mongo.Collection, id string, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	res, err := c.ReplaceOne(ctx, byID(id), doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return data.ErrRecordNotFound
	}
	return nil
}

// authorsByID loads the authors whose identifiers appear in ids.
func authorsByID(ctx context.Context, c *mongo.Collection, ids []string) (map[string]*data.Author, error) {
	authors, err := findAll[data.Author](ctx, c, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	out := make(map[string]*data.Author, len(authors))
	for _, a := range authors {
		out[a.ID] = a
	}
	return out, nil
}
