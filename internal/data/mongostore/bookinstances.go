// internal/data/mongostore/bookinstances.go
// Copies are sorted by book title after their books are populated, since the
// title lives in another collection.
package mongostore

import (
	"context"
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aoideee/locallibrary/internal/data"
)

// BookInstanceModel stores copies in the "bookinstances" collection.
type BookInstanceModel struct {
	C       *mongo.Collection
	Books   *mongo.Collection
	Authors *mongo.Collection
}

func (m BookInstanceModel) Insert(ctx context.Context, instance *data.BookInstance) error {
	if instance.ID == "" {
		instance.ID = data.NewID()
	}

	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	_, err := m.C.InsertOne(ctx, instance)
	return err
}

func (m BookInstanceModel) Get(ctx context.Context, id string) (*data.BookInstance, error) {
	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	var instance data.BookInstance
	err := m.C.FindOne(ctx, byID(id)).Decode(&instance)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, data.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	if err := m.populateBooks(ctx, []*data.BookInstance{&instance}); err != nil {
		return nil, err
	}
	return &instance, nil
}

func (m BookInstanceModel) GetAll(ctx context.Context) ([]*data.BookInstance, error) {
	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	instances, err := findAll[data.BookInstance](ctx, m.C, bson.M{})
	if err != nil {
		return nil, err
	}
	if err := m.populateBooks(ctx, instances); err != nil {
		return nil, err
	}

	sort.SliceStable(instances, func(i, j int) bool {
		return title(instances[i]) < title(instances[j])
	})
	return instances, nil
}

func (m BookInstanceModel) GetByBook(ctx context.Context, bookID string) ([]*data.BookInstance, error) {
	ctx, cancel := context.WithTimeout(ctx, data.QueryTimeout)
	defer cancel()

	return findAll[data.BookInstance](ctx, m.C, bson.M{"book": bookID}, sortedBy("imprint"))
}

func (m BookInstanceModel) Update(ctx context.Context, instance *data.BookInstance) error {
	return replaceByID(ctx, m.C, instance.ID, instance)
}

func (m BookInstanceModel) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, m.C, id)
}

func (m BookInstanceModel) Count(ctx context.Context) (int, error) {
	return count(ctx, m.C, bson.M{})
}

func (m BookInstanceModel) CountByStatus(ctx context.Context, status data.Status) (int, error) {
	return count(ctx, m.C, bson.M{"status": string(status)})
}

func (m BookInstanceModel) populateBooks(ctx context.Context, instances []*data.BookInstance) error {
	if len(instances) == 0 {
		return nil
	}

	ids := make([]string, 0, len(instances))
	for _, bi := range instances {
		ids = append(ids, bi.BookID)
	}

	books, err := findAll[data.Book](ctx, m.Books, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return err
	}
	if err := populateAuthors(ctx, m.Authors, books); err != nil {
		return err
	}

	byBook := make(map[string]*data.Book, len(books))
	for _, b := range books {
		byBook[b.ID] = b
	}
	for _, bi := range instances {
		bi.Book = byBook[bi.BookID]
	}
	return nil
}

func title(bi *data.BookInstance) string {
	if bi.Book == nil {
		return ""
	}
	return bi.Book.Title
}
