package memstore

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/locallibrary/internal/data"
)

func TestAuthorsSortedByFamilyName(t *testing.T) {
	ctx := context.Background()
	m := NewModels()

	for _, a := range []*data.Author{
		{FirstName: "Ben", FamilyName: "Bova"},
		{FirstName: "Isaac", FamilyName: "Asimov"},
		{FirstName: "Patrick", FamilyName: "Rothfuss"},
	} {
		require.NoError(t, m.Authors.Insert(ctx, a))
		assert.True(t, data.ValidID(a.ID))
	}

	authors, err := m.Authors.GetAll(ctx)
	require.NoError(t, err)

	var got []string
	for _, a := range authors {
		got = append(got, a.FamilyName)
	}
	if diff := cmp.Diff([]string{"Asimov", "Bova", "Rothfuss"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	n, err := m.Authors.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestMissingRecords(t *testing.T) {
	ctx := context.Background()
	m := NewModels()
	id := data.NewID()

	_, err := m.Authors.Get(ctx, id)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
	_, err = m.Books.Get(ctx, id)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
	_, err = m.Genres.Get(ctx, id)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
	_, err = m.Genres.GetByName(ctx, "Nope")
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
	_, err = m.BookInstances.Get(ctx, id)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)

	assert.ErrorIs(t, m.Authors.Update(ctx, &data.Author{ID: id}), data.ErrRecordNotFound)
	assert.ErrorIs(t, m.Books.Update(ctx, &data.Book{ID: id}), data.ErrRecordNotFound)
	assert.ErrorIs(t, m.Genres.Update(ctx, &data.Genre{ID: id}), data.ErrRecordNotFound)
	assert.ErrorIs(t, m.BookInstances.Update(ctx, &data.BookInstance{ID: id}), data.ErrRecordNotFound)

	assert.ErrorIs(t, m.Authors.Delete(ctx, id), data.ErrRecordNotFound)
	assert.ErrorIs(t, m.BookInstances.Delete(ctx, id), data.ErrRecordNotFound)
}

func TestGenreNamesAreUnique(t *testing.T) {
	ctx := context.Background()
	m := NewModels()

	fantasy := &data.Genre{Name: "Fantasy"}
	require.NoError(t, m.Genres.Insert(ctx, fantasy))
	assert.ErrorIs(t, m.Genres.Insert(ctx, &data.Genre{Name: "Fantasy"}), data.ErrDuplicateGenre)

	poetry := &data.Genre{Name: "Poetry"}
	require.NoError(t, m.Genres.Insert(ctx, poetry))

	poetry.Name = "Fantasy"
	assert.ErrorIs(t, m.Genres.Update(ctx, poetry), data.ErrDuplicateGenre)

	// Saving a genre under its own name is not a conflict.
	require.NoError(t, m.Genres.Update(ctx, fantasy))

	got, err := m.Genres.GetByName(ctx, "Fantasy")
	require.NoError(t, err)
	assert.Equal(t, fantasy.ID, got.ID)

	n, err := m.Genres.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestBookPopulation(t *testing.T) {
	ctx := context.Background()
	m := NewModels()

	author := &data.Author{FirstName: "Ben", FamilyName: "Bova"}
	require.NoError(t, m.Authors.Insert(ctx, author))
	scifi := &data.Genre{Name: "Science Fiction"}
	require.NoError(t, m.Genres.Insert(ctx, scifi))

	book := &data.Book{Title: "Death Wave", AuthorID: author.ID, GenreIDs: []string{scifi.ID}}
	require.NoError(t, m.Books.Insert(ctx, book))
	other := &data.Book{Title: "Apes and Angels", AuthorID: author.ID}
	require.NoError(t, m.Books.Insert(ctx, other))

	got, err := m.Books.Get(ctx, book.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Author)
	assert.Equal(t, "Bova, Ben", got.Author.Name())
	require.Len(t, got.Genres, 1)
	assert.Equal(t, "Science Fiction", got.Genres[0].Name)

	byAuthor, err := m.Books.GetByAuthor(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, byAuthor, 2)
	assert.Equal(t, "Apes and Angels", byAuthor[0].Title)

	byGenre, err := m.Books.GetByGenre(ctx, scifi.ID)
	require.NoError(t, err)
	require.Len(t, byGenre, 1)
	assert.Equal(t, book.ID, byGenre[0].ID)

	none, err := m.Books.GetByGenre(ctx, data.NewID())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestStoredBooksAreCopies(t *testing.T) {
	ctx := context.Background()
	m := NewModels()

	genres := []string{data.NewID()}
	book := &data.Book{Title: "Original", GenreIDs: genres}
	require.NoError(t, m.Books.Insert(ctx, book))

	genres[0] = "changed"
	book.Title = "Changed"

	got, err := m.Books.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Title)
	assert.NotEqual(t, "changed", got.GenreIDs[0])
}

func TestBookInstances(t *testing.T) {
	ctx := context.Background()
	m := NewModels()

	zebra := &data.Book{Title: "Zebra"}
	apple := &data.Book{Title: "Apple"}
	require.NoError(t, m.Books.Insert(ctx, zebra))
	require.NoError(t, m.Books.Insert(ctx, apple))

	for _, bi := range []*data.BookInstance{
		{BookID: zebra.ID, Imprint: "Z2", Status: data.StatusAvailable},
		{BookID: zebra.ID, Imprint: "Z1", Status: data.StatusLoaned},
		{BookID: apple.ID, Imprint: "A1", Status: data.StatusAvailable},
	} {
		require.NoError(t, m.BookInstances.Insert(ctx, bi))
	}

	all, err := m.BookInstances.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.NotNil(t, all[0].Book)
	assert.Equal(t, "Apple", all[0].Book.Title)

	copies, err := m.BookInstances.GetByBook(ctx, zebra.ID)
	require.NoError(t, err)
	require.Len(t, copies, 2)
	assert.Equal(t, "Z1", copies[0].Imprint)
	assert.Equal(t, "Z2", copies[1].Imprint)

	available, err := m.BookInstances.CountByStatus(ctx, data.StatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, 2, available)

	total, err := m.BookInstances.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
