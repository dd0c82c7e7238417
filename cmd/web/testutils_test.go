package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/form/v4"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/data/memstore"
)

// newTestApplication returns an application backed by an empty in-memory
// store, with the rate limiter off and logs discarded.
func newTestApplication(t *testing.T) *applicationDependencies {
	t.Helper()

	templateCache, err := newTemplateCache()
	require.NoError(t, err)

	return &applicationDependencies{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		models:        memstore.NewModels(),
		templateCache: templateCache,
		formDecoder:   form.NewDecoder(),
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func postForm(t *testing.T, h http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func insertAuthor(t *testing.T, app *applicationDependencies, first, family string) *data.Author {
	t.Helper()

	a := &data.Author{FirstName: first, FamilyName: family}
	require.NoError(t, app.models.Authors.Insert(context.Background(), a))
	return a
}

func insertGenre(t *testing.T, app *applicationDependencies, name string) *data.Genre {
	t.Helper()

	g := &data.Genre{Name: name}
	require.NoError(t, app.models.Genres.Insert(context.Background(), g))
	return g
}

func insertBook(t *testing.T, app *applicationDependencies, title string, author *data.Author, genres ...*data.Genre) *data.Book {
	t.Helper()

	b := &data.Book{
		Title:    title,
		AuthorID: author.ID,
		Summary:  "Summary of " + title,
		ISBN:     "ISBN-" + title,
		GenreIDs: []string{},
	}
	for _, g := range genres {
		b.GenreIDs = append(b.GenreIDs, g.ID)
	}
	require.NoError(t, app.models.Books.Insert(context.Background(), b))
	return b
}

func insertInstance(t *testing.T, app *applicationDependencies, book *data.Book, imprint string, status data.Status) *data.BookInstance {
	t.Helper()

	bi := &data.BookInstance{BookID: book.ID, Imprint: imprint, Status: status}
	require.NoError(t, app.models.BookInstances.Insert(context.Background(), bi))
	return bi
}
