package main

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/locallibrary/internal/data"
)

func TestCreateGenre(t *testing.T) {
	app := newTestApplication(t)
	h := app.routes()

	assert.Equal(t, http.StatusOK, get(t, h, "/catalog/genres/create").Code)

	rr := postForm(t, h, "/catalog/genres/create", url.Values{"name": {" Fantasy "}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	genre, err := app.models.Genres.GetByName(context.Background(), "Fantasy")
	require.NoError(t, err)
	assert.Equal(t, genre.URL(), rr.Header().Get("Location"))
}

func TestCreateDuplicateGenreRedirectsToExisting(t *testing.T) {
	app := newTestApplication(t)
	existing := insertGenre(t, app, "Fantasy")

	rr := postForm(t, app.routes(), "/catalog/genres/create", url.Values{"name": {"Fantasy"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, existing.URL(), rr.Header().Get("Location"))

	n, err := app.models.Genres.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCreateGenreInvalid(t *testing.T) {
	app := newTestApplication(t)

	rr := postForm(t, app.routes(), "/catalog/genres/create", url.Values{"name": {" \x00\xff "}})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Name must be specified.")

	n, err := app.models.Genres.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestShowGenre(t *testing.T) {
	app := newTestApplication(t)
	h := app.routes()

	author := insertAuthor(t, app, "Patrick", "Rothfuss")
	fantasy := insertGenre(t, app, "Fantasy")
	insertBook(t, app, "The Name of the Wind", author, fantasy)
	insertBook(t, app, "Untagged", author)

	rr := get(t, h, fantasy.URL())
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Genre: Fantasy")
	assert.Contains(t, rr.Body.String(), "The Name of the Wind")
	assert.NotContains(t, rr.Body.String(), "Untagged")

	assert.Equal(t, http.StatusNotFound, get(t, h, "/catalog/genre/"+data.NewID()).Code)
}

func TestUpdateGenre(t *testing.T) {
	app := newTestApplication(t)
	h := app.routes()

	genre := insertGenre(t, app, "Sci Fi")
	insertGenre(t, app, "Fantasy")

	rr := postForm(t, h, genre.URL()+"/update", url.Values{"name": {"Science Fiction"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, genre.URL(), rr.Header().Get("Location"))

	got, err := app.models.Genres.Get(context.Background(), genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", got.Name)

	rr = postForm(t, h, genre.URL()+"/update", url.Values{"name": {"Fantasy"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "A genre with this name already exists.")

	got, err = app.models.Genres.Get(context.Background(), genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", got.Name)

	rr = postForm(t, h, "/catalog/genre/"+data.NewID()+"/update", url.Values{"name": {"Poetry"}})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteGenre(t *testing.T) {
	t.Run("used by books is refused", func(t *testing.T) {
		app := newTestApplication(t)
		author := insertAuthor(t, app, "Patrick", "Rothfuss")
		fantasy := insertGenre(t, app, "Fantasy")
		insertBook(t, app, "The Name of the Wind", author, fantasy)

		rr := postForm(t, app.routes(), fantasy.URL()+"/delete", url.Values{"genreid": {fantasy.ID}})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "The Name of the Wind")

		_, err := app.models.Genres.Get(context.Background(), fantasy.ID)
		assert.NoError(t, err)
	})

	t.Run("unused", func(t *testing.T) {
		app := newTestApplication(t)
		h := app.routes()
		poetry := insertGenre(t, app, "French Poetry")

		assert.Equal(t, http.StatusOK, get(t, h, poetry.URL()+"/delete").Code)

		rr := postForm(t, h, poetry.URL()+"/delete", url.Values{"genreid": {poetry.ID}})
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/catalog/genres", rr.Header().Get("Location"))

		_, err := app.models.Genres.Get(context.Background(), poetry.ID)
		assert.ErrorIs(t, err, data.ErrRecordNotFound)
	})
}

func TestGenreNameKeptAsTyped(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"escaped markup", "&lt;i&gt;Poetry&lt;/i&gt;"},
		{"raw markup", "<i>Poetry</i>"},
		{"lone angle bracket", "a<b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(t)
			h := app.routes()

			rr := postForm(t, h, "/catalog/genres/create", url.Values{"name": {tt.input}})
			require.Equal(t, http.StatusSeeOther, rr.Code)

			genre, err := app.models.Genres.GetByName(context.Background(), tt.input)
			require.NoError(t, err)

			rr = get(t, h, genre.URL()+"/update")
			require.Equal(t, http.StatusOK, rr.Code)
			assert.NotContains(t, rr.Body.String(), "<i>Poetry</i>")

			// Saving the edit form unchanged leaves the stored name alone.
			rr = postForm(t, h, genre.URL()+"/update", url.Values{"name": {genre.Name}})
			require.Equal(t, http.StatusSeeOther, rr.Code)

			got, err := app.models.Genres.Get(context.Background(), genre.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.input, got.Name)
		})
	}
}
