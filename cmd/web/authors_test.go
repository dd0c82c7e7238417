package main

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/locallibrary/internal/data"
)

func TestCreateAuthor(t *testing.T) {
	tests := []struct {
		name     string
		form     url.Values
		wantCode int
		wantBody string
	}{
		{
			name:     "valid",
			form:     url.Values{"first_name": {" Ada\x00 "}, "family_name": {"Lovelace"}, "date_of_birth": {"1815-12-10"}, "date_of_death": {"1852-11-27"}},
			wantCode: http.StatusSeeOther,
		},
		{
			name:     "missing family name",
			form:     url.Values{"first_name": {"Ada"}, "family_name": {"   "}},
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "Family name must be specified.",
		},
		{
			name:     "invalid utf-8 only",
			form:     url.Values{"first_name": {"\xff\xfe"}, "family_name": {"Lovelace"}},
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "First name must be specified.",
		},
		{
			name:     "bad date",
			form:     url.Values{"first_name": {"Ada"}, "family_name": {"Lovelace"}, "date_of_birth": {"10/12/1815"}},
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "Date of birth must be a valid date.",
		},
		{
			name:     "death before birth",
			form:     url.Values{"first_name": {"Ada"}, "family_name": {"Lovelace"}, "date_of_birth": {"1852-11-27"}, "date_of_death": {"1815-12-10"}},
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "Date of death must not be before date of birth.",
		},
		{
			name:     "unknown field",
			form:     url.Values{"first_name": {"Ada"}, "family_name": {"Lovelace"}, "role": {"admin"}},
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "Unexpected field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(t)
			h := app.routes()

			rr := postForm(t, h, "/catalog/authors/create", tt.form)
			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)

			authors, err := app.models.Authors.GetAll(context.Background())
			require.NoError(t, err)

			if tt.wantCode != http.StatusSeeOther {
				assert.Empty(t, authors)
				return
			}

			require.Len(t, authors, 1)
			a := authors[0]
			assert.Equal(t, a.URL(), rr.Header().Get("Location"))
			assert.Equal(t, "Ada", a.FirstName)
			assert.Equal(t, "Lovelace", a.FamilyName)
			assert.Equal(t, "1815-12-10", data.InputDate(a.DateOfBirth))
			assert.Equal(t, "1852-11-27", data.InputDate(a.DateOfDeath))
		})
	}
}

func TestCreateAuthorRerendersSanitizedValues(t *testing.T) {
	app := newTestApplication(t)

	rr := postForm(t, app.routes(), "/catalog/authors/create", url.Values{"first_name": {" <i>Ada</i>\x00"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), `value="&lt;i&gt;Ada&lt;/i&gt;"`)
	assert.NotContains(t, rr.Body.String(), "<i>Ada</i>")
}

func TestShowAuthor(t *testing.T) {
	app := newTestApplication(t)
	h := app.routes()

	author := insertAuthor(t, app, "Patrick", "Rothfuss")
	insertBook(t, app, "The Name of the Wind", author)

	rr := get(t, h, author.URL())
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Rothfuss, Patrick")
	assert.Contains(t, rr.Body.String(), "The Name of the Wind")

	rr = get(t, h, "/catalog/author/"+data.NewID())
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = get(t, h, "/catalog/author/not-an-id")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListAuthors(t *testing.T) {
	app := newTestApplication(t)

	insertAuthor(t, app, "Patrick", "Rothfuss")
	insertAuthor(t, app, "Isaac", "Asimov")

	rr := get(t, app.routes(), "/catalog/authors")
	assert.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "Asimov, Isaac")
	assert.Less(t, strings.Index(body, "Asimov"), strings.Index(body, "Rothfuss"))
}

func TestUpdateAuthor(t *testing.T) {
	app := newTestApplication(t)
	h := app.routes()

	author := insertAuthor(t, app, "Jim", "Jones")

	rr := get(t, h, author.URL()+"/update")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `value="Jones"`)

	rr = postForm(t, h, author.URL()+"/update", url.Values{
		"first_name":    {"James"},
		"family_name":   {"Jones"},
		"date_of_birth": {"1971-12-16"},
	})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, author.URL(), rr.Header().Get("Location"))

	got, err := app.models.Authors.Get(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Equal(t, author.ID, got.ID)
	assert.Equal(t, "James", got.FirstName)
	assert.Equal(t, "1971-12-16", data.InputDate(got.DateOfBirth))
	assert.Nil(t, got.DateOfDeath)

	n, err := app.models.Authors.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUpdateAuthorInvalidKeepsRecord(t *testing.T) {
	app := newTestApplication(t)
	author := insertAuthor(t, app, "Jim", "Jones")

	rr := postForm(t, app.routes(), author.URL()+"/update", url.Values{"first_name": {""}, "family_name": {"Smith"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "First name must be specified.")

	got, err := app.models.Authors.Get(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jim", got.FirstName)
	assert.Equal(t, "Jones", got.FamilyName)
}

func TestUpdateMissingAuthor(t *testing.T) {
	app := newTestApplication(t)
	h := app.routes()
	path := "/catalog/author/" + data.NewID() + "/update"

	assert.Equal(t, http.StatusNotFound, get(t, h, path).Code)

	rr := postForm(t, h, path, url.Values{"first_name": {"A"}, "family_name": {"B"}})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	authors, err := app.models.Authors.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestDeleteAuthor(t *testing.T) {
	t.Run("with books is refused", func(t *testing.T) {
		app := newTestApplication(t)
		h := app.routes()

		author := insertAuthor(t, app, "Ben", "Bova")
		insertBook(t, app, "Death Wave", author)

		rr := postForm(t, h, author.URL()+"/delete", url.Values{"authorid": {author.ID}})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Delete the following books")
		assert.Contains(t, rr.Body.String(), "Death Wave")

		_, err := app.models.Authors.Get(context.Background(), author.ID)
		assert.NoError(t, err)
	})

	t.Run("without books", func(t *testing.T) {
		app := newTestApplication(t)
		h := app.routes()

		author := insertAuthor(t, app, "Bob", "Billings")

		rr := get(t, h, author.URL()+"/delete")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `name="authorid"`)

		rr = postForm(t, h, author.URL()+"/delete", url.Values{"authorid": {author.ID}})
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/catalog/authors", rr.Header().Get("Location"))

		_, err := app.models.Authors.Get(context.Background(), author.ID)
		assert.ErrorIs(t, err, data.ErrRecordNotFound)
	})

	t.Run("id from url when form omits it", func(t *testing.T) {
		app := newTestApplication(t)
		author := insertAuthor(t, app, "Bob", "Billings")

		rr := postForm(t, app.routes(), author.URL()+"/delete", url.Values{})
		assert.Equal(t, http.StatusSeeOther, rr.Code)

		_, err := app.models.Authors.Get(context.Background(), author.ID)
		assert.ErrorIs(t, err, data.ErrRecordNotFound)
	})

	t.Run("missing author", func(t *testing.T) {
		app := newTestApplication(t)

		rr := postForm(t, app.routes(), "/catalog/author/"+data.NewID()+"/delete", url.Values{})
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/catalog/authors", rr.Header().Get("Location"))
	})

	t.Run("malformed id", func(t *testing.T) {
		app := newTestApplication(t)
		author := insertAuthor(t, app, "Bob", "Billings")

		rr := postForm(t, app.routes(), author.URL()+"/delete", url.Values{"authorid": {"42"}})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
