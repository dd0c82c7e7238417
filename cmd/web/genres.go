// cmd/web/genres.go
// Handlers for the genre pages under /catalog/genres and /catalog/genre/:id.
package main

import (
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/aoideee/locallibrary/internal/data"
)

// listGenresHandler handles GET /catalog/genres.
func (app *applicationDependencies) listGenresHandler(w http.ResponseWriter, r *http.Request) {
	genres, err := app.models.Genres.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	td := app.newTemplateData(r)
	td.Title = "Genre List"
	td.Genres = genres
	app.render(w, r, http.StatusOK, "genre_list.tmpl", td)
}

func (app *applicationDependencies) loadGenreWithBooks(r *http.Request, id string) (*data.Genre, []*data.Book, error) {
	var (
		genre *data.Genre
		books []*data.Book
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		genre, err = app.models.Genres.Get(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		books, err = app.models.Books.GetByGenre(ctx, id)
		return err
	})

	err := g.Wait()
	if err != nil {
		return nil, nil, err
	}
	return genre, books, nil
}

// showGenreHandler handles GET /catalog/genre/:id.
func (app *applicationDependencies) showGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	genre, books, err := app.loadGenreWithBooks(r, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	td := app.newTemplateData(r)
	td.Title = "Genre Detail"
	td.Genre = genre
	td.Books = books
	app.render(w, r, http.StatusOK, "genre_detail.tmpl", td)
}

// createGenreFormHandler handles GET /catalog/genres/create.
func (app *applicationDependencies) createGenreFormHandler(w http.ResponseWriter, r *http.Request) {
	td := app.newTemplateData(r)
	td.Title = "Create Genre"
	td.Form = &genreForm{}
	app.render(w, r, http.StatusOK, "genre_form.tmpl", td)
}

// createGenreHandler handles POST /catalog/genres/create.
// Submitting a name that already exists redirects to that genre instead of
// storing a second one. The unique index catches a concurrent insert of the
// same name, which is resolved the same way.
func (app *applicationDependencies) createGenreHandler(w http.ResponseWriter, r *http.Request) {
	var input genreForm

	v, err := app.readForm(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !v.Valid() {
		td := app.newTemplateData(r)
		td.Title = "Create Genre"
		td.Form = &input
		td.Errors = v.Errors
		app.render(w, r, http.StatusUnprocessableEntity, "genre_form.tmpl", td)
		return
	}

	existing, err := app.models.Genres.GetByName(r.Context(), input.Name)
	switch {
	case err == nil:
		app.redirect(w, r, existing.URL())
		return
	case !errors.Is(err, data.ErrRecordNotFound):
		app.serverErrorResponse(w, r, err)
		return
	}

	genre := &data.Genre{Name: input.Name}
	err = app.models.Genres.Insert(r.Context(), genre)
	if err != nil {
		if !errors.Is(err, data.ErrDuplicateGenre) {
			app.serverErrorResponse(w, r, err)
			return
		}
		genre, err = app.models.Genres.GetByName(r.Context(), input.Name)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	app.redirect(w, r, genre.URL())
}

// updateGenreFormHandler handles GET /catalog/genre/:id/update.
func (app *applicationDependencies) updateGenreFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	genre, err := app.models.Genres.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	td := app.newTemplateData(r)
	td.Title = "Update Genre"
	td.Genre = genre
	td.Form = &genreForm{Name: genre.Name}
	app.render(w, r, http.StatusOK, "genre_form.tmpl", td)
}

// updateGenreHandler handles POST /catalog/genre/:id/update.
// Renaming onto a name another genre already uses is a validation error.
func (app *applicationDependencies) updateGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	genre, err := app.models.Genres.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	var input genreForm
	v, err := app.readForm(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if v.Valid() {
		genre.Name = input.Name
		err = app.models.Genres.Update(r.Context(), genre)
		switch {
		case err == nil:
			app.redirect(w, r, genre.URL())
			return
		case errors.Is(err, data.ErrDuplicateGenre):
			v.AddError("name", "A genre with this name already exists.")
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
			return
		default:
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	td := app.newTemplateData(r)
	td.Title = "Update Genre"
	td.Genre = genre
	td.Form = &input
	td.Errors = v.Errors
	app.render(w, r, http.StatusUnprocessableEntity, "genre_form.tmpl", td)
}

// deleteGenreFormHandler handles GET /catalog/genre/:id/delete.
func (app *applicationDependencies) deleteGenreFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	genre, books, err := app.loadGenreWithBooks(r, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	td := app.newTemplateData(r)
	td.Title = "Delete Genre"
	td.Genre = genre
	td.Books = books
	app.render(w, r, http.StatusOK, "genre_delete.tmpl", td)
}

// deleteGenreHandler handles POST /catalog/genre/:id/delete.
// A genre still used by books is kept and the confirmation page lists them.
func (app *applicationDependencies) deleteGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readFormID(w, r, "genreid")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	genre, books, err := app.loadGenreWithBooks(r, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.redirect(w, r, "/catalog/genres")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if len(books) > 0 {
		td := app.newTemplateData(r)
		td.Title = "Delete Genre"
		td.Genre = genre
		td.Books = books
		app.render(w, r, http.StatusOK, "genre_delete.tmpl", td)
		return
	}

	err = app.models.Genres.Delete(r.Context(), id)
	if err != nil && !errors.Is(err, data.ErrRecordNotFound) {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.redirect(w, r, "/catalog/genres")
}
