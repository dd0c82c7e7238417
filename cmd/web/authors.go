// cmd/web/authors.go
// Handlers for the author pages under /catalog/authors and /catalog/author/:id.
package main

import (
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/aoideee/locallibrary/internal/data"
)

// listAuthorsHandler handles GET /catalog/authors.
func (app *applicationDependencies) listAuthorsHandler(w http.ResponseWriter, r *http.Request) {
	authors, err := app.models.Authors.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	td := app.newTemplateData(r)
	td.Title = "Author List"
	td.Authors = authors
	app.render(w, r, http.StatusOK, "author_list.tmpl", td)
}

// loadAuthorWithBooks fetches an author and the books referencing it in parallel.
func (app *applicationDependencies) loadAuthorWithBooks(r *http.Request, id string) (*data.Author, []*data.Book, error) {
	var (
		author *data.Author
		books  []*data.Book
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		author, err = app.models.Authors.Get(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		books, err = app.models.Books.GetByAuthor(ctx, id)
		return err
	})

	err := g.Wait()
	if err != nil {
		return nil, nil, err
	}
	return author, books, nil
}

// showAuthorHandler handles GET /catalog/author/:id.
func (app *applicationDependencies) showAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	author, books, err := app.loadAuthorWithBooks(r, id)
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
	td.Title = "Author Detail"
	td.Author = author
	td.Books = books
	app.render(w, r, http.StatusOK, "author_detail.tmpl", td)
}

// createAuthorFormHandler handles GET /catalog/authors/create.
func (app *applicationDependencies) createAuthorFormHandler(w http.ResponseWriter, r *http.Request) {
	td := app.newTemplateData(r)
	td.Title = "Create Author"
	td.Form = &authorForm{}
	app.render(w, r, http.StatusOK, "author_form.tmpl", td)
}

// createAuthorHandler handles POST /catalog/authors/create.
// Invalid input re-renders the form with 422 and nothing is stored.
func (app *applicationDependencies) createAuthorHandler(w http.ResponseWriter, r *http.Request) {
	var input authorForm

	v, err := app.readForm(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	input.checkLifespan(v)

	if !v.Valid() {
		td := app.newTemplateData(r)
		td.Title = "Create Author"
		td.Form = &input
		td.Errors = v.Errors
		app.render(w, r, http.StatusUnprocessableEntity, "author_form.tmpl", td)
		return
	}

	author := &data.Author{}
	input.apply(author)

	err = app.models.Authors.Insert(r.Context(), author)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.redirect(w, r, author.URL())
}

// updateAuthorFormHandler handles GET /catalog/author/:id/update.
func (app *applicationDependencies) updateAuthorFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	author, err := app.models.Authors.Get(r.Context(), id)
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
	td.Title = "Update Author"
	td.Author = author
	td.Form = newAuthorForm(author)
	app.render(w, r, http.StatusOK, "author_form.tmpl", td)
}

// updateAuthorHandler handles POST /catalog/author/:id/update.
// The stored author is replaced in full; its ID never changes.
func (app *applicationDependencies) updateAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	author, err := app.models.Authors.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	var input authorForm
	v, err := app.readForm(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	input.checkLifespan(v)

	if !v.Valid() {
		td := app.newTemplateData(r)
		td.Title = "Update Author"
		td.Author = author
		td.Form = &input
		td.Errors = v.Errors
		app.render(w, r, http.StatusUnprocessableEntity, "author_form.tmpl", td)
		return
	}

	input.apply(author)

	err = app.models.Authors.Update(r.Context(), author)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.redirect(w, r, author.URL())
}

// deleteAuthorFormHandler handles GET /catalog/author/:id/delete.
func (app *applicationDependencies) deleteAuthorFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	author, books, err := app.loadAuthorWithBooks(r, id)
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
	td.Title = "Delete Author"
	td.Author = author
	td.Books = books
	app.render(w, r, http.StatusOK, "author_delete.tmpl", td)
}

// deleteAuthorHandler handles POST /catalog/author/:id/delete.
// An author that still has books is not deleted; the confirmation page is
// shown again listing them.
func (app *applicationDependencies) deleteAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readFormID(w, r, "authorid")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	author, books, err := app.loadAuthorWithBooks(r, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.redirect(w, r, "/catalog/authors")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if len(books) > 0 {
		td := app.newTemplateData(r)
		td.Title = "Delete Author"
		td.Author = author
		td.Books = books
		app.render(w, r, http.StatusOK, "author_delete.tmpl", td)
		return
	}

	err = app.models.Authors.Delete(r.Context(), id)
	if err != nil && !errors.Is(err, data.ErrRecordNotFound) {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.redirect(w, r, "/catalog/authors")
}
