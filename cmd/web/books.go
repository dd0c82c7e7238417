// cmd/web/books.go
// Handlers for the book pages under /catalog/books and /catalog/book/:id.
package main

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/validator"
)

// listBooksHandler handles GET /catalog/books.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := app.models.Books.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	td := app.newTemplateData(r)
	td.Title = "Book List"
	td.Books = books
	app.render(w, r, http.StatusOK, "book_list.tmpl", td)
}

// loadBookWithInstances fetches a book (author and genres populated) and its copies.
func (app *applicationDependencies) loadBookWithInstances(r *http.Request, id string) (*data.Book, []*data.BookInstance, error) {
	var (
		book      *data.Book
		instances []*data.BookInstance
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		book, err = app.models.Books.Get(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		instances, err = app.models.BookInstances.GetByBook(ctx, id)
		return err
	})

	err := g.Wait()
	if err != nil {
		return nil, nil, err
	}
	return book, instances, nil
}

// bookFormData builds the payload for the book form: every author for the
// select and every genre as a checkbox, ticked when input references it.
func (app *applicationDependencies) bookFormData(r *http.Request, title string, input *bookForm) (templateData, error) {
	var (
		authors []*data.Author
		genres  []*data.Genre
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		authors, err = app.models.Authors.GetAll(ctx)
		return err
	})
	g.Go(func() (err error) {
		genres, err = app.models.Genres.GetAll(ctx)
		return err
	})

	err := g.Wait()
	if err != nil {
		return templateData{}, err
	}

	td := app.newTemplateData(r)
	td.Title = title
	td.Authors = authors
	td.GenreOptions = genreOptions(genres, input.Genre)
	td.Form = input
	return td, nil
}

// checkBookRefs records an error when the author or any genre does not exist.
func (app *applicationDependencies) checkBookRefs(ctx context.Context, v *validator.Validator, input *bookForm) error {
	if v.For("author") == "" {
		_, err := app.models.Authors.Get(ctx, input.Author)
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			v.AddError("author", "Author must reference an existing record.")
		case err != nil:
			return err
		}
	}

	if v.For("genre") == "" {
		for _, id := range input.Genre {
			_, err := app.models.Genres.Get(ctx, id)
			if errors.Is(err, data.ErrRecordNotFound) {
				v.AddError("genre", "Genre must reference an existing record.")
				break
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// showBookHandler handles GET /catalog/book/:id.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	book, instances, err := app.loadBookWithInstances(r, id)
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
	td.Title = book.Title
	td.Book = book
	td.BookInstances = instances
	app.render(w, r, http.StatusOK, "book_detail.tmpl", td)
}

// createBookFormHandler handles GET /catalog/books/create.
func (app *applicationDependencies) createBookFormHandler(w http.ResponseWriter, r *http.Request) {
	td, err := app.bookFormData(r, "Create Book", &bookForm{Genre: []string{}})
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	app.render(w, r, http.StatusOK, "book_form.tmpl", td)
}

// createBookHandler handles POST /catalog/books/create.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input bookForm

	v, err := app.readForm(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.checkBookRefs(r.Context(), v, &input)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !v.Valid() {
		td, err := app.bookFormData(r, "Create Book", &input)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		td.Errors = v.Errors
		app.render(w, r, http.StatusUnprocessableEntity, "book_form.tmpl", td)
		return
	}

	book := &data.Book{}
	input.apply(book)

	err = app.models.Books.Insert(r.Context(), book)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.redirect(w, r, book.URL())
}

// updateBookFormHandler handles GET /catalog/book/:id/update.
func (app *applicationDependencies) updateBookFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	book, err := app.models.Books.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	td, err := app.bookFormData(r, "Update Book", newBookForm(book))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	td.Book = book
	app.render(w, r, http.StatusOK, "book_form.tmpl", td)
}

// updateBookHandler handles POST /catalog/book/:id/update.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	book, err := app.models.Books.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	var input bookForm
	v, err := app.readForm(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.checkBookRefs(r.Context(), v, &input)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !v.Valid() {
		td, err := app.bookFormData(r, "Update Book", &input)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		td.Book = book
		td.Errors = v.Errors
		app.render(w, r, http.StatusUnprocessableEntity, "book_form.tmpl", td)
		return
	}

	input.apply(book)

	err = app.models.Books.Update(r.Context(), book)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.redirect(w, r, book.URL())
}

// deleteBookFormHandler handles GET /catalog/book/:id/delete.
func (app *applicationDependencies) deleteBookFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	book, instances, err := app.loadBookWithInstances(r, id)
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
	td.Title = "Delete Book"
	td.Book = book
	td.BookInstances = instances
	app.render(w, r, http.StatusOK, "book_delete.tmpl", td)
}

// deleteBookHandler handles POST /catalog/book/:id/delete.
// A book with copies on record is kept and the confirmation page lists them.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readFormID(w, r, "bookid")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	book, instances, err := app.loadBookWithInstances(r, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.redirect(w, r, "/catalog/books")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if len(instances) > 0 {
		td := app.newTemplateData(r)
		td.Title = "Delete Book"
		td.Book = book
		td.BookInstances = instances
		app.render(w, r, http.StatusOK, "book_delete.tmpl", td)
		return
	}

	err = app.models.Books.Delete(r.Context(), id)
	if err != nil && !errors.Is(err, data.ErrRecordNotFound) {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.redirect(w, r, "/catalog/books")
}
