// cmd/web/bookinstances.go
// Handlers for the copy pages under /catalog/bookinstances and
// /catalog/bookinstance/:id.
package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/validator"
)

// listBookInstancesHandler handles GET /catalog/bookinstances.
func (app *applicationDependencies) listBookInstancesHandler(w http.ResponseWriter, r *http.Request) {
	instances, err := app.models.BookInstances.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	td := app.newTemplateData(r)
	td.Title = "Book Instance List"
	td.BookInstances = instances
	app.render(w, r, http.StatusOK, "bookinstance_list.tmpl", td)
}

// bookInstanceFormData builds the payload for the copy form: every book for
// the select plus the allowed statuses.
func (app *applicationDependencies) bookInstanceFormData(r *http.Request, title string, input *bookInstanceForm) (templateData, error) {
	books, err := app.models.Books.GetAll(r.Context())
	if err != nil {
		return templateData{}, err
	}

	td := app.newTemplateData(r)
	td.Title = title
	td.Books = books
	td.Statuses = data.StatusStrings()
	td.Form = input
	return td, nil
}

// checkInstanceRefs records an error when the referenced book does not exist.
func (app *applicationDependencies) checkInstanceRefs(ctx context.Context, v *validator.Validator, input *bookInstanceForm) error {
	if v.For("book") != "" {
		return nil
	}

	_, err := app.models.Books.Get(ctx, input.Book)
	switch {
	case errors.Is(err, data.ErrRecordNotFound):
		v.AddError("book", "Book must reference an existing record.")
	case err != nil:
		return err
	}
	return nil
}

// getBookInstance loads the copy named by the ":id" parameter, writing the
// 404 or 500 response itself when that fails.
func (app *applicationDependencies) getBookInstance(w http.ResponseWriter, r *http.Request) (*data.BookInstance, bool) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return nil, false
	}

	instance, err := app.models.BookInstances.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return nil, false
	}
	return instance, true
}

// showBookInstanceHandler handles GET /catalog/bookinstance/:id.
func (app *applicationDependencies) showBookInstanceHandler(w http.ResponseWriter, r *http.Request) {
	instance, ok := app.getBookInstance(w, r)
	if !ok {
		return
	}

	td := app.newTemplateData(r)
	td.Title = "Copy Detail"
	td.BookInstance = instance
	app.render(w, r, http.StatusOK, "bookinstance_detail.tmpl", td)
}

// createBookInstanceFormHandler handles GET /catalog/bookinstances/create.
func (app *applicationDependencies) createBookInstanceFormHandler(w http.ResponseWriter, r *http.Request) {
	input := &bookInstanceForm{Status: string(data.StatusMaintenance)}

	td, err := app.bookInstanceFormData(r, "Create BookInstance", input)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	app.render(w, r, http.StatusOK, "bookinstance_form.tmpl", td)
}

// createBookInstanceHandler handles POST /catalog/bookinstances/create.
func (app *applicationDependencies) createBookInstanceHandler(w http.ResponseWriter, r *http.Request) {
	var input bookInstanceForm

	v, err := app.readForm(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.checkInstanceRefs(r.Context(), v, &input)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !v.Valid() {
		td, err := app.bookInstanceFormData(r, "Create BookInstance", &input)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		td.Errors = v.Errors
		app.render(w, r, http.StatusUnprocessableEntity, "bookinstance_form.tmpl", td)
		return
	}

	instance := &data.BookInstance{}
	input.apply(instance)

	err = app.models.BookInstances.Insert(r.Context(), instance)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.redirect(w, r, instance.URL())
}

// updateBookInstanceFormHandler handles GET /catalog/bookinstance/:id/update.
func (app *applicationDependencies) updateBookInstanceFormHandler(w http.ResponseWriter, r *http.Request) {
	instance, ok := app.getBookInstance(w, r)
	if !ok {
		return
	}

	td, err := app.bookInstanceFormData(r, "Update BookInstance", newBookInstanceForm(instance))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	td.BookInstance = instance
	app.render(w, r, http.StatusOK, "bookinstance_form.tmpl", td)
}

// updateBookInstanceHandler handles POST /catalog/bookinstance/:id/update.
func (app *applicationDependencies) updateBookInstanceHandler(w http.ResponseWriter, r *http.Request) {
	instance, ok := app.getBookInstance(w, r)
	if !ok {
		return
	}

	var input bookInstanceForm
	v, err := app.readForm(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.checkInstanceRefs(r.Context(), v, &input)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !v.Valid() {
		td, err := app.bookInstanceFormData(r, "Update BookInstance", &input)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		td.BookInstance = instance
		td.Errors = v.Errors
		app.render(w, r, http.StatusUnprocessableEntity, "bookinstance_form.tmpl", td)
		return
	}

	input.apply(instance)

	err = app.models.BookInstances.Update(r.Context(), instance)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.redirect(w, r, instance.URL())
}

// deleteBookInstanceFormHandler handles GET /catalog/bookinstance/:id/delete.
func (app *applicationDependencies) deleteBookInstanceFormHandler(w http.ResponseWriter, r *http.Request) {
	instance, ok := app.getBookInstance(w, r)
	if !ok {
		return
	}

	td := app.newTemplateData(r)
	td.Title = "Delete BookInstance"
	td.BookInstance = instance
	app.render(w, r, http.StatusOK, "bookinstance_delete.tmpl", td)
}

// deleteBookInstanceHandler handles POST /catalog/bookinstance/:id/delete.
// Nothing references a copy, so the delete is unconditional.
func (app *applicationDependencies) deleteBookInstanceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readFormID(w, r, "bookinstanceid")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.models.BookInstances.Delete(r.Context(), id)
	if err != nil && !errors.Is(err, data.ErrRecordNotFound) {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.redirect(w, r, "/catalog/bookinstances")
}
