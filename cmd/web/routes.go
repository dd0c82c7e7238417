// cmd/web/routes.go
package main

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/locallibrary/ui"
)

// routes registers all HTTP endpoints and returns the router wrapped in the
// middleware chain.
//
// Middleware chain (outermost → innermost):
//
//	instrument → recoverPanic → rateLimit → secureHeaders → router
//
// Lists and create forms use the plural segment, single records the singular
// one, so static and wildcard segments never compete in httprouter.
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.Handler(http.MethodGet, "/static/*filepath", http.FileServerFS(ui.Files))

	router.HandlerFunc(http.MethodGet, "/", app.homeHandler)
	router.HandlerFunc(http.MethodGet, "/catalog", app.indexHandler)
	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthcheckHandler)
	router.Handler(http.MethodGet, "/debug/vars", expvar.Handler())

	// Authors
	router.HandlerFunc(http.MethodGet, "/catalog/authors", app.listAuthorsHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/authors/create", app.createAuthorFormHandler)
	router.HandlerFunc(http.MethodPost, "/catalog/authors/create", app.createAuthorHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/author/:id", app.showAuthorHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/author/:id/update", app.updateAuthorFormHandler)
	router.HandlerFunc(http.MethodPost, "/catalog/author/:id/update", app.updateAuthorHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/author/:id/delete", app.deleteAuthorFormHandler)
	router.HandlerFunc(http.MethodPost, "/catalog/author/:id/delete", app.deleteAuthorHandler)

	// Books
	router.HandlerFunc(http.MethodGet, "/catalog/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/books/create", app.createBookFormHandler)
	router.HandlerFunc(http.MethodPost, "/catalog/books/create", app.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/book/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/book/:id/update", app.updateBookFormHandler)
	router.HandlerFunc(http.MethodPost, "/catalog/book/:id/update", app.updateBookHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/book/:id/delete", app.deleteBookFormHandler)
	router.HandlerFunc(http.MethodPost, "/catalog/book/:id/delete", app.deleteBookHandler)

	// Genres
	router.HandlerFunc(http.MethodGet, "/catalog/genres", app.listGenresHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/genres/create", app.createGenreFormHandler)
	router.HandlerFunc(http.MethodPost, "/catalog/genres/create", app.createGenreHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/genre/:id", app.showGenreHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/genre/:id/update", app.updateGenreFormHandler)
	router.HandlerFunc(http.MethodPost, "/catalog/genre/:id/update", app.updateGenreHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/genre/:id/delete", app.deleteGenreFormHandler)
	router.HandlerFunc(http.MethodPost, "/catalog/genre/:id/delete", app.deleteGenreHandler)

	// Book instances
	router.HandlerFunc(http.MethodGet, "/catalog/bookinstances", app.listBookInstancesHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/bookinstances/create", app.createBookInstanceFormHandler)
	router.HandlerFunc(http.MethodPost, "/catalog/bookinstances/create", app.createBookInstanceHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/bookinstance/:id", app.showBookInstanceHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/bookinstance/:id/update", app.updateBookInstanceFormHandler)
	router.HandlerFunc(http.MethodPost, "/catalog/bookinstance/:id/update", app.updateBookInstanceHandler)
	router.HandlerFunc(http.MethodGet, "/catalog/bookinstance/:id/delete", app.deleteBookInstanceFormHandler)
	router.HandlerFunc(http.MethodPost, "/catalog/bookinstance/:id/delete", app.deleteBookInstanceHandler)

	// secureHeaders wraps recoverPanic and rateLimit so 500 and 429 pages get the headers too.
	return app.instrument(secureHeaders(app.recoverPanic(app.rateLimit(router))))
}
