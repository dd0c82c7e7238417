// cmd/web/handlers.go
// Landing page and service endpoints. The per-entity handlers live in
// authors.go, books.go, genres.go and bookinstances.go.
package main

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/aoideee/locallibrary/internal/data"
)

// homeHandler handles GET /. The catalog is the only thing the site serves.
func (app *applicationDependencies) homeHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/catalog", http.StatusFound)
}

// indexHandler handles GET /catalog.
// The five counts are independent, so they run concurrently; the first
// failure cancels the rest and fails the request.
func (app *applicationDependencies) indexHandler(w http.ResponseWriter, r *http.Request) {
	var counts catalogCounts

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		counts.Books, err = app.models.Books.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		counts.BookInstances, err = app.models.BookInstances.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		counts.AvailableInstances, err = app.models.BookInstances.CountByStatus(ctx, data.StatusAvailable)
		return err
	})
	g.Go(func() (err error) {
		counts.Authors, err = app.models.Authors.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Genres, err = app.models.Genres.Count(ctx)
		return err
	})

	err := g.Wait()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	td := app.newTemplateData(r)
	td.Title = "Local Library Home"
	td.Counts = counts
	app.render(w, r, http.StatusOK, "index.tmpl", td)
}

// healthcheckHandler handles GET /healthcheck.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	env := envelope{
		"status": "available",
		"system_info": map[string]string{
			"environment": app.config.environment,
			"driver":      app.config.db.driver,
			"version":     appVersion,
		},
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
