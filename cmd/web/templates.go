// cmd/web/templates.go
// This file contains the page data passed to templates and the template cache.
package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/validator"
	"github.com/aoideee/locallibrary/ui"
)

// catalogCounts feeds the landing page.
type catalogCounts struct {
	Books              int
	BookInstances      int
	AvailableInstances int
	Authors            int
	Genres             int
}

// genreOption is one checkbox on the book form.
type genreOption struct {
	ID      string
	Name    string
	Checked bool
}

// templateData is the single payload type every page template receives.
type templateData struct {
	Title       string
	CurrentYear int

	Counts        catalogCounts
	Author        *data.Author
	Authors       []*data.Author
	Book          *data.Book
	Books         []*data.Book
	Genre         *data.Genre
	Genres        []*data.Genre
	BookInstance  *data.BookInstance
	BookInstances []*data.BookInstance

	Form         any
	Errors       []validator.FieldError
	GenreOptions []genreOption
	Statuses     []string

	Status  int
	Message string
}

func (app *applicationDependencies) newTemplateData(r *http.Request) templateData {
	return templateData{
		CurrentYear: time.Now().Year(),
	}
}

// statusClass picks the CSS class a copy's status is shown with.
func statusClass(s data.Status) string {
	switch s {
	case data.StatusAvailable:
		return "text-success"
	case data.StatusMaintenance:
		return "text-danger"
	default:
		return "text-warning"
	}
}

// summaryPolicy keeps inline emphasis in book summaries. Everything else,
// including a stray "<", comes out escaped or dropped.
var summaryPolicy = bluemonday.NewPolicy().AllowElements("b", "i", "em", "strong")

// summaryHTML renders a stored summary for the book detail page.
func summaryHTML(s string) template.HTML {
	return template.HTML(summaryPolicy.Sanitize(s))
}

var functions = template.FuncMap{
	"statusClass": statusClass,
	"summaryHTML": summaryHTML,
}

// newTemplateCache parses every page once, each together with the base layout
// and the partials.
func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := fs.Glob(ui.Files, "html/pages/*.tmpl")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		// Pages are keyed by file name, e.g. "book_detail.tmpl".
		name := filepath.Base(page)

		// Every page set carries the layout and all partials.
		patterns := []string{
			"html/base.tmpl",
			"html/partials/*.tmpl",
			page,
		}

		ts, err := template.New(name).Funcs(functions).ParseFS(ui.Files, patterns...)
		if err != nil {
			return nil, err
		}

		cache[name] = ts
	}

	return cache, nil
}

// render executes page into a buffer first so a template error still produces
// a clean 500 instead of a half-written page.
func (app *applicationDependencies) render(w http.ResponseWriter, r *http.Request, status int, page string, td templateData) {
	ts, ok := app.templateCache[page]
	if !ok {
		app.serverErrorResponse(w, r, fmt.Errorf("the template %s does not exist", page))
		return
	}

	// Execute into a buffer; only a complete page reaches the client.
	buf := new(bytes.Buffer)
	err := ts.ExecuteTemplate(buf, "base", td)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
