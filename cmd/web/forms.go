// cmd/web/forms.go
// Input schemas for every form the catalog accepts. Each schema lists the
// fields it allows, sanitizes itself, and knows how to copy its values onto
// the entity it edits.
package main

import (
	"net/http"
	"time"

	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/validator"
)

// inputForm is implemented by the pointer of every form schema.
type inputForm interface {
	fields() []string
	sanitize()
}

// readForm decodes the request body into dst, sanitizes it and runs the
// struct rules. A malformed body is returned as an error; rule failures are
// recorded on the returned Validator.
func (app *applicationDependencies) readForm(w http.ResponseWriter, r *http.Request, dst inputForm) (*validator.Validator, error) {
	err := app.decodePostForm(w, r, dst)
	if err != nil {
		return nil, err
	}

	dst.sanitize()

	v := validator.New()
	v.CheckFields(r.PostForm, dst.fields()...)

	err = v.CheckStruct(dst)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// parseDate converts an already-validated date field. Blank yields nil.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(data.DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

type authorForm struct {
	FirstName   string `form:"first_name" validate:"required,max=100"`
	FamilyName  string `form:"family_name" validate:"required,max=100"`
	DateOfBirth string `form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	DateOfDeath string `form:"date_of_death" validate:"omitempty,datetime=2006-01-02"`
}

func newAuthorForm(a *data.Author) *authorForm {
	return &authorForm{
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		DateOfBirth: data.InputDate(a.DateOfBirth),
		DateOfDeath: data.InputDate(a.DateOfDeath),
	}
}

func (f *authorForm) fields() []string {
	return []string{"first_name", "family_name", "date_of_birth", "date_of_death"}
}

func (f *authorForm) sanitize() {
	validator.SanitizeAll(&f.FirstName, &f.FamilyName, &f.DateOfBirth, &f.DateOfDeath)
}

// checkLifespan rejects a death date earlier than the birth date. Both are
// YYYY-MM-DD so string order is date order.
func (f *authorForm) checkLifespan(v *validator.Validator) {
	if f.DateOfBirth == "" || f.DateOfDeath == "" {
		return
	}
	if v.For("date_of_birth") != "" || v.For("date_of_death") != "" {
		return
	}
	v.Check(f.DateOfDeath >= f.DateOfBirth, "date_of_death", "Date of death must not be before date of birth.")
}

func (f *authorForm) apply(a *data.Author) {
	a.FirstName = f.FirstName
	a.FamilyName = f.FamilyName
	a.DateOfBirth = parseDate(f.DateOfBirth)
	a.DateOfDeath = parseDate(f.DateOfDeath)
}

// bookForm accepts genre absent, once or repeated; sanitize always leaves a
// non-nil slice without repeats.
type bookForm struct {
	Title   string   `form:"title" validate:"required,max=500"`
	Author  string   `form:"author" validate:"required,uuid"`
	Summary string   `form:"summary" validate:"required,max=5000"`
	ISBN    string   `form:"isbn" validate:"required,max=50"`
	Genre   []string `form:"genre" validate:"dive,uuid"`
}

func newBookForm(b *data.Book) *bookForm {
	return &bookForm{
		Title:   b.Title,
		Author:  b.AuthorID,
		Summary: b.Summary,
		ISBN:    b.ISBN,
		Genre:   append([]string{}, b.GenreIDs...),
	}
}

func (f *bookForm) fields() []string {
	return []string{"title", "author", "summary", "isbn", "genre"}
}

func (f *bookForm) sanitize() {
	validator.SanitizeAll(&f.Title, &f.Author, &f.Summary, &f.ISBN)
	f.Genre = validator.Dedupe(f.Genre)
}

func (f *bookForm) apply(b *data.Book) {
	b.Title = f.Title
	b.AuthorID = f.Author
	b.Summary = f.Summary
	b.ISBN = f.ISBN
	b.GenreIDs = f.Genre
}

type genreForm struct {
	Name string `form:"name" validate:"required,max=100"`
}

func (f *genreForm) fields() []string {
	return []string{"name"}
}

func (f *genreForm) sanitize() {
	f.Name = validator.Sanitize(f.Name)
}

// bookInstanceForm treats a blank status as Maintenance.
type bookInstanceForm struct {
	Book    string `form:"book" validate:"required,uuid"`
	Imprint string `form:"imprint" validate:"required,max=500"`
	Status  string `form:"status" validate:"oneof=Available Maintenance Loaned Reserved"`
	DueBack string `form:"due_back" validate:"omitempty,datetime=2006-01-02"`
}

func newBookInstanceForm(bi *data.BookInstance) *bookInstanceForm {
	return &bookInstanceForm{
		Book:    bi.BookID,
		Imprint: bi.Imprint,
		Status:  string(bi.Status),
		DueBack: data.InputDate(bi.DueBack),
	}
}

func (f *bookInstanceForm) fields() []string {
	return []string{"book", "imprint", "status", "due_back"}
}

func (f *bookInstanceForm) sanitize() {
	validator.SanitizeAll(&f.Book, &f.Imprint, &f.Status, &f.DueBack)
	if f.Status == "" {
		f.Status = string(data.StatusMaintenance)
	}
}

func (f *bookInstanceForm) apply(bi *data.BookInstance) {
	bi.BookID = f.Book
	bi.Imprint = f.Imprint
	bi.Status = data.Status(f.Status)
	bi.DueBack = parseDate(f.DueBack)
}

// genreOptions marks every genre whose ID is in selected.
func genreOptions(genres []*data.Genre, selected []string) []genreOption {
	opts := make([]genreOption, len(genres))
	for i, g := range genres {
		opts[i] = genreOption{
			ID:      g.ID,
			Name:    g.Name,
			Checked: validator.In(g.ID, selected...),
		}
	}
	return opts
}
