// cmd/web/helpers.go
// General-purpose helpers for reading requests and writing responses.
// Error-page helpers live in errors.go.
package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/form/v4"
	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/locallibrary/internal/data"
)

// maxFormBytes caps form bodies at 1 MB.
const maxFormBytes = 1_048_576

// envelope is the top-level JSON wrapper for the few JSON endpoints.
type envelope map[string]any

// readIDParam extracts the ":id" URL parameter added by httprouter.
// Returns an error if the value does not have the shape of a document identifier.
func (app *applicationDependencies) readIDParam(r *http.Request) (string, error) {
	params := httprouter.ParamsFromContext(r.Context())
	id := params.ByName("id")
	if !data.ValidID(id) {
		return "", errors.New("invalid id parameter")
	}
	return id, nil
}

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type to "application/json", writes the status code, and
// streams the body to the client.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// decodePostForm parses a form-encoded body into dst, using the `form` struct tags.
func (app *applicationDependencies) decodePostForm(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	err := r.ParseForm()
	if err != nil {
		return err
	}

	err = app.formDecoder.Decode(dst, r.PostForm)
	if err != nil {
		// A non-pointer dst is a bug in the caller, not bad input.
		var invalidDecoderError *form.InvalidDecoderError
		if errors.As(err, &invalidDecoderError) {
			panic(err)
		}
		return err
	}
	return nil
}

// readFormID returns the identifier a delete form submits in field, falling
// back to the ":id" URL parameter when the field is absent.
func (app *applicationDependencies) readFormID(w http.ResponseWriter, r *http.Request, field string) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	err := r.ParseForm()
	if err != nil {
		return "", err
	}

	id := r.PostForm.Get(field)
	if id == "" {
		return app.readIDParam(r)
	}
	if !data.ValidID(id) {
		return "", errors.New("invalid " + field)
	}
	return id, nil
}

// redirect sends the client to url with 303 See Other, so a browser follows a
// POST with a GET.
func (app *applicationDependencies) redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}
