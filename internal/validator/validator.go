// Package validator provides a Validator type for accumulating field-level
// validation errors and returning them as an ordered list.
package validator

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	playground "github.com/go-playground/validator/v10"
)

// FieldError describes one failed check on one form field.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
	Value string `json:"value,omitempty"`
}

// Validator holds the field errors in the order they were found.
// A Validator with no errors is considered valid.
type Validator struct {
	Errors []FieldError
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{Errors: []FieldError{}}
}

// Valid returns true if no errors were recorded.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing with the given message.
// If key already has an error it is not overwritten, so the first
// failure for a field is always the one that is reported.
func (v *Validator) AddError(key, message string) {
	v.add(FieldError{Msg: message, Param: key})
}

func (v *Validator) add(fe FieldError) {
	for _, existing := range v.Errors {
		if existing.Param == fe.Param {
			return
		}
	}
	v.Errors = append(v.Errors, fe)
}

// Check adds an error for key with message only when ok is false.
// Use this as a single-line guard:
//
//	v.Check(len(title) > 0, "title", "Title must not be empty.")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// For returns the message recorded for key, or "".
func (v *Validator) For(key string) string {
	for _, fe := range v.Errors {
		if fe.Param == key {
			return fe.Msg
		}
	}
	return ""
}

// CheckFields records an error for every submitted key that is not in allowed.
func (v *Validator) CheckFields(values url.Values, allowed ...string) {
	keys := make([]string, 0, len(values))
	for key := range values {
		if !In(key, allowed...) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		v.AddError(key, fmt.Sprintf("Unexpected field %q.", key))
	}
}

var rules = newRules()

func newRules() *playground.Validate {
	validate := playground.New(playground.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// CheckStruct evaluates the `validate` tags on dst and records one error per
// failing field, keyed by the field's `form` name.
func (v *Validator) CheckStruct(dst any) error {
	err := rules.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	for _, fe := range fieldErrs {
		param, _, _ := strings.Cut(fe.Field(), "[")
		v.add(FieldError{
			Msg:   message(param, fe),
			Param: param,
			Value: fmt.Sprint(fe.Value()),
		})
	}
	return nil
}

func message(param string, fe playground.FieldError) string {
	label := label(param)
	switch fe.Tag() {
	case "required":
		return label + " must be specified."
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters.", label, fe.Param())
	case "datetime":
		return label + " must be a valid date."
	case "uuid":
		return label + " must reference an existing record."
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return label + " is invalid."
	}
}

// label turns "date_of_birth" into "Date of birth".
func label(param string) string {
	s := strings.ReplaceAll(param, "_", " ")
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// In returns true if value is present in the list slice.
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}
