// Package data provides the catalog entity types and the store contracts
// every persistence backend implements.
package data

import "time"

// DateLayout is the layout used for date form fields and their stored form.
const DateLayout = "2006-01-02"

// displayLayout renders dates for people, e.g. "Oct 19, 2026".
const displayLayout = "Jan 2, 2006"

// Author is a person who wrote one or more books.
type Author struct {
	ID          string     `json:"id" bson:"_id"`
	FirstName   string     `json:"first_name" bson:"first_name"`
	FamilyName  string     `json:"family_name" bson:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty" bson:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty" bson:"date_of_death,omitempty"`
}

// Name returns "family, first", or an empty string when either part is missing.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan renders the birth and death dates; unknown ends are left blank.
func (a Author) Lifespan() string {
	return FormatDate(a.DateOfBirth) + " - " + FormatDate(a.DateOfDeath)
}

// URL is the canonical detail location of the author.
func (a Author) URL() string {
	return "/catalog/author/" + a.ID
}

// FormatDate renders t for display, or "" when t is nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(displayLayout)
}

// InputDate renders t in the layout expected by date inputs, or "" when t is nil.
func InputDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
