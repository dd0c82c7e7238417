// internal/data/bookinstances.go
package data

import "time"

// Status is the lending state of a physical copy.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusMaintenance Status = "Maintenance"
	StatusLoaned      Status = "Loaned"
	StatusReserved    Status = "Reserved"
)

// Statuses lists every valid Status in display order.
var Statuses = []Status{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}

// BookInstance is one physical copy of a Book.
type BookInstance struct {
	ID      string     `json:"id" bson:"_id"`
	BookID  string     `json:"book" bson:"book"`
	Imprint string     `json:"imprint" bson:"imprint"`
	Status  Status     `json:"status" bson:"status"`
	DueBack *time.Time `json:"due_back,omitempty" bson:"due_back,omitempty"`

	Book *Book `json:"-" bson:"-"`
}

// URL is the canonical detail location of the copy.
func (bi BookInstance) URL() string {
	return "/catalog/bookinstance/" + bi.ID
}

// DueBackFormatted renders the due date for display.
func (bi BookInstance) DueBackFormatted() string {
	return FormatDate(bi.DueBack)
}

// StatusStrings returns Statuses as plain strings, for validation and templates.
func StatusStrings() []string {
	out := make([]string, len(Statuses))
	for i, s := range Statuses {
		out[i] = string(s)
	}
	return out
}
