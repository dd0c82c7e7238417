// internal/data/genres.go
package data

// Genre is a category books can belong to.
type Genre struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

// URL is the canonical detail location of the genre.
func (g Genre) URL() string {
	return "/catalog/genre/" + g.ID
}
