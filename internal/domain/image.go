package domain

import "net/url"

// Image is a stored picture as returned by the images endpoint. The endpoint
// answers with a form-encoded body, so every field is kept in Fields and the
// well-known ones are lifted out.
type Image struct {
	ID     int
	URL    string
	Fields url.Values
}
