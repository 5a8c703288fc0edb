package domain

import "io"

// UserSummary is one entry of the user listing endpoint.
type UserSummary struct {
	ID        int     `json:"id"`
	Username  string  `json:"username"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Avatar    *string `json:"avatar"`
}

// FullName joins first and last name the way cards display them.
func (u UserSummary) FullName() string {
	return joinName(u.FirstName, u.LastName)
}

// Avatar is the nested image object returned by the user detail endpoint.
type Avatar struct {
	Image string `json:"image"`
}

// UserDetail is the payload of the single-user endpoint.
type UserDetail struct {
	ID        int     `json:"id"`
	Username  string  `json:"username"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email"`
	Avatar    *Avatar `json:"avatar"`
}

// FullName joins first and last name.
func (u UserDetail) FullName() string {
	return joinName(u.FirstName, u.LastName)
}

// UserPage is the paginated envelope around the user listing.
type UserPage struct {
	Count    int           `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []UserSummary `json:"results"`
}

// TokenPair is issued by the token endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Upload is an optional file attached to a multipart form.
type Upload struct {
	Filename string
	Content  io.Reader
}

// Registration carries the fields of the sign-up form.
type Registration struct {
	Username  string  `form:"username" validate:"required,max=150"`
	Email     string  `form:"email" validate:"required,email"`
	Password  string  `form:"password" validate:"required,min=8"`
	FirstName string  `form:"first_name" validate:"max=150"`
	LastName  string  `form:"last_name" validate:"max=150"`
	Avatar    *Upload `form:"-"`
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
