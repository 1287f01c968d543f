// Package models defines the domain entities and the request payloads that
// carry them, together with their validation rules.
package models

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/akinalp/filmorate/pkg"
)

// User is a registered person. ID 0 means not yet persisted.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday *Date  `json:"birthday"`
}

// Validate checks every field and reports all failures at once.
func (u *User) Validate() error {
	verr := &pkg.ValidationError{}

	email := strings.TrimSpace(u.Email)
	switch {
	case email == "":
		verr.Add("email is required")
	case !isEmail(email):
		verr.Add("email must be a well-formed address")
	}

	switch {
	case strings.TrimSpace(u.Login) == "":
		verr.Add("login is required")
	case strings.IndexFunc(u.Login, unicode.IsSpace) >= 0:
		verr.Add("login must not contain whitespace")
	}

	if u.Birthday != nil && u.Birthday.After(Today()) {
		verr.Add("birthday must not be in the future")
	}

	return verr.OrNil()
}

// ApplyDefaults fills the display name from the login when it is blank.
func (u *User) ApplyDefaults() {
	u.Email = strings.TrimSpace(u.Email)
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}

// isEmail accepts a bare address only, rejecting "Name <addr>" forms.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
