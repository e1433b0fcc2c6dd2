package directory

import (
	"errors"
	"fmt"
	"strings"

	"tecnoAcademiaAdmin/models"
)

var (
	// ErrMissingField is returned when a required draft field is empty.
	ErrMissingField = errors.New("missing required field")
	// ErrUnknownRole is returned when a draft's role is outside the fixed set.
	ErrUnknownRole = errors.New("unknown role")
)

// ValidationError names the draft field that blocked a submit.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Draft is a provisional user record held while a form is open.
// ID is zero while adding.
type Draft struct {
	ID    int64
	Name  string
	Email string
	Role  models.Role
}

// DraftOf returns a draft initialised from an existing user.
func DraftOf(u models.User) Draft {
	return Draft{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Validate checks presence of every field and membership of the role.
// Email format is not checked.
func (d Draft) Validate() error {
	switch {
	case strings.TrimSpace(d.Name) == "":
		return &ValidationError{Field: "name", Err: ErrMissingField}
	case strings.TrimSpace(d.Email) == "":
		return &ValidationError{Field: "email", Err: ErrMissingField}
	case d.Role == "":
		return &ValidationError{Field: "role", Err: ErrMissingField}
	case !d.Role.Valid():
		return &ValidationError{Field: "role", Err: ErrUnknownRole}
	}
	return nil
}

// User converts the draft into a record with the given id.
func (d Draft) User(id int64) models.User {
	return models.User{ID: id, Name: strings.TrimSpace(d.Name), Email: strings.TrimSpace(d.Email), Role: d.Role}
}
