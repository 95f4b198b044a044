// Package repository defines error values that are reused across multiple
// repositories.  These sentinel values allow handlers to distinguish
// failure scenarios without inspecting driver-specific error strings at the
// HTTP layer: a missing row, a duplicate unique column, or a delete blocked
// by dependent records.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a referenced row does not exist.  Handlers
// translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when a user insert collides with the unique
// username column.  Duplicates map to HTTP 400 for compatibility with the
// existing clients, which expect validation-style errors.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when a student or teacher insert/update
// collides with the unique email column.
var ErrEmailExists = errors.New("email already exists")

// ErrCourseExists is returned when a course insert/update collides with the
// unique abbreviation column.
var ErrCourseExists = errors.New("course abbreviation already exists")

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isForeignKeyViolation reports whether err is a MySQL foreign key failure
// (error 1452), raised when an insert references a missing parent row.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1452")
}
