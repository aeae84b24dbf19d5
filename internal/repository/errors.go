// Package repository contains data access logic separated from HTTP
// handlers.  Sentinel errors defined here let handlers distinguish failure
// scenarios without inspecting driver errors: ErrNotFound maps to 404 and
// ErrDuplicate to 409.  Ownership is checked at the handler layer, so no
// forbidden sentinel exists here.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique constraint,
// e.g. registering a username or email twice.  The database constraint is
// the sole safeguard against concurrent duplicate registration; the loser
// of the race receives this error.
var ErrDuplicate = errors.New("duplicate entry")

// ErrReferenced is returned when a delete is blocked by rows that still
// reference the target, e.g. removing a user who owns records.
var ErrReferenced = errors.New("still referenced")

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error code 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isReferenced reports whether err is a MySQL foreign-key violation on
// delete (error code 1451).
func isReferenced(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1451")
}
