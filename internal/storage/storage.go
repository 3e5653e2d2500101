// Package storage defines the Storage interface — the contract the
// development backend's handlers depend on.
//
// Handlers (HTTP layer) should not know or care which database they are
// talking to. By depending only on this interface a test can pass a fake
// that satisfies it, and no real database is needed.
package storage

import (
	"errors"

	"github.com/aanand-mishra/student-registration/internal/types"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("user not found")

// Storage is the database contract.
type Storage interface {
	// CreateUser stores s under a newly generated id and returns the
	// stored record. Any id on s is ignored.
	CreateUser(s types.Student) (types.Student, error)

	// GetUserByID fetches a single record. Returns ErrNotFound if absent.
	GetUserByID(id types.ID) (types.Student, error)

	// GetUsers returns every record in insertion order.
	// Returns an empty slice (not nil) if there are none.
	GetUsers() ([]types.Student, error)

	// UpdateUserByID replaces every field of an existing record and
	// returns it. Returns ErrNotFound if absent.
	UpdateUserByID(id types.ID, s types.Student) (types.Student, error)

	// DeleteUserByID removes a record. Returns ErrNotFound if absent.
	DeleteUserByID(id types.ID) error

	// Close releases the underlying resources.
	Close() error
}
