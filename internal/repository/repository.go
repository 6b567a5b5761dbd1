// Package repository defines the storage contract for employee records.
//
// The rest of the application depends on this interface, never on a concrete
// store. Today the only implementation is the in-memory one (the directory is
// explicitly volatile — it reseeds on every start), but the service layer
// would not change if a persistent implementation appeared later.
package repository

import (
	"context"

	"github.com/sakif/employee-directory/internal/model"
)

// EmployeeRepository is the Record Store contract.
//
// ORDERING INVARIANT:
// The store keeps records in insertion order with the newest at the FRONT.
// All() must return them in that order; it is the default order callers see
// before any explicit sort is applied.
//
// UNIQUENESS INVARIANT:
// No two records may share an email under trimmed, case-insensitive
// comparison. InsertFront and Replace enforce this themselves, atomically
// with the mutation, and return apperror.ErrDuplicateEmail on violation.
// A rejected mutation leaves the store exactly as it was.
type EmployeeRepository interface {
	// InsertFront adds a new record at the front of the store.
	// If the record has no ID, the store assigns one. The assigned ID is
	// written back through the pointer.
	InsertFront(ctx context.Context, emp *model.Employee) error

	// Replace swaps the record with the given id for emp, keeping its
	// position in the store. Returns apperror.ErrNotFound if id is absent.
	Replace(ctx context.Context, id string, emp *model.Employee) error

	// RemoveByID deletes the record with the given id.
	// Returns apperror.ErrNotFound if id is absent. IDs are never reused.
	RemoveByID(ctx context.Context, id string) error

	// FindByID returns a copy of the record with the given id, or
	// apperror.ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Employee, error)

	// All returns a snapshot copy of every record in store order.
	// Callers may filter, sort, and slice the result freely without
	// affecting the live collection.
	All(ctx context.Context) ([]model.Employee, error)

	// EmailExists reports whether any record other than excludeID already
	// uses the given email (trimmed, case-insensitive). Pass excludeID=""
	// to check against every record.
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)

	// Load replaces the entire store contents with the given records,
	// preserving their order. Used by the startup seed, which trusts its
	// source and bypasses the per-record uniqueness check.
	Load(ctx context.Context, emps []model.Employee) error
}
