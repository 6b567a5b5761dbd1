// Package memory implements repository.EmployeeRepository as an in-memory
// ordered collection.
//
// WHY IN-MEMORY?
// The directory is deliberately volatile: it is reseeded from an external
// people source on every start, and losing edits on restart is accepted
// behaviour. A slice guarded by a mutex gives us exactly the semantics the
// store contract asks for — insertion order with newest first — with no
// persistence machinery to maintain.
//
// LOCKING DISCIPLINE:
// A single sync.RWMutex serializes writers. The email uniqueness check runs
// INSIDE the write lock of InsertFront/Replace, so "check then mutate" is one
// atomic unit — two concurrent creates with the same email can never both
// succeed, and an update can never race a create into a duplicate.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/xid"

	"github.com/sakif/employee-directory/internal/apperror"
	"github.com/sakif/employee-directory/internal/model"
	"github.com/sakif/employee-directory/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// `var _ X = (*Y)(nil)` makes the compiler verify that *Store implements
// repository.EmployeeRepository. If a method is missing or has the wrong
// signature, the build fails here instead of at some distant call site.
var _ repository.EmployeeRepository = (*Store)(nil)

// Store holds the employee records for the lifetime of the process.
type Store struct {
	mu        sync.RWMutex
	employees []model.Employee
}

// New creates an empty Store.
func New() *Store {
	return &Store{employees: []model.Employee{}}
}

// normalizeEmail is the canonical form used for uniqueness comparison:
// surrounding whitespace removed, lowercased. Records keep the email exactly
// as submitted (minus trimming); only the COMPARISON is case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// emailTakenLocked reports whether any record other than excludeID uses the
// given email. Callers must hold at least the read lock.
func (s *Store) emailTakenLocked(email, excludeID string) bool {
	want := normalizeEmail(email)
	for i := range s.employees {
		if s.employees[i].ID == excludeID {
			continue
		}
		if normalizeEmail(s.employees[i].Email) == want {
			return true
		}
	}
	return false
}

// indexOfLocked returns the position of the record with the given id, or -1.
// Callers must hold at least the read lock.
func (s *Store) indexOfLocked(id string) int {
	for i := range s.employees {
		if s.employees[i].ID == id {
			return i
		}
	}
	return -1
}

// InsertFront adds a new record at the front of the store.
//
// ID GENERATION WITH xid:
// When the record arrives without an ID (the normal create path), we assign
// an xid: 20 chars, URL-safe, sortable by creation time. Seed records arrive
// WITH ids (the upstream source supplies them), and those are kept as-is.
func (s *Store) InsertFront(_ context.Context, emp *model.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTakenLocked(emp.Email, "") {
		return apperror.DuplicateEmail(emp.Email)
	}

	if emp.ID == "" {
		emp.ID = xid.New().String()
	}

	// Newest-first: prepend rather than append. This is the store's natural
	// order and what All() hands to the query engine before any sort.
	s.employees = append([]model.Employee{*emp}, s.employees...)
	return nil
}

// Replace swaps the record with the given id for emp, in place.
func (s *Store) Replace(_ context.Context, id string, emp *model.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx == -1 {
		return apperror.NotFound("employee", id)
	}
	if s.emailTakenLocked(emp.Email, id) {
		return apperror.DuplicateEmail(emp.Email)
	}

	stored := *emp
	stored.ID = id // the id can never change, whatever the caller passed
	s.employees[idx] = stored
	return nil
}

// RemoveByID deletes the record with the given id.
func (s *Store) RemoveByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx == -1 {
		return apperror.NotFound("employee", id)
	}

	s.employees = append(s.employees[:idx], s.employees[idx+1:]...)
	return nil
}

// FindByID returns a copy of the record with the given id.
func (s *Store) FindByID(_ context.Context, id string) (*model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOfLocked(id)
	if idx == -1 {
		return nil, apperror.NotFound("employee", id)
	}

	// Return a copy so the caller can't reach into the live collection.
	emp := s.employees[idx]
	return &emp, nil
}

// All returns a snapshot copy of every record in store order.
//
// WHY COPY?
// The query engine filters, sorts, and slices whatever All() returns. If we
// handed out the live slice, a sort in one request would silently reorder
// the store underneath every other request. Employees contain only value
// fields (strings, int), so a slice copy is a full deep copy.
func (s *Store) All(_ context.Context) ([]model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]model.Employee, len(s.employees))
	copy(snapshot, s.employees)
	return snapshot, nil
}

// EmailExists reports whether any record other than excludeID uses the email.
func (s *Store) EmailExists(_ context.Context, email, excludeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.emailTakenLocked(email, excludeID), nil
}

// Load replaces the store contents wholesale. The seed source is assumed
// internally consistent, so no per-record uniqueness check runs here.
func (s *Store) Load(_ context.Context, emps []model.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.employees = make([]model.Employee, len(emps))
	copy(s.employees, emps)
	return nil
}
