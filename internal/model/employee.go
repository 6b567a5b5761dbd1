// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// Status is the employment status of an employee.
//
// WHY A NAMED STRING TYPE?
// We could use a plain string, but a named type documents intent and lets
// the compiler catch mix-ups (you can't accidentally pass a department where
// a Status is expected without an explicit conversion). The underlying type
// is still string, so JSON encoding works with no extra code.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid reports whether s is one of the known status values.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Employee represents one person in the directory.
//
// The `json:"..."` tags tell Go's encoding/json package how to serialize/deserialize
// this struct to/from JSON. The API uses lowerCamel field names, matching what
// the web client expects.
//
// WHY ARE DATES STRINGS?
// DateOfBirth and HireDate are stored as date-formatted strings ("2020-03-01")
// rather than time.Time. The directory only ever displays and sorts them, and
// ISO dates sort correctly as plain strings — parsing them would add failure
// modes without adding capability.
type Employee struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Department  string `json:"department"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Avatar      string `json:"avatar"`
	DateOfBirth string `json:"dateOfBirth"`
	HireDate    string `json:"hireDate"`
	Salary      int    `json:"salary"`
	Status      Status `json:"status"`
}

// EmployeePatch carries a partial update for an existing employee.
//
// POINTER FIELDS FOR PATCH SEMANTICS:
// Each field is a pointer so we can tell "not provided" (nil) apart from
// "provided as empty" (&""). A PATCH request only changes the fields the
// client actually sent; everything else keeps its current value.
//
// There is deliberately NO ID field here — the record id is immutable, and
// leaving it out of the patch type makes overwriting it impossible rather
// than merely forbidden.
type EmployeePatch struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Department  *string `json:"department"`
	Title       *string `json:"title"`
	Location    *string `json:"location"`
	Avatar      *string `json:"avatar"`
	DateOfBirth *string `json:"dateOfBirth"`
	HireDate    *string `json:"hireDate"`
	Salary      *int    `json:"salary"`
	Status      *Status `json:"status"`
}
