package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/sakif/employee-directory/internal/apperror"
	"github.com/sakif/employee-directory/internal/model"
	"github.com/sakif/employee-directory/internal/query"
	"github.com/sakif/employee-directory/internal/repository/memory"
)

// newTestService wires the service to a real in-memory store.
//
// WHY NOT A MOCK?
// The production store IS an in-memory collection — a hand-written mock
// would just re-implement it, drift and all. Injecting the real thing keeps
// these tests honest about the store's uniqueness and ordering behaviour.
func newTestService(t *testing.T) (*EmployeeService, *memory.Store) {
	t.Helper()
	store := memory.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewEmployeeService(store, logger), store
}

func annInput() CreateEmployeeInput {
	return CreateEmployeeInput{
		FirstName:   "Ann",
		LastName:    "Lee",
		Email:       "ann.lee@example.com",
		Phone:       "+1-555-0101",
		Department:  "Engineering",
		Title:       "Software Engineer",
		Location:    "London",
		DateOfBirth: "1990-01-15",
		HireDate:    "2020-03-01",
		Salary:      75000,
		Status:      model.StatusActive,
	}
}

func TestCreate_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), annInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned ID")
	}

	// Fetching by id must return the record field-for-field.
	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if *got != *created {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, created)
	}
}

func TestCreate_Defaults(t *testing.T) {
	svc, _ := newTestService(t)

	in := annInput()
	in.Avatar = ""
	in.Status = ""
	in.Email = "  ann.lee@example.com  "

	created, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.Status != model.StatusActive {
		t.Errorf("Status = %q, want default active", created.Status)
	}
	if created.Email != "ann.lee@example.com" {
		t.Errorf("Email = %q, want trimmed", created.Email)
	}
	if !strings.HasPrefix(created.Avatar, "https://ui-avatars.com/api/?name=Ann") {
		t.Errorf("Avatar = %q, want a generated placeholder keyed by first name", created.Avatar)
	}
}

func TestCreate_ProvidedAvatarAndStatusKept(t *testing.T) {
	svc, _ := newTestService(t)

	in := annInput()
	in.Avatar = "https://example.com/ann.jpg"
	in.Status = model.StatusInactive

	created, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Avatar != in.Avatar {
		t.Errorf("Avatar = %q, want the submitted one", created.Avatar)
	}
	if created.Status != model.StatusInactive {
		t.Errorf("Status = %q, want inactive", created.Status)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	svc, store := newTestService(t)

	if _, err := svc.Create(context.Background(), annInput()); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	dup := annInput()
	dup.FirstName = "Other"
	dup.Email = "ANN.LEE@example.COM"
	_, err := svc.Create(context.Background(), dup)
	if !errors.Is(err, apperror.ErrDuplicateEmail) {
		t.Fatalf("error = %v, want ErrDuplicateEmail", err)
	}

	all, _ := store.All(context.Background())
	if len(all) != 1 {
		t.Errorf("store has %d records, want exactly 1 for that email", len(all))
	}
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdate_MergesOnlyProvidedFields(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), annInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	title := "Team Lead"
	salary := 90000
	updated, err := svc.Update(context.Background(), created.ID, model.EmployeePatch{
		Title:  &title,
		Salary: &salary,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Title != "Team Lead" || updated.Salary != 90000 {
		t.Errorf("patched fields not applied: %+v", updated)
	}
	// Everything else keeps its prior value.
	if updated.FirstName != created.FirstName ||
		updated.Email != created.Email ||
		updated.Department != created.Department ||
		updated.ID != created.ID {
		t.Errorf("unpatched fields changed:\n got %+v\nwant base %+v", updated, created)
	}
}

func TestUpdate_EmailUniquenessExcludesSelf(t *testing.T) {
	svc, _ := newTestService(t)

	ann, err := svc.Create(context.Background(), annInput())
	if err != nil {
		t.Fatalf("Create(ann) error = %v", err)
	}

	bobIn := annInput()
	bobIn.FirstName = "Bob"
	bobIn.Email = "bob@example.com"
	if _, err := svc.Create(context.Background(), bobIn); err != nil {
		t.Fatalf("Create(bob) error = %v", err)
	}

	// Re-submitting your own email (different case, extra whitespace) is fine.
	own := "  ANN.LEE@example.com "
	updated, err := svc.Update(context.Background(), ann.ID, model.EmployeePatch{Email: &own})
	if err != nil {
		t.Fatalf("Update() with own email error = %v", err)
	}
	if updated.Email != "ANN.LEE@example.com" {
		t.Errorf("Email = %q, want trimmed with case preserved", updated.Email)
	}

	// Taking Bob's email is a duplicate.
	stolen := "BOB@example.com"
	_, err = svc.Update(context.Background(), ann.ID, model.EmployeePatch{Email: &stolen})
	if !errors.Is(err, apperror.ErrDuplicateEmail) {
		t.Fatalf("error = %v, want ErrDuplicateEmail", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	name := "Ghost"
	_, err := svc.Update(context.Background(), "missing", model.EmployeePatch{FirstName: &name})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestDelete_TwiceSignalsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), annInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("first Delete() error = %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("second Delete() error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(context.Background(), "never-existed"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Delete(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestList_RunsEngineOverSnapshot(t *testing.T) {
	svc, _ := newTestService(t)

	for _, in := range []CreateEmployeeInput{annInput(), func() CreateEmployeeInput {
		bob := annInput()
		bob.FirstName = "Bob"
		bob.Email = "bob@example.com"
		bob.Department = "HR"
		bob.Salary = 95000
		return bob
	}()} {
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	res, err := svc.List(context.Background(), query.Descriptor{SortBy: "salary", SortOrder: query.OrderDesc, Page: 1, Limit: 1})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if res.Total != 2 {
		t.Errorf("Total = %d, want 2", res.Total)
	}
	if len(res.Employees) != 1 || res.Employees[0].FirstName != "Bob" {
		t.Errorf("page = %v, want just Bob", res.Employees)
	}
}

func TestFilters_ReflectLiveData(t *testing.T) {
	svc, _ := newTestService(t)

	opts, err := svc.Filters(context.Background())
	if err != nil {
		t.Fatalf("Filters() on empty store error = %v", err)
	}
	if len(opts.Departments) != 0 || len(opts.Titles) != 0 || len(opts.Locations) != 0 {
		t.Errorf("empty store should yield empty option sets, got %+v", opts)
	}

	if _, err := svc.Create(context.Background(), annInput()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	opts, err = svc.Filters(context.Background())
	if err != nil {
		t.Fatalf("Filters() error = %v", err)
	}
	if len(opts.Departments) != 1 || opts.Departments[0] != "Engineering" {
		t.Errorf("Departments = %v, want [Engineering]", opts.Departments)
	}
}
