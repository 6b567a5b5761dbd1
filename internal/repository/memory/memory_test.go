package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/employee-directory/internal/apperror"
	"github.com/sakif/employee-directory/internal/model"
)

func ctx() context.Context { return context.Background() }

func mustInsert(t *testing.T, s *Store, emp model.Employee) model.Employee {
	t.Helper()
	if err := s.InsertFront(ctx(), &emp); err != nil {
		t.Fatalf("InsertFront(%s) error = %v", emp.Email, err)
	}
	return emp
}

func TestInsertFront_AssignsID(t *testing.T) {
	s := New()

	emp := mustInsert(t, s, model.Employee{FirstName: "Ann", Email: "ann@x.com"})
	if emp.ID == "" {
		t.Fatal("expected an assigned ID")
	}

	// Records arriving with an id (the seed path) keep it.
	withID := mustInsert(t, s, model.Employee{ID: "seed-1", Email: "bob@x.com"})
	if withID.ID != "seed-1" {
		t.Errorf("ID = %q, want seed-1", withID.ID)
	}
}

func TestInsertFront_NewestFirstOrder(t *testing.T) {
	s := New()
	mustInsert(t, s, model.Employee{FirstName: "First", Email: "first@x.com"})
	mustInsert(t, s, model.Employee{FirstName: "Second", Email: "second@x.com"})
	mustInsert(t, s, model.Employee{FirstName: "Third", Email: "third@x.com"})

	all, err := s.All(ctx())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}

	want := []string{"Third", "Second", "First"}
	for i, name := range want {
		if all[i].FirstName != name {
			t.Fatalf("order = %v, want newest first %v", names(all), want)
		}
	}
}

func names(emps []model.Employee) []string {
	out := make([]string, len(emps))
	for i, e := range emps {
		out[i] = e.FirstName
	}
	return out
}

func TestInsertFront_RejectsDuplicateEmailCaseInsensitive(t *testing.T) {
	s := New()
	mustInsert(t, s, model.Employee{FirstName: "Ann", Email: "Ann@X.com"})

	err := s.InsertFront(ctx(), &model.Employee{FirstName: "Imposter", Email: "  ann@x.COM  "})
	if !errors.Is(err, apperror.ErrDuplicateEmail) {
		t.Fatalf("error = %v, want ErrDuplicateEmail", err)
	}

	// The rejected insert must leave exactly one record for that email.
	all, _ := s.All(ctx())
	if len(all) != 1 {
		t.Errorf("store has %d records after rejected insert, want 1", len(all))
	}
	if all[0].FirstName != "Ann" {
		t.Errorf("surviving record = %q, want the original", all[0].FirstName)
	}
}

func TestReplace(t *testing.T) {
	s := New()
	ann := mustInsert(t, s, model.Employee{FirstName: "Ann", Email: "ann@x.com"})
	mustInsert(t, s, model.Employee{FirstName: "Bob", Email: "bob@x.com"})

	t.Run("keeps position and enforces id immutability", func(t *testing.T) {
		updated := ann
		updated.ID = "attacker-chosen" // must be ignored
		updated.Title = "Team Lead"

		if err := s.Replace(ctx(), ann.ID, &updated); err != nil {
			t.Fatalf("Replace() error = %v", err)
		}

		got, err := s.FindByID(ctx(), ann.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if got.ID != ann.ID {
			t.Errorf("ID = %q, want original %q", got.ID, ann.ID)
		}
		if got.Title != "Team Lead" {
			t.Errorf("Title = %q, want Team Lead", got.Title)
		}

		// Position in store order unchanged: Bob still first, Ann second.
		all, _ := s.All(ctx())
		if all[0].FirstName != "Bob" || all[1].FirstName != "Ann" {
			t.Errorf("order = %v, want [Bob Ann]", names(all))
		}
	})

	t.Run("keeping your own email is not a duplicate", func(t *testing.T) {
		same := ann
		same.Email = "ANN@x.com" // same address, different case
		if err := s.Replace(ctx(), ann.ID, &same); err != nil {
			t.Fatalf("Replace() with own email error = %v", err)
		}
	})

	t.Run("taking another record's email is rejected", func(t *testing.T) {
		stolen := ann
		stolen.Email = "bob@x.com"
		err := s.Replace(ctx(), ann.ID, &stolen)
		if !errors.Is(err, apperror.ErrDuplicateEmail) {
			t.Fatalf("error = %v, want ErrDuplicateEmail", err)
		}
	})

	t.Run("unknown id is NotFound", func(t *testing.T) {
		emp := model.Employee{Email: "new@x.com"}
		err := s.Replace(ctx(), "nope", &emp)
		if !errors.Is(err, apperror.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestRemoveByID_SecondDeleteIsNotFound(t *testing.T) {
	s := New()
	ann := mustInsert(t, s, model.Employee{FirstName: "Ann", Email: "ann@x.com"})

	if err := s.RemoveByID(ctx(), ann.ID); err != nil {
		t.Fatalf("first RemoveByID() error = %v", err)
	}

	err := s.RemoveByID(ctx(), ann.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	s := New()
	_, err := s.FindByID(ctx(), "missing")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestAll_ReturnsSnapshotNotLiveSlice(t *testing.T) {
	s := New()
	mustInsert(t, s, model.Employee{FirstName: "Ann", Email: "ann@x.com"})

	snapshot, _ := s.All(ctx())
	snapshot[0].FirstName = "Mutated"

	fresh, _ := s.All(ctx())
	if fresh[0].FirstName != "Ann" {
		t.Error("mutating the snapshot leaked into the store")
	}
}

func TestEmailExists(t *testing.T) {
	s := New()
	ann := mustInsert(t, s, model.Employee{Email: "ann@x.com"})

	tests := []struct {
		name      string
		email     string
		excludeID string
		want      bool
	}{
		{"exact match", "ann@x.com", "", true},
		{"case-insensitive match", "ANN@X.COM", "", true},
		{"trimmed match", "  ann@x.com ", "", true},
		{"excluding the owner", "ann@x.com", ann.ID, false},
		{"unknown email", "other@x.com", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.EmailExists(ctx(), tt.email, tt.excludeID)
			if err != nil {
				t.Fatalf("EmailExists() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EmailExists(%q, %q) = %v, want %v", tt.email, tt.excludeID, got, tt.want)
			}
		})
	}
}

func TestLoad_ReplacesContentsAndBypassesGuard(t *testing.T) {
	s := New()
	mustInsert(t, s, model.Employee{FirstName: "Old", Email: "old@x.com"})

	// Load trusts its source: even a duplicate pair goes in untouched.
	seedRecords := []model.Employee{
		{ID: "s1", FirstName: "A", Email: "same@x.com"},
		{ID: "s2", FirstName: "B", Email: "same@x.com"},
	}
	if err := s.Load(ctx(), seedRecords); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	all, _ := s.All(ctx())
	if len(all) != 2 {
		t.Fatalf("store has %d records after Load, want 2", len(all))
	}
	if all[0].ID != "s1" || all[1].ID != "s2" {
		t.Errorf("Load changed record order: %v", names(all))
	}
}
