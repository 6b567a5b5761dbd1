// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer)  → defaults, uniqueness, composition
//	Repository (Data layer)   → the record store
//
// The service knows nothing about HTTP and the handlers know nothing about
// how records are stored. The query engine (internal/query) is pure — the
// service's job on reads is just to hand it a fresh snapshot of the store.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/sakif/employee-directory/internal/apperror"
	"github.com/sakif/employee-directory/internal/model"
	"github.com/sakif/employee-directory/internal/query"
	"github.com/sakif/employee-directory/internal/repository"
)

// EmployeeService handles business logic for the employee directory.
type EmployeeService struct {
	repo   repository.EmployeeRepository
	logger *slog.Logger
}

// NewEmployeeService creates a new EmployeeService.
// The caller decides which repository implementation to inject — the real
// in-memory store in production, a mock in tests.
func NewEmployeeService(repo repository.EmployeeRepository, logger *slog.Logger) *EmployeeService {
	return &EmployeeService{
		repo:   repo,
		logger: logger,
	}
}

// CreateEmployeeInput carries the fields for a new employee. The handler has
// already validated shapes and lengths; the service applies defaults and
// enforces uniqueness.
type CreateEmployeeInput struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Department  string
	Title       string
	Location    string
	Avatar      string
	DateOfBirth string
	HireDate    string
	Salary      int
	Status      model.Status
}

// defaultAvatar builds the placeholder avatar URL for an employee with no
// uploaded picture, keyed by first name so the generated initials match.
func defaultAvatar(firstName string) string {
	name := firstName
	if name == "" {
		name = "Employee"
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) +
		"&background=6366f1&color=ffffff&size=200"
}

// Create adds a new employee to the front of the directory.
//
// DEFAULTS APPLIED HERE (not in the handler):
// - email is stored trimmed, but with its case preserved as submitted
// - missing avatar → generated placeholder keyed by first name
// - missing status → active
//
// The store enforces email uniqueness atomically with the insert, so a
// duplicate surfaces as apperror.ErrDuplicateEmail and nothing is written.
func (s *EmployeeService) Create(ctx context.Context, in CreateEmployeeInput) (*model.Employee, error) {
	emp := &model.Employee{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       strings.TrimSpace(in.Email),
		Phone:       in.Phone,
		Department:  in.Department,
		Title:       in.Title,
		Location:    in.Location,
		Avatar:      in.Avatar,
		DateOfBirth: in.DateOfBirth,
		HireDate:    in.HireDate,
		Salary:      in.Salary,
		Status:      in.Status,
	}

	if emp.Avatar == "" {
		emp.Avatar = defaultAvatar(emp.FirstName)
	}
	if emp.Status == "" {
		emp.Status = model.StatusActive
	}

	if err := s.repo.InsertFront(ctx, emp); err != nil {
		// Duplicate email is a normal client mistake, not a server fault —
		// let it propagate without the error-level log.
		return nil, err
	}

	s.logger.Info("employee created",
		slog.String("id", emp.ID),
		slog.String("email", emp.Email),
	)

	return emp, nil
}

// Get retrieves one employee by id.
// Returns apperror.ErrNotFound if the id doesn't exist.
func (s *EmployeeService) Get(ctx context.Context, id string) (*model.Employee, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "employee ID is required")
	}
	return s.repo.FindByID(ctx, id)
}

// List runs the query engine over a fresh snapshot of the store.
func (s *EmployeeService) List(ctx context.Context, q query.Descriptor) (*query.Result, error) {
	records, err := s.repo.All(ctx)
	if err != nil {
		s.logger.Error("failed to snapshot store", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing employees: %w", err)
	}

	res := query.Execute(records, q)
	return &res, nil
}

// Filters returns the distinct facet values currently present in the store,
// computed live on every call so dropdowns track creates and deletes.
func (s *EmployeeService) Filters(ctx context.Context) (*query.Options, error) {
	records, err := s.repo.All(ctx)
	if err != nil {
		s.logger.Error("failed to snapshot store", slog.String("error", err.Error()))
		return nil, fmt.Errorf("extracting filter options: %w", err)
	}

	opts := query.FilterOptions(records)
	return &opts, nil
}

// Update applies a partial patch to an existing employee.
//
// STRATEGY: "Fetch then replace"
// 1. Fetch the existing record (NotFound if absent)
// 2. Merge the non-nil patch fields over it (the id can't be patched —
//    EmployeePatch has no ID field)
// 3. Replace the stored record
//
// The uniqueness guard runs twice when the email changes: an early check
// here for a clean error before any merging work, and again inside
// Replace's write lock, which is the one that actually prevents races.
func (s *EmployeeService) Update(ctx context.Context, id string, patch model.EmployeePatch) (*model.Employee, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "employee ID is required")
	}

	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		taken, err := s.repo.EmailExists(ctx, email, id)
		if err != nil {
			return nil, fmt.Errorf("checking email uniqueness: %w", err)
		}
		if taken {
			return nil, apperror.DuplicateEmail(email)
		}
		emp.Email = email
	}

	if patch.FirstName != nil {
		emp.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		emp.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		emp.Phone = *patch.Phone
	}
	if patch.Department != nil {
		emp.Department = *patch.Department
	}
	if patch.Title != nil {
		emp.Title = *patch.Title
	}
	if patch.Location != nil {
		emp.Location = *patch.Location
	}
	if patch.Avatar != nil {
		emp.Avatar = *patch.Avatar
	}
	if patch.DateOfBirth != nil {
		emp.DateOfBirth = *patch.DateOfBirth
	}
	if patch.HireDate != nil {
		emp.HireDate = *patch.HireDate
	}
	if patch.Salary != nil {
		emp.Salary = *patch.Salary
	}
	if patch.Status != nil {
		emp.Status = *patch.Status
	}

	if err := s.repo.Replace(ctx, id, emp); err != nil {
		return nil, err
	}

	s.logger.Info("employee updated", slog.String("id", id))
	return emp, nil
}

// Delete removes an employee by id.
// Returns apperror.ErrNotFound if the id doesn't exist — including on the
// second delete of the same id; ids are never reused.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "employee ID is required")
	}

	if err := s.repo.RemoveByID(ctx, id); err != nil {
		return err
	}

	s.logger.Info("employee deleted", slog.String("id", id))
	return nil
}
