package handler

// REQUEST DTOs AND VALIDATION:
// The handler layer owns input validation — shapes, lengths, enums. The
// service layer owns business rules (defaults, uniqueness). Keeping the
// rules here means the query engine and the store can assume well-formed
// input and never have to produce validation errors themselves.
//
// The limits mirror the original directory contract: names and departments
// 2–50 chars, titles and locations 2–100, phone 10–15, salary 0–1,000,000.

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/sakif/employee-directory/internal/apperror"
	"github.com/sakif/employee-directory/internal/model"
	"github.com/sakif/employee-directory/internal/service"
)

// createEmployeeRequest is the JSON body of POST /employees.
// Avatar and status are optional; the service fills their defaults.
type createEmployeeRequest struct {
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Department  string       `json:"department"`
	Title       string       `json:"title"`
	Location    string       `json:"location"`
	Avatar      string       `json:"avatar"`
	DateOfBirth string       `json:"dateOfBirth"`
	HireDate    string       `json:"hireDate"`
	Salary      int          `json:"salary"`
	Status      model.Status `json:"status"`
}

// lengthBetween validates a required string field's length range.
func lengthBetween(field, value string, min, max int) error {
	if len(value) < min || len(value) > max {
		return apperror.ValidationFailed(field,
			fmt.Sprintf("%s must be between %d and %d characters", field, min, max))
	}
	return nil
}

// validEmail checks that the value parses as an RFC 5322 address.
// Uniqueness is NOT checked here — that's the store's job, atomically with
// the mutation.
func validEmail(value string) error {
	if _, err := mail.ParseAddress(value); err != nil {
		return apperror.ValidationFailed("email", "email must be a valid email address")
	}
	return nil
}

// validDate accepts a plain ISO date ("2006-01-02") or a full RFC 3339
// timestamp — the seed source delivers the latter, the edit form the former.
func validDate(field, value string) error {
	if _, err := time.Parse("2006-01-02", value); err == nil {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return nil
	}
	return apperror.ValidationFailed(field,
		fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", field))
}

// validSalary bounds the salary to a sane non-negative range.
func validSalary(value int) error {
	if value < 0 || value > 1000000 {
		return apperror.ValidationFailed("salary", "salary must be between 0 and 1000000")
	}
	return nil
}

// validate checks every create rule and returns the first violation.
func (r *createEmployeeRequest) validate() error {
	if err := lengthBetween("firstName", r.FirstName, 2, 50); err != nil {
		return err
	}
	if err := lengthBetween("lastName", r.LastName, 2, 50); err != nil {
		return err
	}
	if err := validEmail(r.Email); err != nil {
		return err
	}
	if err := lengthBetween("phone", r.Phone, 10, 15); err != nil {
		return err
	}
	if err := lengthBetween("department", r.Department, 2, 50); err != nil {
		return err
	}
	if err := lengthBetween("title", r.Title, 2, 100); err != nil {
		return err
	}
	if err := lengthBetween("location", r.Location, 2, 100); err != nil {
		return err
	}
	if err := validDate("dateOfBirth", r.DateOfBirth); err != nil {
		return err
	}
	if err := validDate("hireDate", r.HireDate); err != nil {
		return err
	}
	if err := validSalary(r.Salary); err != nil {
		return err
	}
	if r.Status != "" && !r.Status.Valid() {
		return apperror.ValidationFailed("status", "status must be active or inactive")
	}
	return nil
}

// toInput converts the validated request into the service's input type.
func (r *createEmployeeRequest) toInput() service.CreateEmployeeInput {
	return service.CreateEmployeeInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		Department:  r.Department,
		Title:       r.Title,
		Location:    r.Location,
		Avatar:      r.Avatar,
		DateOfBirth: r.DateOfBirth,
		HireDate:    r.HireDate,
		Salary:      r.Salary,
		Status:      r.Status,
	}
}

// validatePatch applies the same per-field rules as create, but only to the
// fields the PATCH body actually carried (non-nil pointers).
func validatePatch(p *model.EmployeePatch) error {
	if p.FirstName != nil {
		if err := lengthBetween("firstName", *p.FirstName, 2, 50); err != nil {
			return err
		}
	}
	if p.LastName != nil {
		if err := lengthBetween("lastName", *p.LastName, 2, 50); err != nil {
			return err
		}
	}
	if p.Email != nil {
		if err := validEmail(*p.Email); err != nil {
			return err
		}
	}
	if p.Phone != nil {
		if err := lengthBetween("phone", *p.Phone, 10, 15); err != nil {
			return err
		}
	}
	if p.Department != nil {
		if err := lengthBetween("department", *p.Department, 2, 50); err != nil {
			return err
		}
	}
	if p.Title != nil {
		if err := lengthBetween("title", *p.Title, 2, 100); err != nil {
			return err
		}
	}
	if p.Location != nil {
		if err := lengthBetween("location", *p.Location, 2, 100); err != nil {
			return err
		}
	}
	if p.DateOfBirth != nil {
		if err := validDate("dateOfBirth", *p.DateOfBirth); err != nil {
			return err
		}
	}
	if p.HireDate != nil {
		if err := validDate("hireDate", *p.HireDate); err != nil {
			return err
		}
	}
	if p.Salary != nil {
		if err := validSalary(*p.Salary); err != nil {
			return err
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return apperror.ValidationFailed("status", "status must be active or inactive")
	}
	return nil
}
