package ports

import (
	"context"

	"github.com/peopleops/employee-api/internal/core/domain"
)

// CreateEmployeeInput carries all data needed to create a new employee.
// The identifier is allocated by the service, never supplied by the caller.
type CreateEmployeeInput struct {
	Name        string
	Department  string
	Salary      float64
	JoiningDate string // YYYY-MM-DD
	Skills      []string
	Extra       map[string]any
}

// UpdateEmployeeInput is a partial patch: nil fields are left unchanged.
type UpdateEmployeeInput struct {
	Name        *string
	Department  *string
	Salary      *float64
	JoiningDate *string
	Skills      []string // nil = unchanged; empty slice is a validation error
}

// PageMeta describes the position of a page within the full result set.
type PageMeta struct {
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// EmployeePage is one page of matching employees plus pagination metadata.
// TotalItems always reflects the full match count, windowed or not.
type EmployeePage struct {
	Items []*domain.Employee
	Meta  PageMeta
}

// EmployeeService defines the use-case operations for employee records.
type EmployeeService interface {
	Create(ctx context.Context, input CreateEmployeeInput) (*domain.Employee, error)
	Get(ctx context.Context, employeeID string) (*domain.Employee, error)
	Update(ctx context.Context, employeeID string, input UpdateEmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, employeeID string) error
	List(ctx context.Context, q EmployeeQuery) (*EmployeePage, error)
	SalaryByDepartment(ctx context.Context) ([]domain.DepartmentSalary, error)
}
