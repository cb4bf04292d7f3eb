package ports

import (
	"context"

	"github.com/peopleops/employee-api/internal/core/domain"
)

// EmployeeQuery carries all filter and pagination parameters for listing
// employees. It is a plain value translated into the store's filter syntax
// at the repository boundary, so the service layer stays store-agnostic.
//
// Department is an exact, case-sensitive match backed by an index. Skill
// matches when the term appears as a case-insensitive substring of any
// element of the skills array. Both filters compose with AND; an empty
// filter matches everything.
//
// Page and PageSize describe the optional pagination window. Both zero
// means no window: the full matching set is returned. Validation of the
// window (page >= 1, bounded size) is the service's job, not the repository's.
type EmployeeQuery struct {
	Department string
	Skill      string
	Page       int // 1-based; 0 = no pagination window
	PageSize   int // 0 = no pagination window
}

// Windowed reports whether the query carries a pagination window.
func (q EmployeeQuery) Windowed() bool {
	return q.Page != 0 || q.PageSize != 0
}

// EmployeeRepository defines persistence operations for employees.
// All results are sorted by allocation sequence ascending, which keeps
// pagination reproducible across page fetches. Consistency between page
// fetches is best-effort: a record inserted or deleted in between may
// shift page boundaries (no snapshot isolation).
type EmployeeRepository interface {
	Insert(ctx context.Context, e *domain.Employee) error
	FindByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error)
	// Update applies a partial merge of fields onto the document.
	// The employee identifier is never part of fields.
	Update(ctx context.Context, employeeID string, fields map[string]any) error
	Delete(ctx context.Context, employeeID string) error
	// List returns the matching page plus the total match count independent
	// of the pagination window. Filtering, sorting and the skip/limit window
	// are pushed down to the store; results are never materialized in full
	// and sliced in memory.
	List(ctx context.Context, q EmployeeQuery) ([]*domain.Employee, int64, error)
	AverageSalaryByDepartment(ctx context.Context) ([]domain.DepartmentSalary, error)
}

// SequenceRepository hands out monotonically increasing values from a named
// counter via an atomic increment-and-return primitive. Two concurrent Next
// calls never observe the same value.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
