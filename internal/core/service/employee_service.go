package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/peopleops/employee-api/internal/core/domain"
	"github.com/peopleops/employee-api/internal/core/ports"
)

const defaultMaxPageSize = 100

// EmployeeService orchestrates identifier allocation, the query engine and
// store operations for the employee CRUD/search use cases.
type EmployeeService struct {
	repo        ports.EmployeeRepository
	alloc       *IDAllocator
	maxPageSize int
	log         zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, alloc *IDAllocator, maxPageSize int, log zerolog.Logger) *EmployeeService {
	if maxPageSize <= 0 {
		maxPageSize = defaultMaxPageSize
	}
	return &EmployeeService{repo: repo, alloc: alloc, maxPageSize: maxPageSize, log: log}
}

// Create validates the input, allocates the next identifier and inserts the
// record. If the insert fails the allocated identifier stays burned; the
// sequence is never rewound, so a later create simply gets the next value.
func (s *EmployeeService) Create(ctx context.Context, input ports.CreateEmployeeInput) (*domain.Employee, error) {
	skills, err := validateEmployeeFields(input.Name, input.Department, input.Salary, input.JoiningDate, input.Skills)
	if err != nil {
		return nil, err
	}

	employeeID, seq, err := s.alloc.Next(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	employee := &domain.Employee{
		EmployeeID:  employeeID,
		Seq:         seq,
		Name:        input.Name,
		Department:  input.Department,
		Salary:      input.Salary,
		JoiningDate: input.JoiningDate,
		Skills:      skills,
		Extra:       input.Extra,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, employee); err != nil {
		s.log.Error().Err(err).Str("employee_id", employeeID).Msg("failed to insert employee")
		return nil, err
	}

	s.log.Info().Str("employee_id", employeeID).Str("department", employee.Department).Msg("employee created")
	return employee, nil
}

func (s *EmployeeService) Get(ctx context.Context, employeeID string) (*domain.Employee, error) {
	if err := validateEmployeeID(employeeID); err != nil {
		return nil, err
	}
	return s.repo.FindByEmployeeID(ctx, employeeID)
}

// Update applies a partial merge: only non-nil fields of the patch are
// written. The identifier is immutable and never part of the merge.
func (s *EmployeeService) Update(ctx context.Context, employeeID string, input ports.UpdateEmployeeInput) (*domain.Employee, error) {
	if err := validateEmployeeID(employeeID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
		}
		fields["name"] = *input.Name
	}
	if input.Department != nil {
		if strings.TrimSpace(*input.Department) == "" {
			return nil, fmt.Errorf("%w: department must not be empty", domain.ErrValidation)
		}
		fields["department"] = *input.Department
	}
	if input.Salary != nil {
		if *input.Salary <= 0 {
			return nil, fmt.Errorf("%w: salary must be positive", domain.ErrValidation)
		}
		fields["salary"] = *input.Salary
	}
	if input.JoiningDate != nil {
		if _, err := time.Parse(domain.JoiningDateLayout, *input.JoiningDate); err != nil {
			return nil, fmt.Errorf("%w: joining_date must be in YYYY-MM-DD format", domain.ErrValidation)
		}
		fields["joining_date"] = *input.JoiningDate
	}
	if input.Skills != nil {
		skills := trimSkills(input.Skills)
		if len(skills) == 0 {
			return nil, fmt.Errorf("%w: at least one skill is required", domain.ErrValidation)
		}
		fields["skills"] = skills
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields provided for update", domain.ErrValidation)
	}
	fields["updated_at"] = time.Now().UTC()

	if err := s.repo.Update(ctx, employeeID, fields); err != nil {
		return nil, err
	}

	s.log.Info().Str("employee_id", employeeID).Msg("employee updated")
	return s.repo.FindByEmployeeID(ctx, employeeID)
}

// Delete removes the record. The identifier is permanently retired; the
// allocation sequence is untouched so it can never be reassigned.
func (s *EmployeeService) Delete(ctx context.Context, employeeID string) error {
	if err := validateEmployeeID(employeeID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, employeeID); err != nil {
		return err
	}
	s.log.Info().Str("employee_id", employeeID).Msg("employee deleted")
	return nil
}

// List runs the query engine: validates the pagination window, pushes the
// filters down to the store and shapes the result with pagination metadata.
// An absent window returns the entire matching set; total_items reports the
// full match count either way.
func (s *EmployeeService) List(ctx context.Context, q ports.EmployeeQuery) (*ports.EmployeePage, error) {
	if q.Windowed() {
		if q.Page < 1 {
			return nil, fmt.Errorf("%w: page must be >= 1", domain.ErrValidation)
		}
		if q.PageSize < 1 || q.PageSize > s.maxPageSize {
			return nil, fmt.Errorf("%w: page_size must be between 1 and %d", domain.ErrValidation, s.maxPageSize)
		}
	}

	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return &ports.EmployeePage{Items: items, Meta: pageMeta(q, len(items), total)}, nil
}

func (s *EmployeeService) SalaryByDepartment(ctx context.Context) ([]domain.DepartmentSalary, error) {
	return s.repo.AverageSalaryByDepartment(ctx)
}

func pageMeta(q ports.EmployeeQuery, returned int, total int64) ports.PageMeta {
	if !q.Windowed() {
		return ports.PageMeta{
			Page:       1,
			PageSize:   returned,
			TotalItems: total,
			TotalPages: 1,
		}
	}

	totalPages := int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	if totalPages == 0 {
		totalPages = 1
	}
	return ports.PageMeta{
		Page:        q.Page,
		PageSize:    q.PageSize,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNext:     q.Page < totalPages,
		HasPrevious: q.Page > 1,
	}
}

func validateEmployeeID(employeeID string) error {
	if len(employeeID) < 4 || employeeID[0] != 'E' {
		return fmt.Errorf("%w: malformed employee id %q", domain.ErrValidation, employeeID)
	}
	for _, r := range employeeID[1:] {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: malformed employee id %q", domain.ErrValidation, employeeID)
		}
	}
	return nil
}

func validateEmployeeFields(name, department string, salary float64, joiningDate string, skills []string) ([]string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(department) == "" {
		return nil, fmt.Errorf("%w: department is required", domain.ErrValidation)
	}
	if salary <= 0 {
		return nil, fmt.Errorf("%w: salary must be positive", domain.ErrValidation)
	}
	if _, err := time.Parse(domain.JoiningDateLayout, joiningDate); err != nil {
		return nil, fmt.Errorf("%w: joining_date must be in YYYY-MM-DD format", domain.ErrValidation)
	}
	trimmed := trimSkills(skills)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: at least one skill is required", domain.ErrValidation)
	}
	return trimmed, nil
}

// trimSkills strips whitespace and drops empty entries. Duplicates are
// permitted and order is preserved.
func trimSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if s := strings.TrimSpace(skill); s != "" {
			out = append(out, s)
		}
	}
	return out
}
