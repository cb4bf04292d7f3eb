package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/peopleops/employee-api/internal/core/domain"
	"github.com/peopleops/employee-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// stubEmployeeRepo mirrors the store contract in memory: AND-composed
// filters, case-insensitive skill substring match, seq-ordered results and
// window application after filtering.
type stubEmployeeRepo struct {
	employees map[string]*domain.Employee
	insertErr error
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: make(map[string]*domain.Employee)}
}

func (r *stubEmployeeRepo) Insert(_ context.Context, employee *domain.Employee) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, exists := r.employees[employee.EmployeeID]; exists {
		return domain.ErrEmployeeExists
	}
	clone := *employee
	r.employees[employee.EmployeeID] = &clone
	return nil
}

func (r *stubEmployeeRepo) FindByEmployeeID(_ context.Context, employeeID string) (*domain.Employee, error) {
	e, ok := r.employees[employeeID]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, employeeID string, fields map[string]any) error {
	e, ok := r.employees[employeeID]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	for key, value := range fields {
		switch key {
		case "name":
			e.Name = value.(string)
		case "department":
			e.Department = value.(string)
		case "salary":
			e.Salary = value.(float64)
		case "joining_date":
			e.JoiningDate = value.(string)
		case "skills":
			e.Skills = value.([]string)
		}
	}
	return nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, employeeID string) error {
	if _, ok := r.employees[employeeID]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(r.employees, employeeID)
	return nil
}

func (r *stubEmployeeRepo) List(_ context.Context, q ports.EmployeeQuery) ([]*domain.Employee, int64, error) {
	matched := make([]*domain.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		if q.Department != "" && e.Department != q.Department {
			continue
		}
		if q.Skill != "" && !hasSkillSubstring(e.Skills, q.Skill) {
			continue
		}
		clone := *e
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Seq < matched[j].Seq })

	total := int64(len(matched))
	if q.Windowed() {
		start := (q.Page - 1) * q.PageSize
		if start > len(matched) {
			start = len(matched)
		}
		end := start + q.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (r *stubEmployeeRepo) AverageSalaryByDepartment(_ context.Context) ([]domain.DepartmentSalary, error) {
	sums := map[string]struct {
		total float64
		count int
	}{}
	for _, e := range r.employees {
		agg := sums[e.Department]
		agg.total += e.Salary
		agg.count++
		sums[e.Department] = agg
	}
	out := make([]domain.DepartmentSalary, 0, len(sums))
	for dept, agg := range sums {
		out = append(out, domain.DepartmentSalary{Department: dept, AvgSalary: agg.total / float64(agg.count)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out, nil
}

func hasSkillSubstring(skills []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, s := range skills {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

func newEmployeeService(repo *stubEmployeeRepo) *EmployeeService {
	alloc := NewIDAllocator(&stubSequenceRepo{}, discardLogger)
	return NewEmployeeService(repo, alloc, 100, discardLogger)
}

func createEmployee(t *testing.T, svc *EmployeeService, name, department string, skills []string) *domain.Employee {
	t.Helper()
	e, err := svc.Create(context.Background(), ports.CreateEmployeeInput{
		Name:        name,
		Department:  department,
		Salary:      75000,
		JoiningDate: "2023-01-15",
		Skills:      skills,
	})
	if err != nil {
		t.Fatalf("create %s failed: %v", name, err)
	}
	return e
}

func TestEmployeeService_Create_AssignsSequentialIDs(t *testing.T) {
	svc := newEmployeeService(newStubEmployeeRepo())

	first := createEmployee(t, svc, "Alice", "Engineering", []string{"Go", "SQL"})
	second := createEmployee(t, svc, "Bob", "Marketing", []string{"SEO", "MySQL"})

	if first.EmployeeID != "E001" {
		t.Fatalf("first id = %s, want E001", first.EmployeeID)
	}
	if second.EmployeeID != "E002" {
		t.Fatalf("second id = %s, want E002", second.EmployeeID)
	}
}

func TestEmployeeService_Create_Validation(t *testing.T) {
	svc := newEmployeeService(newStubEmployeeRepo())

	cases := []struct {
		name  string
		input ports.CreateEmployeeInput
	}{
		{"empty name", ports.CreateEmployeeInput{Department: "Eng", Salary: 1, JoiningDate: "2023-01-15", Skills: []string{"Go"}}},
		{"empty department", ports.CreateEmployeeInput{Name: "A", Salary: 1, JoiningDate: "2023-01-15", Skills: []string{"Go"}}},
		{"zero salary", ports.CreateEmployeeInput{Name: "A", Department: "Eng", JoiningDate: "2023-01-15", Skills: []string{"Go"}}},
		{"bad date", ports.CreateEmployeeInput{Name: "A", Department: "Eng", Salary: 1, JoiningDate: "15/01/2023", Skills: []string{"Go"}}},
		{"no skills", ports.CreateEmployeeInput{Name: "A", Department: "Eng", Salary: 1, JoiningDate: "2023-01-15"}},
		{"blank skills", ports.CreateEmployeeInput{Name: "A", Department: "Eng", Salary: 1, JoiningDate: "2023-01-15", Skills: []string{"  ", ""}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tc.input); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestEmployeeService_Create_BurnedIDAfterInsertFailure(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := newEmployeeService(repo)

	createEmployee(t, svc, "Alice", "Engineering", []string{"Go"})

	repo.insertErr = errors.New("write failed")
	if _, err := svc.Create(context.Background(), ports.CreateEmployeeInput{
		Name: "Bob", Department: "Eng", Salary: 1, JoiningDate: "2023-01-15", Skills: []string{"Go"},
	}); err == nil {
		t.Fatalf("expected insert failure")
	}
	repo.insertErr = nil

	// E002 was consumed by the failed attempt and is never reissued.
	next := createEmployee(t, svc, "Carol", "Engineering", []string{"Go"})
	if next.EmployeeID != "E003" {
		t.Fatalf("id after burned allocation = %s, want E003", next.EmployeeID)
	}
}

func TestEmployeeService_DeletedIDNeverReused(t *testing.T) {
	svc := newEmployeeService(newStubEmployeeRepo())

	createEmployee(t, svc, "Alice", "Engineering", []string{"Go"})
	createEmployee(t, svc, "Bob", "Marketing", []string{"SEO"})

	if err := svc.Delete(context.Background(), "E001"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	next := createEmployee(t, svc, "Carol", "Engineering", []string{"Go"})
	if next.EmployeeID != "E003" {
		t.Fatalf("id after delete = %s, want E003", next.EmployeeID)
	}
	if _, err := svc.Get(context.Background(), "E001"); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected E001 gone, got %v", err)
	}
}

func TestEmployeeService_List_Filters(t *testing.T) {
	svc := newEmployeeService(newStubEmployeeRepo())

	createEmployee(t, svc, "Alice", "Engineering", []string{"Python", "MySQL"})
	createEmployee(t, svc, "Bob", "Engineering", []string{"Go", "PostgreSQL"})
	createEmployee(t, svc, "Carol", "Marketing", []string{"SEO"})

	tests := []struct {
		name    string
		query   ports.EmployeeQuery
		wantIDs []string
	}{
		{"no filters", ports.EmployeeQuery{}, []string{"E001", "E002", "E003"}},
		{"department", ports.EmployeeQuery{Department: "Engineering"}, []string{"E001", "E002"}},
		{"department case sensitive", ports.EmployeeQuery{Department: "engineering"}, nil},
		{"skill substring both engineers", ports.EmployeeQuery{Skill: "sql"}, []string{"E001", "E002"}},
		{"skill case insensitive", ports.EmployeeQuery{Skill: "PYTHON"}, []string{"E001"}},
		{"skill no match", ports.EmployeeQuery{Skill: "Rust"}, nil},
		{"combined AND", ports.EmployeeQuery{Department: "Engineering", Skill: "Postgre"}, []string{"E002"}},
		{"filters do not OR", ports.EmployeeQuery{Department: "Marketing", Skill: "Go"}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page, err := svc.List(context.Background(), tc.query)
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			gotIDs := make([]string, 0, len(page.Items))
			for _, e := range page.Items {
				gotIDs = append(gotIDs, e.EmployeeID)
			}
			if len(gotIDs) != len(tc.wantIDs) {
				t.Fatalf("ids = %v, want %v", gotIDs, tc.wantIDs)
			}
			for i := range gotIDs {
				if gotIDs[i] != tc.wantIDs[i] {
					t.Fatalf("ids = %v, want %v", gotIDs, tc.wantIDs)
				}
			}
			if page.Meta.TotalItems != int64(len(tc.wantIDs)) {
				t.Fatalf("total_items = %d, want %d", page.Meta.TotalItems, len(tc.wantIDs))
			}
		})
	}
}

func TestEmployeeService_List_PaginationWindows(t *testing.T) {
	svc := newEmployeeService(newStubEmployeeRepo())
	for i := 0; i < 5; i++ {
		createEmployee(t, svc, "Emp", "Engineering", []string{"Go"})
	}

	page1, err := svc.List(context.Background(), ports.EmployeeQuery{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("page 1 failed: %v", err)
	}
	page2, err := svc.List(context.Background(), ports.EmployeeQuery{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("page 2 failed: %v", err)
	}
	page3, err := svc.List(context.Background(), ports.EmployeeQuery{Page: 3, PageSize: 2})
	if err != nil {
		t.Fatalf("page 3 failed: %v", err)
	}

	// The union of the windows covers every record exactly once, in order.
	var union []string
	for _, p := range []*ports.EmployeePage{page1, page2, page3} {
		for _, e := range p.Items {
			union = append(union, e.EmployeeID)
		}
	}
	want := []string{"E001", "E002", "E003", "E004", "E005"}
	if len(union) != len(want) {
		t.Fatalf("union = %v, want %v", union, want)
	}
	for i := range union {
		if union[i] != want[i] {
			t.Fatalf("union = %v, want %v", union, want)
		}
	}

	if page1.Meta.TotalItems != 5 || page1.Meta.TotalPages != 3 {
		t.Fatalf("meta = %+v", page1.Meta)
	}
	if !page1.Meta.HasNext || page1.Meta.HasPrevious {
		t.Fatalf("page 1 meta = %+v", page1.Meta)
	}
	if !page2.Meta.HasNext || !page2.Meta.HasPrevious {
		t.Fatalf("page 2 meta = %+v", page2.Meta)
	}
	if page3.Meta.HasNext || !page3.Meta.HasPrevious {
		t.Fatalf("page 3 meta = %+v", page3.Meta)
	}
}

func TestEmployeeService_List_OutOfRangePageIsEmpty(t *testing.T) {
	svc := newEmployeeService(newStubEmployeeRepo())
	createEmployee(t, svc, "Alice", "Engineering", []string{"Go"})

	page, err := svc.List(context.Background(), ports.EmployeeQuery{Page: 9, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(page.Items))
	}
	if page.Meta.TotalItems != 1 {
		t.Fatalf("total_items = %d, want 1", page.Meta.TotalItems)
	}
}

func TestEmployeeService_List_InvalidWindow(t *testing.T) {
	svc := newEmployeeService(newStubEmployeeRepo())

	for _, q := range []ports.EmployeeQuery{
		{Page: 0, PageSize: 10},
		{Page: -1, PageSize: 10},
		{Page: 1, PageSize: 0},
		{Page: 1, PageSize: 101},
	} {
		if _, err := svc.List(context.Background(), q); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("query %+v: expected ErrValidation, got %v", q, err)
		}
	}
}

func TestEmployeeService_Update_PartialMerge(t *testing.T) {
	svc := newEmployeeService(newStubEmployeeRepo())
	createEmployee(t, svc, "Alice", "Engineering", []string{"Go"})

	salary := 90000.0
	updated, err := svc.Update(context.Background(), "E001", ports.UpdateEmployeeInput{Salary: &salary})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Salary != 90000 {
		t.Fatalf("salary = %v, want 90000", updated.Salary)
	}
	if updated.Name != "Alice" || updated.Department != "Engineering" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.EmployeeID != "E001" {
		t.Fatalf("identifier changed: %s", updated.EmployeeID)
	}
}

func TestEmployeeService_Update_Errors(t *testing.T) {
	svc := newEmployeeService(newStubEmployeeRepo())
	createEmployee(t, svc, "Alice", "Engineering", []string{"Go"})

	if _, err := svc.Update(context.Background(), "E001", ports.UpdateEmployeeInput{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("empty patch: expected ErrValidation, got %v", err)
	}

	bad := ""
	if _, err := svc.Update(context.Background(), "E001", ports.UpdateEmployeeInput{Name: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("blank name: expected ErrValidation, got %v", err)
	}

	salary := 1.0
	if _, err := svc.Update(context.Background(), "E999", ports.UpdateEmployeeInput{Salary: &salary}); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("missing record: expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeService_Get_MalformedID(t *testing.T) {
	svc := newEmployeeService(newStubEmployeeRepo())

	for _, id := range []string{"", "001", "Exyz", "E1"} {
		if _, err := svc.Get(context.Background(), id); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("id %q: expected ErrValidation, got %v", id, err)
		}
	}
}

func TestEmployeeService_SalaryByDepartment(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := newEmployeeService(repo)

	createEmployee(t, svc, "Alice", "Engineering", []string{"Go"})
	createEmployee(t, svc, "Bob", "Marketing", []string{"SEO"})

	stats, err := svc.SalaryByDepartment(context.Background())
	if err != nil {
		t.Fatalf("salary stats failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 departments, got %d", len(stats))
	}
	if stats[0].Department != "Engineering" || stats[0].AvgSalary != 75000 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
