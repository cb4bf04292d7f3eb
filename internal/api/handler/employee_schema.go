package handler

import (
	"github.com/peopleops/employee-api/internal/core/domain"
	"github.com/peopleops/employee-api/internal/core/ports"
)

type createEmployeeRequest struct {
	Name        string         `json:"name" validate:"required,max=100"`
	Department  string         `json:"department" validate:"required,max=50"`
	Salary      float64        `json:"salary" validate:"required,gt=0"`
	JoiningDate string         `json:"joining_date" validate:"required"`
	Skills      []string       `json:"skills" validate:"required,min=1"`
	Extra       map[string]any `json:"extra,omitempty"`
}

type updateEmployeeRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=100"`
	Department  *string  `json:"department" validate:"omitempty,max=50"`
	Salary      *float64 `json:"salary" validate:"omitempty,gt=0"`
	JoiningDate *string  `json:"joining_date"`
	Skills      []string `json:"skills" validate:"omitempty,min=1"`
}

type employeeResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Department  string         `json:"department"`
	Salary      float64        `json:"salary"`
	JoiningDate string         `json:"joining_date"`
	Skills      []string       `json:"skills"`
	Extra       map[string]any `json:"extra,omitempty"`
}

type employeeListResponse struct {
	Items []employeeResponse `json:"items"`
	Meta  ports.PageMeta     `json:"meta"`
}

type salaryStatsResponse struct {
	Departments []domain.DepartmentSalary `json:"departments"`
}

func toEmployeeResponse(e *domain.Employee) employeeResponse {
	return employeeResponse{
		ID:          e.EmployeeID,
		Name:        e.Name,
		Department:  e.Department,
		Salary:      e.Salary,
		JoiningDate: e.JoiningDate,
		Skills:      e.Skills,
		Extra:       e.Extra,
	}
}

func toEmployeeListResponse(page *ports.EmployeePage) employeeListResponse {
	items := make([]employeeResponse, 0, len(page.Items))
	for _, e := range page.Items {
		items = append(items, toEmployeeResponse(e))
	}
	return employeeListResponse{Items: items, Meta: page.Meta}
}
