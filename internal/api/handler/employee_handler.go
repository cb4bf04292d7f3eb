package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/peopleops/employee-api/internal/api/metrics"
	"github.com/peopleops/employee-api/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for employee record operations.
type EmployeeHandler struct {
	service         ports.EmployeeService
	defaultPageSize int
}

func NewEmployeeHandler(service ports.EmployeeService, defaultPageSize int) *EmployeeHandler {
	if defaultPageSize <= 0 {
		defaultPageSize = 10
	}
	return &EmployeeHandler{service: service, defaultPageSize: defaultPageSize}
}

// Create handles POST /employees.
//
// @Summary      Create a new employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEmployeeRequest  true  "Employee details"
// @Success      201   {object}  employeeResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.service.Create(c.Request().Context(), ports.CreateEmployeeInput{
		Name:        req.Name,
		Department:  req.Department,
		Salary:      req.Salary,
		JoiningDate: req.JoiningDate,
		Skills:      req.Skills,
		Extra:       req.Extra,
	})
	if err != nil {
		return err
	}

	metrics.EmployeesCreatedTotal.WithLabelValues(employee.Department).Inc()
	return c.JSON(http.StatusCreated, toEmployeeResponse(employee))
}

// Get handles GET /employees/:id.
//
// @Summary      Get an employee by identifier
// @Tags         employees
// @Produce      json
// @Param        id  path      string  true  "Employee identifier (e.g. E001)"
// @Success      200 {object}  employeeResponse
// @Failure      404 {object}  map[string]string
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	employee, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// Update handles PUT /employees/:id with a partial-field merge.
//
// @Summary      Update an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Employee identifier"
// @Param        body  body      updateEmployeeRequest  true  "Fields to update"
// @Success      200   {object}  employeeResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	var req updateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	employee, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateEmployeeInput{
		Name:        req.Name,
		Department:  req.Department,
		Salary:      req.Salary,
		JoiningDate: req.JoiningDate,
		Skills:      req.Skills,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// Delete handles DELETE /employees/:id. Admin only; the identifier is
// permanently retired.
//
// @Summary      Delete an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Employee identifier"
// @Success      200 {object}  map[string]string
// @Failure      401 {object}  map[string]string
// @Failure      403 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	employeeID := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), employeeID); err != nil {
		return err
	}

	metrics.EmployeesDeletedTotal.Inc()
	return c.JSON(http.StatusOK, map[string]string{
		"message": "employee " + employeeID + " deleted",
	})
}

// List handles GET /employees with optional department filter and
// pagination window.
//
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Param        department  query     string  false  "Filter by department (exact match)"
// @Param        skill       query     string  false  "Filter by skill (case-insensitive substring)"
// @Param        page        query     int     false  "Page number (1-based)"
// @Param        page_size   query     int     false  "Page size"
// @Success      200         {object}  employeeListResponse
// @Failure      400         {object}  map[string]string
// @Router       /employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	q, err := h.parseEmployeeQuery(c)
	if err != nil {
		return err
	}
	return h.runQuery(c, q)
}

// Search handles GET /employees/search; skill is mandatory here and may be
// combined with a department filter (AND).
//
// @Summary      Search employees by skill
// @Tags         employees
// @Produce      json
// @Param        skill       query     string  true   "Skill to search for (case-insensitive substring)"
// @Param        department  query     string  false  "Additional department filter"
// @Param        page        query     int     false  "Page number (1-based)"
// @Param        page_size   query     int     false  "Page size"
// @Success      200         {object}  employeeListResponse
// @Failure      400         {object}  map[string]string
// @Router       /employees/search [get]
func (h *EmployeeHandler) Search(c echo.Context) error {
	q, err := h.parseEmployeeQuery(c)
	if err != nil {
		return err
	}
	if q.Skill == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "skill query parameter is required")
	}
	return h.runQuery(c, q)
}

// SalaryStats handles GET /employees/stats/salary.
//
// @Summary      Average salary by department
// @Tags         employees
// @Produce      json
// @Success      200  {object}  salaryStatsResponse
// @Router       /employees/stats/salary [get]
func (h *EmployeeHandler) SalaryStats(c echo.Context) error {
	rows, err := h.service.SalaryByDepartment(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, salaryStatsResponse{Departments: rows})
}

func (h *EmployeeHandler) runQuery(c echo.Context, q ports.EmployeeQuery) error {
	start := time.Now()
	page, err := h.service.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	metrics.QueryDuration.WithLabelValues(strconv.FormatBool(q.Windowed())).Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, toEmployeeListResponse(page))
}

// parseEmployeeQuery reads the filter and pagination parameters. When
// neither page nor page_size is present the window is absent and the full
// matching set is returned; when only one is present the other gets a
// sensible default and the service validates the bounds.
func (h *EmployeeHandler) parseEmployeeQuery(c echo.Context) (ports.EmployeeQuery, error) {
	q := ports.EmployeeQuery{
		Department: c.QueryParam("department"),
		Skill:      c.QueryParam("skill"),
	}

	pageRaw := c.QueryParam("page")
	sizeRaw := c.QueryParam("page_size")
	if pageRaw == "" && sizeRaw == "" {
		return q, nil
	}

	q.Page = 1
	q.PageSize = h.defaultPageSize
	if pageRaw != "" {
		page, err := strconv.Atoi(pageRaw)
		if err != nil {
			return q, echo.NewHTTPError(http.StatusBadRequest, "page must be an integer")
		}
		q.Page = page
	}
	if sizeRaw != "" {
		size, err := strconv.Atoi(sizeRaw)
		if err != nil {
			return q, echo.NewHTTPError(http.StatusBadRequest, "page_size must be an integer")
		}
		q.PageSize = size
	}
	return q, nil
}
