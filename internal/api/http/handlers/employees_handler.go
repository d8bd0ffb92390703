package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/peopleops/hr-console/internal/api/dto"
	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/repository"
	apperrors "github.com/peopleops/hr-console/pkg/util"
)

// EmployeesHandler serves the employee directory.
type EmployeesHandler struct {
	repo  repository.EmployeeRepository
	pages *Pages
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(repo repository.EmployeeRepository, pages *Pages) *EmployeesHandler {
	return &EmployeesHandler{repo: repo, pages: pages}
}

type employeesPage struct {
	Employees []domain.Employee
	Types     []domain.EmployeeType
	Statuses  []domain.EmploymentStatus
}

// List GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.repo.List(c.UserContext())
	if err != nil {
		return err
	}
	return h.pages.Render(c, http.StatusOK, "employees", "Employees", employeesPage{
		Employees: employees,
		Types: []domain.EmployeeType{
			domain.EmployeeTypeEngineer, domain.EmployeeTypeManager,
			domain.EmployeeTypeTeamLeader, domain.EmployeeTypeWorker,
		},
		Statuses: []domain.EmploymentStatus{
			domain.EmploymentActive, domain.EmploymentOnLeave,
			domain.EmploymentInactive, domain.EmploymentTerminated,
		},
	})
}

// Create POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var form dto.EmployeeForm
	if err := c.BodyParser(&form); err != nil {
		return afterMutation(c, domain.RouteEmployees, "", apperrors.NewValidationError("invalid form", nil))
	}
	if errs := dto.Validate(form); errs != nil {
		return redirectWith(c, domain.RouteEmployees, "error", errs.First())
	}
	emp := form.Employee("")
	err := h.repo.Create(c.UserContext(), emp)
	return afterMutation(c, domain.RouteEmployees, "Employee "+emp.Name+" created", err)
}

// Update POST /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var form dto.EmployeeForm
	if err := c.BodyParser(&form); err != nil {
		return afterMutation(c, domain.RouteEmployees, "", apperrors.NewValidationError("invalid form", nil))
	}
	if errs := dto.Validate(form); errs != nil {
		return redirectWith(c, domain.RouteEmployees, "error", errs.First())
	}
	err := h.repo.Update(c.UserContext(), form.Employee(id))
	return afterMutation(c, domain.RouteEmployees, "Employee updated", err)
}

// Delete POST /employees/:id/delete.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	err := h.repo.Delete(c.UserContext(), c.Params("id"))
	return afterMutation(c, domain.RouteEmployees, "Employee deleted", err)
}
