package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/peopleops/hr-console/internal/api/dto"
	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/repository"
	apperrors "github.com/peopleops/hr-console/pkg/util"
)

// LeaveHandler serves leave management.
type LeaveHandler struct {
	repo  repository.LeaveRepository
	pages *Pages
}

// NewLeaveHandler constructs handler.
func NewLeaveHandler(repo repository.LeaveRepository, pages *Pages) *LeaveHandler {
	return &LeaveHandler{repo: repo, pages: pages}
}

type leavePage struct {
	Requests []domain.LeaveRequest
	Types    []domain.LeaveType
}

// List GET /leave-management.
func (h *LeaveHandler) List(c *fiber.Ctx) error {
	requests, err := h.repo.List(c.UserContext())
	if err != nil {
		return err
	}
	return h.pages.Render(c, http.StatusOK, "leave-management", "Leave Management", leavePage{
		Requests: requests,
		Types:    []domain.LeaveType{domain.LeaveAnnual, domain.LeaveSick, domain.LeavePersonal, domain.LeaveOther},
	})
}

// Create POST /leave-management files a request for the signed-in user.
func (h *LeaveHandler) Create(c *fiber.Ctx) error {
	var form dto.LeaveForm
	if err := c.BodyParser(&form); err != nil {
		return afterMutation(c, domain.RouteLeaveManagement, "", apperrors.NewValidationError("invalid form", nil))
	}
	if errs := form.Check(); errs != nil {
		return redirectWith(c, domain.RouteLeaveManagement, "error", errs.First())
	}
	err := h.repo.Create(c.UserContext(), form.LeaveRequest(actor(c)))
	return afterMutation(c, domain.RouteLeaveManagement, "Leave request submitted", err)
}
