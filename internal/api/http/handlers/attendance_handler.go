package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/repository"
)

// AttendanceHandler serves attendance records.
type AttendanceHandler struct {
	repo  repository.AttendanceRepository
	pages *Pages
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(repo repository.AttendanceRepository, pages *Pages) *AttendanceHandler {
	return &AttendanceHandler{repo: repo, pages: pages}
}

type attendancePage struct {
	Records    []domain.AttendanceRecord
	Date       string
	EmployeeID string
}

// List GET /attendance?date=&employeeId=.
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	filter := repository.AttendanceFilter{
		Date:       strings.TrimSpace(c.Query("date")),
		EmployeeID: strings.TrimSpace(c.Query("employeeId")),
	}
	records, err := h.repo.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return h.pages.Render(c, http.StatusOK, "attendance", "Attendance", attendancePage{
		Records:    records,
		Date:       filter.Date,
		EmployeeID: filter.EmployeeID,
	})
}
