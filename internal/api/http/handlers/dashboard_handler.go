package handlers

import (
	"html/template"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/peopleops/hr-console/internal/chart"
	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/service"
)

// DashboardPeriods are the windows offered by the attendance chart.
var DashboardPeriods = []string{"week", "month", "quarter"}

// DashboardHandler serves the landing screen.
type DashboardHandler struct {
	service *service.DashboardService
	pages   *Pages
	logger  *zap.Logger
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService, pages *Pages, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{service: dashboard, pages: pages, logger: logger}
}

type dashboardPage struct {
	View            *service.DashboardView
	Periods         []string
	AttendanceChart template.HTML
	LeaveChart      template.HTML
}

// Show GET /dashboard?period=.
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	period := c.Query("period")
	if !validPeriod(period) {
		period = service.DefaultAttendancePeriod
	}
	view, err := h.service.Load(c.UserContext(), period)
	if err != nil {
		return err
	}
	return h.pages.Render(c, http.StatusOK, "dashboard", "Dashboard", dashboardPage{
		View:            view,
		Periods:         DashboardPeriods,
		AttendanceChart: h.attendanceChart(view.Attendance),
		LeaveChart:      h.leaveChart(view.LeaveDistribution),
	})
}

func validPeriod(p string) bool {
	for _, known := range DashboardPeriods {
		if p == known {
			return true
		}
	}
	return false
}

func (h *DashboardHandler) attendanceChart(points []domain.AttendanceChartPoint) template.HTML {
	if len(points) == 0 {
		return ""
	}
	labels := make([]string, len(points))
	present := make([]float64, len(points))
	absent := make([]float64, len(points))
	late := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Date
		present[i] = float64(p.Present)
		absent[i] = float64(p.Absent)
		late[i] = float64(p.Late)
	}
	out, err := chart.Bars(chart.DefaultWidth, chart.DefaultHeight, labels, []chart.Series{
		{Label: "Present", Color: "#10b981", Values: present},
		{Label: "Absent", Color: "#ef4444", Values: absent},
		{Label: "Late", Color: "#f59e0b", Values: late},
	}, chart.Opts{Title: "Attendance Overview"})
	if err != nil {
		h.logger.Warn("attendance chart", zap.Error(err))
		return ""
	}
	return out
}

func (h *DashboardHandler) leaveChart(items []domain.LeaveDistributionItem) template.HTML {
	if len(items) == 0 {
		return ""
	}
	slices := make([]chart.Slice, len(items))
	for i, item := range items {
		slices[i] = chart.Slice{Label: item.Name, Color: item.Color, Value: float64(item.Value)}
	}
	out, err := chart.Donut(chart.DefaultHeight, slices, chart.Opts{Title: "Leave Distribution"})
	if err != nil {
		h.logger.Warn("leave chart", zap.Error(err))
		return ""
	}
	return out
}
