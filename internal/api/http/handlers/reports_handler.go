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

// ReportsHandler serves the reports screen.
type ReportsHandler struct {
	service *service.ReportService
	pages   *Pages
	logger  *zap.Logger
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService, pages *Pages, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsHandler{service: reports, pages: pages, logger: logger}
}

type reportsPage struct {
	View            *service.ReportView
	Periods         []domain.ReportPeriod
	HeadcountChart  template.HTML
	SalaryChart     template.HTML
	AttendanceChart template.HTML
	LeaveChart      template.HTML
	OvertimeChart   template.HTML
}

// Show GET /reports?period=.
func (h *ReportsHandler) Show(c *fiber.Ctx) error {
	period := domain.ParseReportPeriod(c.Query("period"))
	view, err := h.service.Load(c.UserContext(), period)
	if err != nil {
		return err
	}
	page := reportsPage{
		View:    view,
		Periods: []domain.ReportPeriod{domain.ReportMonth, domain.ReportQuarter, domain.ReportYear},
	}
	data := view.Data
	page.HeadcountChart = h.headcount(data.DepartmentData)
	page.SalaryChart = h.salary(data.SalaryData)
	page.AttendanceChart = h.attendance(data.AttendanceData)
	page.LeaveChart = h.leave(data.LeaveData)
	page.OvertimeChart = h.overtime(data.OvertimeData)
	return h.pages.Render(c, http.StatusOK, "reports", "Reports", page)
}

func (h *ReportsHandler) headcount(rows []domain.DepartmentHeadcount) template.HTML {
	if len(rows) == 0 {
		return ""
	}
	slices := make([]chart.Slice, len(rows))
	for i, r := range rows {
		slices[i] = chart.Slice{Label: r.Name, Color: r.Color, Value: float64(r.Employees)}
	}
	return h.keep("headcount", func() (template.HTML, error) {
		return chart.Donut(chart.DefaultHeight, slices, chart.Opts{Title: "Headcount by department"})
	})
}

func (h *ReportsHandler) salary(rows []domain.SalaryBand) template.HTML {
	if len(rows) == 0 {
		return ""
	}
	labels := make([]string, len(rows))
	lo, avg, hi := make([]float64, len(rows)), make([]float64, len(rows)), make([]float64, len(rows))
	for i, r := range rows {
		labels[i] = r.Department
		lo[i], avg[i], hi[i] = r.Min, r.Average, r.Max
	}
	return h.keep("salary", func() (template.HTML, error) {
		return chart.Bars(chart.DefaultWidth, chart.DefaultHeight, labels, []chart.Series{
			{Label: "Min", Values: lo},
			{Label: "Average", Values: avg},
			{Label: "Max", Values: hi},
		}, chart.Opts{Title: "Salary by department"})
	})
}

func (h *ReportsHandler) attendance(rows []domain.MonthlyAttendance) template.HTML {
	if len(rows) == 0 {
		return ""
	}
	labels := make([]string, len(rows))
	onTime, late, absent := make([]float64, len(rows)), make([]float64, len(rows)), make([]float64, len(rows))
	for i, r := range rows {
		labels[i] = r.Month
		onTime[i], late[i], absent[i] = float64(r.OnTime), float64(r.Late), float64(r.Absent)
	}
	return h.keep("attendance", func() (template.HTML, error) {
		return chart.Bars(chart.DefaultWidth, chart.DefaultHeight, labels, []chart.Series{
			{Label: "On time", Color: "#10b981", Values: onTime},
			{Label: "Late", Color: "#f59e0b", Values: late},
			{Label: "Absent", Color: "#ef4444", Values: absent},
		}, chart.Opts{Title: "Monthly attendance", Stacked: true})
	})
}

func (h *ReportsHandler) leave(rows []domain.MonthlyLeave) template.HTML {
	if len(rows) == 0 {
		return ""
	}
	labels := make([]string, len(rows))
	series := []chart.Series{
		{Label: "Annual", Values: make([]float64, len(rows))},
		{Label: "Sick", Values: make([]float64, len(rows))},
		{Label: "Personal", Values: make([]float64, len(rows))},
		{Label: "Other", Values: make([]float64, len(rows))},
	}
	for i, r := range rows {
		labels[i] = r.Month
		series[0].Values[i] = float64(r.Annual)
		series[1].Values[i] = float64(r.Sick)
		series[2].Values[i] = float64(r.Personal)
		series[3].Values[i] = float64(r.Other)
	}
	return h.keep("leave", func() (template.HTML, error) {
		return chart.Bars(chart.DefaultWidth, chart.DefaultHeight, labels, series, chart.Opts{Title: "Monthly leave", Stacked: true})
	})
}

func (h *ReportsHandler) overtime(rows []domain.MonthlyOvertime) template.HTML {
	if len(rows) == 0 {
		return ""
	}
	labels := make([]string, len(rows))
	series := []chart.Series{
		{Label: "Engineering", Values: make([]float64, len(rows))},
		{Label: "Production", Values: make([]float64, len(rows))},
		{Label: "HR", Values: make([]float64, len(rows))},
		{Label: "Sales", Values: make([]float64, len(rows))},
		{Label: "Other", Values: make([]float64, len(rows))},
	}
	for i, r := range rows {
		labels[i] = r.Month
		series[0].Values[i] = r.Engineering
		series[1].Values[i] = r.Production
		series[2].Values[i] = r.HR
		series[3].Values[i] = r.Sales
		series[4].Values[i] = r.Other
	}
	return h.keep("overtime", func() (template.HTML, error) {
		return chart.Line(chart.DefaultWidth, chart.DefaultHeight, labels, series, chart.Opts{Title: "Overtime hours", ShowDots: true})
	})
}

// keep drops a chart that fails to render; the figures are still shown.
func (h *ReportsHandler) keep(name string, render func() (template.HTML, error)) template.HTML {
	out, err := render()
	if err != nil {
		h.logger.Warn("report chart", zap.String("chart", name), zap.Error(err))
		return ""
	}
	return out
}
