package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/peopleops/hr-console/internal/api/http/handlers"
	"github.com/peopleops/hr-console/internal/auth"
	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/service"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Session    *handlers.SessionHandler
	Dashboard  *handlers.DashboardHandler
	Employees  *handlers.EmployeesHandler
	Attendance *handlers.AttendanceHandler
	Leave      *handlers.LeaveHandler
	Missions   *handlers.MissionsHandler
	Policies   *handlers.PoliciesHandler
	Reports    *handlers.ReportsHandler
	Approvals  *handlers.ApprovalsHandler
	Guard      *auth.RouteGuard
}

// RegisterRoutes wires HTTP routes. Every screen group sits behind the guard
// for its route, mutations included.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/api/session", cfg.Session.Current)

	app.Get(string(domain.RouteRoot), cfg.Session.Root)
	app.Post("/logout", cfg.Session.Logout)

	login := app.Group(string(domain.RouteLogin), cfg.Guard.Protect(domain.RouteLogin))
	login.Get("", cfg.Session.ShowLogin)
	login.Post("", cfg.Session.Login)

	app.Get(string(domain.RouteDashboard), cfg.Guard.Protect(domain.RouteDashboard), cfg.Dashboard.Show)

	employees := app.Group(string(domain.RouteEmployees), cfg.Guard.Protect(domain.RouteEmployees))
	employees.Get("", cfg.Employees.List)
	employees.Post("", cfg.Employees.Create)
	employees.Post("/:id", cfg.Employees.Update)
	employees.Post("/:id/delete", cfg.Employees.Delete)

	attendance := app.Group(string(domain.RouteAttendance), cfg.Guard.Protect(domain.RouteAttendance))
	attendance.Get("", cfg.Attendance.List)
	attendance.Post("/:id/:decision", cfg.Approvals.Decide(service.ApprovalAttendance))

	leave := app.Group(string(domain.RouteLeaveManagement), cfg.Guard.Protect(domain.RouteLeaveManagement))
	leave.Get("", cfg.Leave.List)
	leave.Post("", cfg.Leave.Create)
	leave.Post("/:id/:decision", cfg.Approvals.Decide(service.ApprovalLeave))

	missions := app.Group(string(domain.RouteMissions), cfg.Guard.Protect(domain.RouteMissions))
	missions.Get("", cfg.Missions.List)
	missions.Post("", cfg.Missions.Create)
	missions.Post("/:id/:decision", cfg.Approvals.Decide(service.ApprovalMissions))

	policies := app.Group(string(domain.RoutePolicies), cfg.Guard.Protect(domain.RoutePolicies))
	policies.Get("", cfg.Policies.List)
	policies.Post("", cfg.Policies.Create)
	policies.Post("/:id", cfg.Policies.Update)
	policies.Post("/:id/delete", cfg.Policies.Delete)

	app.Get(string(domain.RouteReports), cfg.Guard.Protect(domain.RouteReports), cfg.Reports.Show)
}
