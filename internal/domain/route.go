package domain

// Route is a console path.
type Route string

// Console routes.
const (
	RouteRoot            Route = "/"
	RouteLogin           Route = "/login"
	RouteDashboard       Route = "/dashboard"
	RouteEmployees       Route = "/employees"
	RouteAttendance      Route = "/attendance"
	RouteLeaveManagement Route = "/leave-management"
	RouteMissions        Route = "/missions"
	RoutePolicies        Route = "/policies"
	RouteReports         Route = "/reports"
)

func (r Route) String() string { return string(r) }

// Decision is the outcome of an access check.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectToDashboard
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToDashboard:
		return "redirect_to_dashboard"
	default:
		return "unknown"
	}
}
