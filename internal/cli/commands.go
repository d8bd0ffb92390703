package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/peopleops/hr-console/internal/api/dto"
	"github.com/peopleops/hr-console/internal/app"
	"github.com/peopleops/hr-console/internal/auth"
	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/repository"
	"github.com/peopleops/hr-console/internal/service"
	apperrors "github.com/peopleops/hr-console/pkg/util"
)

// Env is what commands run against.
type Env struct {
	Container *app.Container
	Out       io.Writer
	Err       io.Writer
	JSON      bool

	// ReadPassword defaults to the file or terminal prompt.
	ReadPassword func(passwordFile string) (string, error)
}

// RedirectError reports that the guard sent the command elsewhere.
type RedirectError struct {
	Requested domain.Route
	Target    domain.Route
}

func (e *RedirectError) Error() string {
	if e.Target == domain.RouteLogin {
		return "not logged in (run: hrctl login <email>)"
	}
	return fmt.Sprintf("access to %s denied for your role", e.Requested)
}

// ErrSessionRejected replaces the backend's 401 once the session is gone.
var ErrSessionRejected = errors.New("the server rejected the session; log in again")

// Run executes one hrctl command line.
func Run(ctx context.Context, env *Env, args []string) error {
	if env.ReadPassword == nil {
		env.ReadPassword = func(file string) (string, error) { return readPassword(file, env.Err) }
	}
	err := Dispatch(ctx, Commands(env), args, env.Err)
	var loginErr *auth.LoginError
	if apperrors.IsUnauthorized(err) && !errors.As(err, &loginErr) {
		return ErrSessionRejected
	}
	return err
}

// resources maps list targets to the screen that owns them.
var resources = map[string]domain.Route{
	"employees":  domain.RouteEmployees,
	"attendance": domain.RouteAttendance,
	"leave":      domain.RouteLeaveManagement,
	"missions":   domain.RouteMissions,
	"policies":   domain.RoutePolicies,
}

// Commands returns the hrctl command table.
func Commands(env *Env) []*Command {
	return []*Command{
		env.loginCommand(),
		{
			Name:    "logout",
			Summary: "End the session and clear the stored token",
			Usage:   "hrctl logout",
			Run: func(ctx context.Context, _ []string) error {
				if err := env.Container.Session.Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(env.Out, "Logged out")
				return nil
			},
		},
		{
			Name:    "whoami",
			Summary: "Show the signed-in user",
			Usage:   "hrctl whoami",
			Run:     env.whoami,
		},
		{
			Name:    "open",
			Summary: "Resolve a console route for the current session",
			Usage:   "hrctl open <route>",
			Run:     env.open,
		},
		env.listCommand(),
		env.decisionCommand(repository.Approve),
		env.decisionCommand(repository.Reject),
		env.dashboardCommand(),
		env.reportsCommand(),
	}
}

func (e *Env) loginCommand() *Command {
	var passwordFile string
	return &Command{
		Name:    "login",
		Summary: "Sign in with an email and password",
		Usage:   "hrctl login <email> [--password-file path|-]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
			fs.StringVar(&passwordFile, "password-file", "", "file holding the password, or - to prompt")
			return fs
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return &UsageError{Usage: "hrctl login <email> [--password-file path|-]"}
			}
			password, err := e.ReadPassword(passwordFile)
			if err != nil {
				return err
			}
			form := dto.LoginForm{Username: args[0], Password: password}
			form.Normalize()
			if errs := dto.Validate(form); errs != nil {
				return errors.New(errs.First())
			}
			creds := form.Credentials()
			snap, err := e.Container.Session.Login(ctx, creds.Username, creds.Password)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.Out, "Logged in as %s (%s)\n", snap.Identity.Name, snap.Identity.Role)
			return nil
		},
	}
}

func (e *Env) whoami(ctx context.Context, _ []string) error {
	snap := e.Container.Session.Snapshot(ctx)
	if !snap.Authenticated() {
		return &RedirectError{Requested: domain.RouteRoot, Target: domain.RouteLogin}
	}
	if e.JSON {
		return e.printJSON(map[string]any{"identity": snap.Identity, "expires_at": snap.ExpiresAt})
	}
	fmt.Fprintf(e.Out, "%s <%s>\nrole:    %s\nexpires: %s\n",
		snap.Identity.Name, snap.Identity.Username, snap.Identity.Role, snap.ExpiresAt.Local().Format(time.RFC1123))
	return nil
}

func (e *Env) open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return &UsageError{Usage: "hrctl open <route>"}
	}
	route := domain.Route("/" + strings.TrimPrefix(args[0], "/"))
	nav := e.Container.Navigator.Navigate(ctx, route)
	if e.JSON {
		if err := e.printJSON(map[string]any{
			"requested": nav.Requested, "target": nav.Target, "decision": nav.Decision.String(),
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(e.Out, nav.Target)
	}
	if nav.Redirected() && route != domain.RouteRoot {
		return &RedirectError{Requested: nav.Requested, Target: nav.Target}
	}
	return nil
}

// enter navigates to route and stops on a redirect.
func (e *Env) enter(ctx context.Context, route domain.Route) error {
	nav := e.Container.Navigator.Navigate(ctx, route)
	if nav.Redirected() {
		return &RedirectError{Requested: route, Target: nav.Target}
	}
	return nil
}

func (e *Env) listCommand() *Command {
	var date, employee string
	usage := "hrctl list <employees|attendance|leave|missions|policies> [--date YYYY-MM-DD] [--employee id]"
	return &Command{
		Name:    "list",
		Summary: "List employees, attendance, leave, missions or policies",
		Usage:   usage,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
			fs.StringVar(&date, "date", "", "attendance date filter")
			fs.StringVar(&employee, "employee", "", "attendance employee id filter")
			return fs
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return &UsageError{Usage: usage}
			}
			route, ok := resources[args[0]]
			if !ok {
				return &UsageError{Usage: usage, Message: fmt.Sprintf("unknown resource %q", args[0])}
			}
			if err := e.enter(ctx, route); err != nil {
				return err
			}
			c := e.Container
			switch args[0] {
			case "employees":
				rows, err := c.Employees.List(ctx)
				if err != nil {
					return err
				}
				return e.table(rows, "ID\tNAME\tEMAIL\tPOSITION\tDEPARTMENT\tTYPE\tSTATUS", func(w io.Writer) {
					for _, r := range rows {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Email, r.Position, r.Department, r.Type, r.Status)
					}
				})
			case "attendance":
				rows, err := c.Attendance.List(ctx, repository.AttendanceFilter{Date: date, EmployeeID: employee})
				if err != nil {
					return err
				}
				return e.table(rows, "ID\tEMPLOYEE\tDATE\tIN\tOUT\tSTATUS", func(w io.Writer) {
					for _, r := range rows {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Employee.Name, r.Date, r.CheckIn, orDash(r.CheckOut), r.Status)
					}
				})
			case "leave":
				rows, err := c.Leave.List(ctx)
				if err != nil {
					return err
				}
				return e.table(rows, "ID\tEMPLOYEE\tTYPE\tFROM\tTO\tDAYS\tSTATUS", func(w io.Writer) {
					for _, r := range rows {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n", r.ID, r.Employee.Name, r.Type, r.StartDate, r.EndDate, r.Days, r.Status)
					}
				})
			case "missions":
				rows, err := c.Missions.List(ctx)
				if err != nil {
					return err
				}
				return e.table(rows, "ID\tTITLE\tASSIGNED TO\tLOCATION\tSTART\tEND\tSTATUS", func(w io.Writer) {
					for _, r := range rows {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Title, r.AssignedTo.Name, r.Location, r.StartDate, orDash(r.EndDate), r.Status)
					}
				})
			default:
				rows, err := c.Policies.List(ctx)
				if err != nil {
					return err
				}
				return e.table(rows, "ID\tNAME\tCATEGORY\tVALUE", func(w io.Writer) {
					for _, r := range rows {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Category, r.Value)
					}
				})
			}
		},
	}
}

func (e *Env) decisionCommand(d repository.Decision) *Command {
	name := string(d)
	usage := fmt.Sprintf("hrctl %s <attendance|leave|missions> <id>", name)
	return &Command{
		Name:    name,
		Summary: fmt.Sprintf("%s a pending attendance record, leave request or mission", strings.ToUpper(name[:1])+name[1:]),
		Usage:   usage,
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 2 {
				return &UsageError{Usage: usage}
			}
			kind, ok := service.ParseApprovalKind(args[0])
			if !ok {
				return &UsageError{Usage: usage, Message: fmt.Sprintf("unknown kind %q", args[0])}
			}
			if err := e.enter(ctx, kind.Route()); err != nil {
				return err
			}
			if err := e.Container.Approvals.Decide(ctx, kind, args[1], d); err != nil {
				return err
			}
			verb := "Approved"
			if d == repository.Reject {
				verb = "Rejected"
			}
			fmt.Fprintf(e.Out, "%s %s %s\n", verb, kind, args[1])
			return nil
		},
	}
}

func (e *Env) dashboardCommand() *Command {
	var period string
	return &Command{
		Name:    "dashboard",
		Summary: "Show headline numbers, pending approvals and recent activity",
		Usage:   "hrctl dashboard [--period week|month|quarter]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("dashboard", pflag.ContinueOnError)
			fs.StringVar(&period, "period", service.DefaultAttendancePeriod, "attendance chart window")
			return fs
		},
		Run: func(ctx context.Context, _ []string) error {
			if err := e.enter(ctx, domain.RouteDashboard); err != nil {
				return err
			}
			view, err := e.Container.Dashboard.Load(ctx, period)
			if err != nil {
				return err
			}
			if e.JSON {
				failed := make(map[string]string, len(view.Errors))
				for section, err := range view.Errors {
					failed[section] = err.Error()
				}
				return e.printJSON(map[string]any{
					"period":             view.Period,
					"stats":              view.Stats,
					"attendance":         view.Attendance,
					"leave_distribution": view.LeaveDistribution,
					"pending_approvals":  view.PendingApprovals,
					"recent_activity":    view.RecentActivity,
					"errors":             failed,
				})
			}
			if s := view.Stats; s != nil {
				fmt.Fprintf(e.Out, "Employees: %d  Pending leave: %d  Attendance today: %d  Active missions: %d\n",
					s.TotalEmployees.Value, s.PendingLeaveRequests.Value, s.TodayAttendance.Value, s.ActiveMissions.Value)
			}
			for section := range view.Errors {
				fmt.Fprintf(e.Err, "%s unavailable\n", section)
			}
			if len(view.PendingApprovals) > 0 {
				fmt.Fprintln(e.Out, "\nPending approvals:")
				tw := tabwriter.NewWriter(e.Out, 2, 0, 3, ' ', 0)
				for _, p := range view.PendingApprovals {
					fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", p.ID, p.Type, p.Employee.Name, p.Date)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			if len(view.RecentActivity) > 0 {
				fmt.Fprintln(e.Out, "\nRecent activity:")
				for _, a := range view.RecentActivity {
					fmt.Fprintf(e.Out, "  %s (%s)\n", a.Description, a.Time)
				}
			}
			return nil
		},
	}
}

func (e *Env) reportsCommand() *Command {
	var period string
	return &Command{
		Name:    "reports",
		Summary: "Show the HR report summary",
		Usage:   "hrctl reports [--period month|quarter|year]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("reports", pflag.ContinueOnError)
			fs.StringVar(&period, "period", string(domain.ReportQuarter), "report window")
			return fs
		},
		Run: func(ctx context.Context, _ []string) error {
			if err := e.enter(ctx, domain.RouteReports); err != nil {
				return err
			}
			view, err := e.Container.Reports.Load(ctx, domain.ParseReportPeriod(period))
			if err != nil {
				return err
			}
			if e.JSON {
				return e.printJSON(view)
			}
			tw := tabwriter.NewWriter(e.Out, 2, 0, 3, ' ', 0)
			fmt.Fprintf(tw, "Period\t%s\n", view.Period)
			fmt.Fprintf(tw, "Employees\t%d\n", view.TotalEmployees)
			fmt.Fprintf(tw, "Largest department\t%s\n", view.LargestDepartment)
			fmt.Fprintf(tw, "Average salary\t%.0f\n", view.AverageSalary)
			fmt.Fprintf(tw, "Attendance rate\t%.1f%%\n", view.AttendanceRate)
			fmt.Fprintf(tw, "Leave days taken\t%d\n", view.LeaveDaysTaken)
			fmt.Fprintf(tw, "Overtime hours\t%.1f\n", view.OvertimeHours)
			return tw.Flush()
		},
	}
}

func (e *Env) table(rows any, header string, body func(io.Writer)) error {
	if e.JSON {
		return e.printJSON(rows)
	}
	tw := tabwriter.NewWriter(e.Out, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, header)
	body(tw)
	return tw.Flush()
}

func (e *Env) printJSON(v any) error {
	enc := json.NewEncoder(e.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
