// Package app wires the console and the CLI from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/peopleops/hr-console/internal/api/http"
	"github.com/peopleops/hr-console/internal/api/http/handlers"
	"github.com/peopleops/hr-console/internal/auth"
	"github.com/peopleops/hr-console/internal/config"
	"github.com/peopleops/hr-console/internal/events"
	"github.com/peopleops/hr-console/internal/gateway"
	"github.com/peopleops/hr-console/internal/observability"
	"github.com/peopleops/hr-console/internal/persistence"
	"github.com/peopleops/hr-console/internal/repository"
	"github.com/peopleops/hr-console/internal/service"
	"github.com/peopleops/hr-console/internal/tokenstore"
	"github.com/peopleops/hr-console/internal/view"
	"github.com/peopleops/hr-console/internal/worker"
)

// Container holds the wired components.
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Dispatcher events.Dispatcher
	Store      tokenstore.Store
	Redis      *persistence.Redis
	Gateway    *gateway.Client
	Session    *auth.SessionManager
	Guard      *auth.RouteGuard
	Navigator  *auth.Navigator
	Audit      *service.SessionAudit

	Employees  repository.EmployeeRepository
	Attendance repository.AttendanceRepository
	Leave      repository.LeaveRepository
	Missions   repository.MissionRepository
	Policies   repository.PolicyRepository

	Dashboard *service.DashboardService
	Reports   *service.ReportService
	Approvals *service.ApprovalService
}

type options struct {
	store       tokenstore.Store
	sessionOpts []auth.SessionOption
}

// Option customises Build.
type Option func(*options)

// WithStore replaces the configured token store.
func WithStore(store tokenstore.Store) Option {
	return func(o *options) { o.store = store }
}

// WithSessionOptions passes options to the session manager.
func WithSessionOptions(opts ...auth.SessionOption) Option {
	return func(o *options) { o.sessionOpts = append(o.sessionOpts, opts...) }
}

// Build wires every component and restores a persisted session.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*Container, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Container{
		Config:     cfg,
		Logger:     logger,
		Metrics:    observability.NewMetrics(),
		Dispatcher: events.NewInMemoryDispatcher(),
		Store:      o.store,
	}
	if c.Store == nil {
		c.Store, c.Redis = openStore(cfg, logger)
	}

	c.Audit = service.NewSessionAudit(c.Dispatcher, logger.Named("audit"), 0)
	worker.StartSessionAuditor(c.Audit)

	c.Gateway = gateway.New(cfg.API, c.Store, c.Dispatcher, c.Metrics, logger.Named("gateway"))
	c.Session = auth.NewSessionManager(c.Store, c.Gateway, c.Dispatcher, logger.Named("session"), o.sessionOpts...)
	c.Guard = auth.NewRouteGuard(c.Session, auth.DefaultAccessPolicy())
	c.Navigator = auth.NewNavigator(c.Guard, c.Dispatcher)

	c.Employees = repository.NewEmployeeRepository(c.Gateway)
	c.Attendance = repository.NewAttendanceRepository(c.Gateway)
	c.Leave = repository.NewLeaveRepository(c.Gateway)
	c.Missions = repository.NewMissionRepository(c.Gateway)
	c.Policies = repository.NewPolicyRepository(c.Gateway)

	c.Dashboard = service.NewDashboardService(repository.NewDashboardRepository(c.Gateway), logger.Named("dashboard"))
	c.Reports = service.NewReportService(repository.NewReportRepository(c.Gateway))
	c.Approvals = service.NewApprovalService(c.Attendance, c.Leave, c.Missions, logger.Named("approvals"))

	if err := c.Session.Init(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}
	return c, nil
}

func openStore(cfg *config.Config, logger *zap.Logger) (tokenstore.Store, *persistence.Redis) {
	switch cfg.Store.Backend {
	case config.StoreRedis:
		redis := persistence.NewRedis(cfg.Redis, logger)
		return tokenstore.NewRedisStore(redis.Client, cfg.Redis.KeyPrefix), redis
	case config.StoreMemory:
		return tokenstore.NewMemoryStore(), nil
	default:
		return tokenstore.NewFileStore(cfg.Store.SessionFilePath()), nil
	}
}

// Console builds the fiber application serving the HR screens.
func (c *Container) Console() (*fiber.App, error) {
	engine, err := view.NewEngine()
	if err != nil {
		return nil, err
	}
	pages := handlers.NewPages(engine, c.Config.App.Name, c.Guard.Policy(), c.Logger)

	app := fiber.New(fiber.Config{
		AppName:               c.Config.App.Name,
		DisableStartupMessage: c.Config.App.IsProduction(),
	})
	httptransport.RegisterMiddlewares(app, c.Logger, c.Metrics, c.Config.App.RequestTimeout, pages)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(c.Config.App.Name, c.Config.App.Version, c.Config.Store.Backend, c.Redis),
		Session:    handlers.NewSessionHandler(c.Session, c.Guard, pages, c.Logger),
		Dashboard:  handlers.NewDashboardHandler(c.Dashboard, pages, c.Logger),
		Employees:  handlers.NewEmployeesHandler(c.Employees, pages),
		Attendance: handlers.NewAttendanceHandler(c.Attendance, pages),
		Leave:      handlers.NewLeaveHandler(c.Leave, pages),
		Missions:   handlers.NewMissionsHandler(c.Missions, pages),
		Policies:   handlers.NewPoliciesHandler(c.Policies, pages),
		Reports:    handlers.NewReportsHandler(c.Reports, pages, c.Logger),
		Approvals:  handlers.NewApprovalsHandler(c.Approvals),
		Guard:      c.Guard,
	})
	return app, nil
}

// Close releases external connections.
func (c *Container) Close() {
	c.Redis.Close()
}
