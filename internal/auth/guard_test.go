package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops/hr-console/internal/domain"
)

type staticSession struct {
	identity *domain.Identity
}

func (s staticSession) Snapshot(context.Context) Snapshot {
	if s.identity == nil {
		return Snapshot{State: StateUnauthenticated}
	}
	return Snapshot{State: StateAuthenticated, Identity: s.identity}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		identity *domain.Identity
		route    domain.Route
		target   domain.Route
		decision domain.Decision
	}{
		{"root signed out", nil, domain.RouteRoot, domain.RouteLogin, domain.RedirectToLogin},
		{"root signed in", identity(domain.RoleEmployee), domain.RouteRoot, domain.RouteDashboard, domain.RedirectToDashboard},
		{"login signed out", nil, domain.RouteLogin, domain.RouteLogin, domain.Allow},
		{"login signed in", identity(domain.RoleEmployee), domain.RouteLogin, domain.RouteDashboard, domain.RedirectToDashboard},
		{"protected signed out", nil, domain.RouteMissions, domain.RouteLogin, domain.RedirectToLogin},
		{"hr manager on reports", identity(domain.RoleHRManager), domain.RouteReports, domain.RouteDashboard, domain.RedirectToDashboard},
		{"hr manager on employees", identity(domain.RoleHRManager), domain.RouteEmployees, domain.RouteEmployees, domain.Allow},
		{"general manager on reports", identity(domain.RoleGeneralManager), domain.RouteReports, domain.RouteReports, domain.Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := NewRouteGuard(staticSession{identity: tt.identity}, DefaultAccessPolicy())
			nav := guard.Resolve(context.Background(), tt.route)
			assert.Equal(t, tt.route, nav.Requested)
			assert.Equal(t, tt.target, nav.Target)
			assert.Equal(t, tt.decision, nav.Decision)
			assert.Equal(t, tt.target != tt.route, nav.Redirected())
		})
	}
}

func TestProtectRedirectsBeforeHandler(t *testing.T) {
	guard := NewRouteGuard(staticSession{identity: identity(domain.RoleHRManager)}, DefaultAccessPolicy())

	ran := false
	app := fiber.New()
	app.Get("/reports", guard.Protect(domain.RouteReports), func(c *fiber.Ctx) error {
		ran = true
		return c.SendString("report")
	})
	app.Get("/employees", guard.Protect(domain.RouteEmployees), func(c *fiber.Ctx) error {
		id, ok := IdentityFromContext(c)
		require.True(t, ok)
		return c.SendString(id.Name)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/reports", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	assert.False(t, ran)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/employees", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Test", string(body))
}

func TestProtectSignedOut(t *testing.T) {
	guard := NewRouteGuard(staticSession{}, DefaultAccessPolicy())
	app := fiber.New()
	app.Get("/dashboard", guard.Protect(domain.RouteDashboard), func(c *fiber.Ctx) error {
		return c.SendString("dashboard")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestNavigatorFollowsDecisions(t *testing.T) {
	guard := NewRouteGuard(staticSession{identity: identity(domain.RoleHRManager)}, DefaultAccessPolicy())
	n := NewNavigator(guard, nil)
	assert.Equal(t, domain.RouteRoot, n.Current())

	n.Navigate(context.Background(), domain.RouteEmployees)
	assert.Equal(t, domain.RouteEmployees, n.Current())

	nav := n.Navigate(context.Background(), domain.RouteReports)
	assert.Equal(t, domain.RedirectToDashboard, nav.Decision)
	assert.Equal(t, domain.RouteDashboard, n.Current())
}
