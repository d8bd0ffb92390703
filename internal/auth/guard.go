package auth

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/peopleops/hr-console/internal/domain"
)

const identityKey = "auth_identity"

// Navigation is the outcome of resolving a route against the session.
type Navigation struct {
	Requested domain.Route
	Target    domain.Route
	Decision  domain.Decision
	Identity  *domain.Identity
}

// Redirected reports whether the caller ends up somewhere else.
func (n Navigation) Redirected() bool {
	return n.Target != n.Requested
}

// RouteGuard applies the access policy to the current session.
type RouteGuard struct {
	session SessionReader
	policy  *AccessPolicy
}

// NewRouteGuard constructs a guard.
func NewRouteGuard(session SessionReader, policy *AccessPolicy) *RouteGuard {
	return &RouteGuard{session: session, policy: policy}
}

// Policy exposes the route table, for navigation menus.
func (g *RouteGuard) Policy() *AccessPolicy {
	return g.policy
}

// Resolve decides where a request for route lands.
func (g *RouteGuard) Resolve(ctx context.Context, route domain.Route) Navigation {
	snap := g.session.Snapshot(ctx)
	nav := Navigation{Requested: route, Identity: snap.Identity}

	if !snap.Authenticated() {
		nav.Identity = nil
	}

	if route == domain.RouteRoot {
		nav.Decision = domain.RedirectToLogin
		nav.Target = domain.RouteLogin
		if nav.Identity != nil {
			nav.Decision = domain.RedirectToDashboard
			nav.Target = domain.RouteDashboard
		}
		return nav
	}

	nav.Decision = g.policy.Decide(route, nav.Identity)
	switch nav.Decision {
	case domain.RedirectToLogin:
		nav.Target = domain.RouteLogin
	case domain.RedirectToDashboard:
		nav.Target = domain.RouteDashboard
	default:
		nav.Target = route
		if route == domain.RouteLogin && nav.Identity != nil {
			nav.Decision = domain.RedirectToDashboard
			nav.Target = domain.RouteDashboard
		}
	}
	return nav
}

// Protect guards a console route. The wrapped handlers only run once the
// policy allows the request; otherwise the client is redirected.
func (g *RouteGuard) Protect(route domain.Route) fiber.Handler {
	return func(c *fiber.Ctx) error {
		nav := g.Resolve(c.UserContext(), route)
		if nav.Redirected() {
			return c.Redirect(string(nav.Target), http.StatusSeeOther)
		}
		if nav.Identity != nil {
			c.Locals(identityKey, nav.Identity)
		}
		return c.Next()
	}
}

// IdentityFromContext retrieves the identity stored by Protect.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}
