package auth

import (
	"context"
	"sync"

	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/events"
)

// Navigator tracks the current route of a non-HTTP front end.
type Navigator struct {
	guard *RouteGuard

	mu      sync.Mutex
	current domain.Route
}

// NewNavigator starts at the root route and follows session ends to the
// login screen.
func NewNavigator(guard *RouteGuard, dispatcher events.Dispatcher) *Navigator {
	n := &Navigator{guard: guard, current: domain.RouteRoot}
	if dispatcher != nil {
		dispatcher.Subscribe(events.EventSessionEnded, n.handleSessionEnded)
	}
	return n
}

// Navigate resolves route and moves to the resulting target.
func (n *Navigator) Navigate(ctx context.Context, route domain.Route) Navigation {
	nav := n.guard.Resolve(ctx, route)
	n.mu.Lock()
	n.current = nav.Target
	n.mu.Unlock()
	return nav
}

// Current returns the route the navigator is on.
func (n *Navigator) Current() domain.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *Navigator) handleSessionEnded(_ context.Context, _ events.Event) error {
	n.mu.Lock()
	n.current = domain.RouteLogin
	n.mu.Unlock()
	return nil
}
