package auth

import (
	"github.com/peopleops/hr-console/internal/domain"
)

// AccessRule declares who may open a route. An empty AllowedRoles list lets
// any signed-in user through.
type AccessRule struct {
	Route        domain.Route
	Title        string
	AllowedRoles []domain.Role
	Public       bool
}

// AccessPolicy is the static route table.
type AccessPolicy struct {
	rules []AccessRule
	index map[domain.Route]accessEntry
}

type accessEntry struct {
	rule    AccessRule
	allowed map[domain.Role]struct{}
}

// NewAccessPolicy indexes rules. Later duplicates replace earlier ones.
func NewAccessPolicy(rules ...AccessRule) *AccessPolicy {
	p := &AccessPolicy{index: make(map[domain.Route]accessEntry, len(rules))}
	for _, rule := range rules {
		allowedSet := make(map[domain.Role]struct{}, len(rule.AllowedRoles))
		for _, role := range rule.AllowedRoles {
			allowedSet[role] = struct{}{}
		}
		if _, exists := p.index[rule.Route]; !exists {
			p.rules = append(p.rules, rule)
		} else {
			for i := range p.rules {
				if p.rules[i].Route == rule.Route {
					p.rules[i] = rule
				}
			}
		}
		p.index[rule.Route] = accessEntry{rule: rule, allowed: allowedSet}
	}
	return p
}

// DefaultAccessPolicy is the HR console's route table.
func DefaultAccessPolicy() *AccessPolicy {
	managers := []domain.Role{domain.RoleGeneralManager, domain.RoleHRManager}
	return NewAccessPolicy(
		AccessRule{Route: domain.RouteLogin, Title: "Sign in", Public: true},
		AccessRule{Route: domain.RouteDashboard, Title: "Dashboard"},
		AccessRule{Route: domain.RouteEmployees, Title: "Employees", AllowedRoles: managers},
		AccessRule{Route: domain.RouteAttendance, Title: "Attendance"},
		AccessRule{Route: domain.RouteLeaveManagement, Title: "Leave Management"},
		AccessRule{Route: domain.RouteMissions, Title: "Missions"},
		AccessRule{Route: domain.RoutePolicies, Title: "Policies", AllowedRoles: managers},
		AccessRule{Route: domain.RouteReports, Title: "Reports", AllowedRoles: []domain.Role{domain.RoleGeneralManager}},
	)
}

// Decide answers whether identity may open route. A nil identity means
// nobody is signed in.
func (p *AccessPolicy) Decide(route domain.Route, identity *domain.Identity) domain.Decision {
	entry, declared := p.index[route]
	if identity == nil {
		if declared && entry.rule.Public {
			return domain.Allow
		}
		return domain.RedirectToLogin
	}
	if !declared {
		return domain.RedirectToDashboard
	}
	if len(entry.allowed) == 0 {
		return domain.Allow
	}
	if _, ok := entry.allowed[identity.Role]; ok {
		return domain.Allow
	}
	return domain.RedirectToDashboard
}

// Rule returns the declaration for route.
func (p *AccessPolicy) Rule(route domain.Route) (AccessRule, bool) {
	entry, ok := p.index[route]
	return entry.rule, ok
}

// Rules returns the declarations in table order.
func (p *AccessPolicy) Rules() []AccessRule {
	return append([]AccessRule(nil), p.rules...)
}

// Visible lists the non-public routes identity may open, for navigation
// menus.
func (p *AccessPolicy) Visible(identity *domain.Identity) []AccessRule {
	if identity == nil {
		return nil
	}
	var out []AccessRule
	for _, rule := range p.rules {
		if rule.Public {
			continue
		}
		if p.Decide(rule.Route, identity) == domain.Allow {
			out = append(out, rule)
		}
	}
	return out
}
