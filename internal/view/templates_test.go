package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops/hr-console/internal/domain"
)

func TestEngineParsesEveryPage(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)
	for _, page := range []string{"login", "error", "dashboard", "employees", "attendance", "leave-management", "missions", "policies", "reports"} {
		assert.True(t, engine.Has(page), page)
	}
	assert.False(t, engine.Has("payroll"))
}

func TestRenderLayoutWithIdentity(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = engine.Render(&buf, "error", TemplateData{
		Title:    "Not found",
		AppName:  "hr-console",
		Identity: &domain.Identity{Name: "Ana Lopez", Role: domain.RoleHRManager},
		Nav: []NavItem{
			{Route: domain.RouteDashboard, Title: "Dashboard", Active: true},
			{Route: domain.RouteEmployees, Title: "Employees"},
		},
		Flash: &Flash{Kind: "error", Message: "<b>boom</b>"},
		Data:  map[string]any{"Status": 404, "Message": "page not found"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `<a href="/dashboard" class="active">Dashboard</a>`)
	assert.Contains(t, out, `href="/employees"`)
	assert.Contains(t, out, "AL")
	assert.Contains(t, out, "HR Manager")
	assert.Contains(t, out, "&lt;b&gt;boom&lt;/b&gt;")
	assert.Contains(t, out, "page not found")
}

func TestRenderLoginWithoutIdentity(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = engine.Render(&buf, "login", TemplateData{
		Title:   "Sign in",
		AppName: "hr-console",
		Data: map[string]any{
			"Username": "ana@example.com",
			"Errors":   map[string]string{"general": "Login failed. Please check your credentials."},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "<aside>")
	assert.Contains(t, out, `value="ana@example.com"`)
	assert.Contains(t, out, "Login failed. Please check your credentials.")
}

func TestRenderUnknownPage(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)
	assert.Error(t, engine.Render(&bytes.Buffer{}, "payroll", TemplateData{}))

	var nilEngine *Engine
	assert.Error(t, nilEngine.Render(&bytes.Buffer{}, "login", TemplateData{}))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "AM", initials("ana maria lopez"))
	assert.Equal(t, "AL", initials("Ana Lopez"))
	assert.Equal(t, "?", initials("  "))
	assert.Equal(t, "01 Jun 2024", formatDate("2024-06-01"))
	assert.Equal(t, "01 Jun 2024", formatDate("2024-06-01T08:30:00"))
	assert.Equal(t, "yesterday", formatDate("yesterday"))
	assert.Equal(t, "$1,234,567", formatMoney(1234567))
	assert.Equal(t, "$950", formatMoney(950))
	assert.Equal(t, "-$1,000", formatMoney(-1000))
	assert.Equal(t, "badge-warning", badgeClass("Pending Approval"))
	assert.Equal(t, "badge-neutral", badgeClass("Unknown"))
}
