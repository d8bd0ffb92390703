package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops/hr-console/internal/app"
	"github.com/peopleops/hr-console/internal/auth/authtest"
	"github.com/peopleops/hr-console/internal/config"
	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/tokenstore"
)

// backend fakes the HR API: logins by email, canned JSON per route and a
// set of paths that answer 401.
type backend struct {
	t        *testing.T
	mu       sync.Mutex
	calls    []string
	routes   map[string]string
	rejected map[string]bool
}

var accounts = map[string]domain.Role{
	"gm@example.com":  domain.RoleGeneralManager,
	"hr@example.com":  domain.RoleHRManager,
	"emp@example.com": domain.RoleEmployee,
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
	b.mu.Lock()
	b.calls = append(b.calls, key)
	rejected := b.rejected[key]
	body, ok := b.routes[key]
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if key == "POST /Authentication/Login" {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		role, known := accounts[creds["username"]]
		if !known || creds["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"Invalid username or password"}`)
			return
		}
		token := authtest.UserToken(b.t, time.Hour, "42", "Ana Lopez", string(role))
		_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
		return
	}
	if rejected {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	_, _ = io.WriteString(w, body)
}

func (b *backend) called(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.calls {
		if c == key {
			return true
		}
	}
	return false
}

func (b *backend) reject(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rejected[key] = true
}

type console struct {
	app       *fiber.App
	container *app.Container
	store     *tokenstore.MemoryStore
	backend   *backend
}

func newConsole(t *testing.T) *console {
	t.Helper()
	b := &backend{t: t, rejected: map[string]bool{}, routes: map[string]string{
		"GET /employees":                    `[{"id":"1","name":"Cy Rivera","email":"cy@example.com","type":"Engineer","status":"Active","salary":5200,"joiningDate":"2024-05-01"}]`,
		"GET /attendance":                   `[{"id":"a1","employee":{"id":"1","name":"Cy Rivera"},"date":"2024-06-01","checkIn":"09:10","checkOut":null,"status":"Pending Approval"}]`,
		"GET /leave":                        `[{"id":"l1","employee":{"id":"1","name":"Cy Rivera"},"type":"Annual","startDate":"2024-07-01","endDate":"2024-07-03","days":3,"status":"Pending"}]`,
		"GET /missions":                     `[{"id":"m1","title":"Plant audit","assignedTo":{"id":"1","name":"Cy Rivera"},"startDate":"2024-08-01","endDate":null,"location":"Plant 2","transportation":null,"status":"Pending"}]`,
		"GET /policies":                     `[{"id":"p1","name":"Overtime rate","category":"Overtime","value":"1.5x","createdBy":{"id":"42","name":"Ana Lopez"}}]`,
		"GET /dashboard/stats":              `{"totalEmployees":{"value":120,"trend":{"type":"up","value":"+4%"}},"pendingLeaveRequests":{"value":3}}`,
		"GET /dashboard/attendance":         `[{"date":"Mon","present":90,"absent":5,"late":3}]`,
		"GET /dashboard/leave-distribution": `[{"name":"Annual","value":12,"color":"#3b82f6"},{"name":"Sick","value":4,"color":"#ef4444"}]`,
		"GET /reports":                      `{"departmentData":[{"name":"Engineering","employees":30},{"name":"HR","employees":5}],"salaryData":[{"department":"Engineering","min":3000,"average":5000,"max":9000}],"attendanceData":[{"month":"Jan","onTime":90,"late":5,"absent":5}]}`,
	}}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		App:   config.AppConfig{Name: "hr-console", Env: "test", Version: "test", RequestTimeout: 5 * time.Second},
		API:   config.APIConfig{BaseURL: srv.URL + "/api", LoginPath: "/Authentication/Login", Timeout: 5 * time.Second},
		Store: config.StoreConfig{Backend: config.StoreMemory},
	}
	store := tokenstore.NewMemoryStore()
	container, err := app.Build(context.Background(), cfg, nil, app.WithStore(store))
	require.NoError(t, err)
	t.Cleanup(container.Close)

	fiberApp, err := container.Console()
	require.NoError(t, err)
	return &console{app: fiberApp, container: container, store: store, backend: b}
}

func (cs *console) do(t *testing.T, method, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	resp, err := cs.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func (cs *console) login(t *testing.T, username string) {
	t.Helper()
	resp, _ := cs.do(t, http.MethodPost, "/login", url.Values{"username": {username}, "password": {"secret"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, location, resp.Header.Get("Location"))
}

func TestSignedOutRequestsGoToLogin(t *testing.T) {
	cs := newConsole(t)

	for _, path := range []string{"/", "/dashboard", "/employees", "/reports", "/leave-management"} {
		resp, _ := cs.do(t, http.MethodGet, path, nil)
		assertRedirect(t, resp, "/login")
	}

	resp, body := cs.do(t, http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `action="/login"`)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestLoginFormValidationNeverReachesBackend(t *testing.T) {
	cs := newConsole(t)

	resp, body := cs.do(t, http.MethodPost, "/login", url.Values{"username": {"ana"}, "password": {""}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Please enter a valid email address")
	assert.Contains(t, body, "Password is required")
	assert.False(t, cs.backend.called("POST /Authentication/Login"))
}

func TestLoginFailureShowsBackendMessage(t *testing.T) {
	cs := newConsole(t)

	resp, body := cs.do(t, http.MethodPost, "/login", url.Values{"username": {"hr@example.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or password")
	assert.Contains(t, body, `value="hr@example.com"`)
	assert.Zero(t, cs.store.Len())
}

func TestHRManagerNavigation(t *testing.T) {
	cs := newConsole(t)
	cs.login(t, "hr@example.com")

	resp, body := cs.do(t, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Ana Lopez")
	assert.Contains(t, body, `href="/employees"`)
	assert.Contains(t, body, `href="/policies"`)
	assert.NotContains(t, body, `href="/reports"`)
	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, "120")

	resp, _ = cs.do(t, http.MethodGet, "/reports", nil)
	assertRedirect(t, resp, "/dashboard")
	resp, _ = cs.do(t, http.MethodGet, "/login", nil)
	assertRedirect(t, resp, "/dashboard")
	resp, _ = cs.do(t, http.MethodGet, "/", nil)
	assertRedirect(t, resp, "/dashboard")

	resp, body = cs.do(t, http.MethodGet, "/employees", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Cy Rivera")
	assert.Contains(t, body, "$5,200")
}

func TestEmployeeCannotMutateRestrictedScreens(t *testing.T) {
	cs := newConsole(t)
	cs.login(t, "emp@example.com")

	resp, _ := cs.do(t, http.MethodPost, "/employees", url.Values{"name": {"X"}})
	assertRedirect(t, resp, "/dashboard")
	resp, _ = cs.do(t, http.MethodPost, "/policies/p1/delete", nil)
	assertRedirect(t, resp, "/dashboard")
	assert.False(t, cs.backend.called("POST /employees"))
	assert.False(t, cs.backend.called("DELETE /policies/p1"))

	resp, body := cs.do(t, http.MethodGet, "/missions", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Plant audit")
}

func TestRejectedRequestEndsSession(t *testing.T) {
	cs := newConsole(t)
	cs.login(t, "hr@example.com")
	cs.backend.reject("GET /missions")

	resp, _ := cs.do(t, http.MethodGet, "/missions", nil)
	assertRedirect(t, resp, "/login")

	assert.False(t, cs.container.Session.Snapshot(context.Background()).Authenticated())
	assert.Zero(t, cs.store.Len())
	assert.Equal(t, domain.RouteLogin, cs.container.Navigator.Current())

	resp, _ = cs.do(t, http.MethodGet, "/dashboard", nil)
	assertRedirect(t, resp, "/login")
}

func TestApprovalsAndForms(t *testing.T) {
	cs := newConsole(t)
	cs.login(t, "hr@example.com")

	resp, _ := cs.do(t, http.MethodPost, "/leave-management/l1/approve", nil)
	assertRedirect(t, resp, "/leave-management?notice=Request+approved")
	assert.True(t, cs.backend.called("PUT /leave/l1/approve"))

	resp, _ = cs.do(t, http.MethodPost, "/attendance/a1/reject", nil)
	assertRedirect(t, resp, "/attendance?notice=Request+rejected")
	assert.True(t, cs.backend.called("PUT /attendance/a1/reject"))

	resp, body := cs.do(t, http.MethodPost, "/missions/m1/escalate", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "action not found")

	resp, _ = cs.do(t, http.MethodPost, "/employees", url.Values{"name": {"Dee"}, "email": {"not-an-email"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "/employees?error=")
	assert.False(t, cs.backend.called("POST /employees"))

	resp, _ = cs.do(t, http.MethodPost, "/employees", url.Values{
		"name": {"Dee"}, "email": {"dee@example.com"}, "position": {"Analyst"}, "department": {"HR"},
		"type": {"Worker"}, "joiningDate": {"2024-09-01"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "notice=")
	assert.True(t, cs.backend.called("POST /employees"))

	_, body = cs.do(t, http.MethodGet, "/employees?notice=Employee+Dee+created", nil)
	assert.Contains(t, body, "Employee Dee created")
}

func TestGeneralManagerReports(t *testing.T) {
	cs := newConsole(t)
	cs.login(t, "gm@example.com")

	resp, body := cs.do(t, http.MethodGet, "/reports?period=year", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<option value="year" selected>`)
	assert.Contains(t, body, "Largest: Engineering")
	assert.Contains(t, body, "90.0%")
	assert.GreaterOrEqual(t, strings.Count(body, "<svg"), 3)
	assert.True(t, cs.backend.called("GET /reports"))
}

func TestSessionProbeAndLogout(t *testing.T) {
	cs := newConsole(t)

	resp, body := cs.do(t, http.MethodGet, "/api/session", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"data":{"authenticated":false,"state":"unauthenticated"}}`, body)

	cs.login(t, "hr@example.com")
	_, body = cs.do(t, http.MethodGet, "/api/session", nil)
	var probe struct {
		Data struct {
			Authenticated bool            `json:"authenticated"`
			Identity      domain.Identity `json:"identity"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &probe))
	assert.True(t, probe.Data.Authenticated)
	assert.Equal(t, domain.RoleHRManager, probe.Data.Identity.Role)
	assert.Equal(t, "hr@example.com", probe.Data.Identity.Username)

	resp, _ = cs.do(t, http.MethodPost, "/logout", nil)
	assertRedirect(t, resp, "/login")
	resp, _ = cs.do(t, http.MethodPost, "/logout", nil)
	assertRedirect(t, resp, "/login")
	resp, _ = cs.do(t, http.MethodGet, "/dashboard", nil)
	assertRedirect(t, resp, "/login")
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	cs := newConsole(t)

	resp, body := cs.do(t, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"alive"`)

	resp, body = cs.do(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"token_store":"memory"`)

	req := httptest.NewRequest(http.MethodGet, "/payroll", nil)
	req.Header.Set("Accept", "application/json")
	resp, err := cs.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), `"NOT_FOUND"`)
}
