package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops/hr-console/internal/app"
	"github.com/peopleops/hr-console/internal/auth"
	"github.com/peopleops/hr-console/internal/auth/authtest"
	"github.com/peopleops/hr-console/internal/config"
	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/tokenstore"
)

type harness struct {
	env   *Env
	out   *bytes.Buffer
	store *tokenstore.MemoryStore
	role  domain.Role

	mu     sync.Mutex
	calls  []string
	reject bool
}

func newHarness(t *testing.T, role domain.Role) *harness {
	t.Helper()
	h := &harness{out: &bytes.Buffer{}, store: tokenstore.NewMemoryStore(), role: role}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}
		h.mu.Lock()
		h.calls = append(h.calls, key)
		reject := h.reject
		h.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/Authentication/Login":
			var creds map[string]string
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds["password"] != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, `{"message":"Invalid username or password"}`)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{
				"token": authtest.UserToken(t, time.Hour, "42", "Ana Lopez", string(h.role)),
			})
		case reject:
			w.WriteHeader(http.StatusUnauthorized)
		case key == "GET /employees":
			_, _ = io.WriteString(w, `[{"id":"1","name":"Cy Rivera","email":"cy@example.com","position":"Welder","department":"Production","type":"Worker","status":"Active"}]`)
		case strings.HasPrefix(key, "GET /attendance"):
			_, _ = io.WriteString(w, `[{"id":"a1","employee":{"id":"1","name":"Cy Rivera"},"date":"2024-06-01","checkIn":"09:10","checkOut":null,"status":"Late"}]`)
		case key == "GET /reports?period=year":
			_, _ = io.WriteString(w, `{"departmentData":[{"name":"Engineering","employees":30}],"attendanceData":[{"month":"Jan","onTime":9,"late":1,"absent":0}]}`)
		case key == "GET /dashboard/stats":
			_, _ = io.WriteString(w, `{"totalEmployees":{"value":120}}`)
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		API:   config.APIConfig{BaseURL: srv.URL, LoginPath: "/Authentication/Login", Timeout: 5 * time.Second},
		Store: config.StoreConfig{Backend: config.StoreMemory},
	}
	container, err := app.Build(context.Background(), cfg, nil, app.WithStore(h.store))
	require.NoError(t, err)
	t.Cleanup(container.Close)

	h.env = &Env{
		Container:    container,
		Out:          h.out,
		Err:          io.Discard,
		ReadPassword: func(string) (string, error) { return "secret", nil },
	}
	return h
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	h.out.Reset()
	return Run(context.Background(), h.env, args)
}

func (h *harness) called(key string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.calls {
		if c == key {
			return true
		}
	}
	return false
}

func TestLoginWhoamiLogout(t *testing.T) {
	h := newHarness(t, domain.RoleHRManager)

	err := h.run(t, "whoami")
	var redirect *RedirectError
	require.ErrorAs(t, err, &redirect)
	assert.Equal(t, domain.RouteLogin, redirect.Target)

	require.NoError(t, h.run(t, "login", "hr@example.com"))
	assert.Equal(t, "Logged in as Ana Lopez (HR Manager)\n", h.out.String())
	assert.Equal(t, 2, h.store.Len())

	require.NoError(t, h.run(t, "whoami"))
	assert.Contains(t, h.out.String(), "Ana Lopez <hr@example.com>")
	assert.Contains(t, h.out.String(), "HR Manager")

	require.NoError(t, h.run(t, "logout"))
	assert.Zero(t, h.store.Len())
	require.NoError(t, h.run(t, "logout"))
}

func TestLoginErrors(t *testing.T) {
	h := newHarness(t, domain.RoleEmployee)

	err := h.run(t, "login", "not-an-email")
	require.Error(t, err)
	assert.Equal(t, "Please enter a valid email address", err.Error())
	assert.False(t, h.called("POST /Authentication/Login"))

	h.env.ReadPassword = func(string) (string, error) { return "wrong", nil }
	err = h.run(t, "login", "emp@example.com")
	var loginErr *auth.LoginError
	require.ErrorAs(t, err, &loginErr)
	assert.Equal(t, "Invalid username or password", err.Error())

	err = h.run(t, "login")
	assert.ErrorIs(t, err, ErrUsage)
}

func TestPasswordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pw")
	require.NoError(t, os.WriteFile(path, []byte("secret\n"), 0o600))
	pw, err := readPassword(path, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "secret", pw)

	_, err = readPassword(filepath.Join(t.TempDir(), "missing"), io.Discard)
	assert.Error(t, err)
}

func TestResourceCommandsStopOnRedirect(t *testing.T) {
	h := newHarness(t, domain.RoleEmployee)

	err := h.run(t, "list", "employees")
	var redirect *RedirectError
	require.ErrorAs(t, err, &redirect)
	assert.Equal(t, domain.RouteLogin, redirect.Target)

	require.NoError(t, h.run(t, "login", "emp@example.com"))

	err = h.run(t, "list", "employees")
	require.ErrorAs(t, err, &redirect)
	assert.Equal(t, domain.RouteDashboard, redirect.Target)
	assert.Equal(t, "access to /employees denied for your role", err.Error())
	assert.False(t, h.called("GET /employees"))

	err = h.run(t, "reports")
	require.ErrorAs(t, err, &redirect)

	require.NoError(t, h.run(t, "list", "attendance", "--date", "2024-06-01"))
	assert.True(t, h.called("GET /attendance?date=2024-06-01"))
	assert.Contains(t, h.out.String(), "Cy Rivera")
	assert.Contains(t, h.out.String(), "Late")
}

func TestOpen(t *testing.T) {
	h := newHarness(t, domain.RoleHRManager)
	require.NoError(t, h.run(t, "login", "hr@example.com"))

	require.NoError(t, h.run(t, "open", "employees"))
	assert.Equal(t, "/employees\n", h.out.String())

	err := h.run(t, "open", "/reports")
	assert.Error(t, err)
	assert.Equal(t, "/dashboard\n", h.out.String())

	require.NoError(t, h.run(t, "open", "/"))
	assert.Equal(t, "/dashboard\n", h.out.String())
	assert.Equal(t, domain.RouteDashboard, h.env.Container.Navigator.Current())
}

func TestApproveAndReject(t *testing.T) {
	h := newHarness(t, domain.RoleHRManager)
	require.NoError(t, h.run(t, "login", "hr@example.com"))

	require.NoError(t, h.run(t, "approve", "leave", "l1"))
	assert.Equal(t, "Approved leave l1\n", h.out.String())
	assert.True(t, h.called("PUT /leave/l1/approve"))

	require.NoError(t, h.run(t, "reject", "missions", "m9"))
	assert.True(t, h.called("PUT /missions/m9/reject"))

	assert.ErrorIs(t, h.run(t, "approve", "payroll", "1"), ErrUsage)
	assert.ErrorIs(t, h.run(t, "approve", "leave"), ErrUsage)
}

func TestReportsAndDashboard(t *testing.T) {
	h := newHarness(t, domain.RoleGeneralManager)
	require.NoError(t, h.run(t, "login", "gm@example.com"))

	require.NoError(t, h.run(t, "reports", "--period", "year"))
	out := h.out.String()
	assert.Contains(t, out, "Engineering")
	assert.Contains(t, out, "90.0%")

	h.env.JSON = true
	require.NoError(t, h.run(t, "dashboard"))
	var view map[string]any
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &view))
	assert.Equal(t, "week", view["period"])
	assert.True(t, h.called("GET /dashboard/attendance?period=week"))
}

func TestRejectedSessionIsReported(t *testing.T) {
	h := newHarness(t, domain.RoleGeneralManager)
	require.NoError(t, h.run(t, "login", "gm@example.com"))

	h.mu.Lock()
	h.reject = true
	h.mu.Unlock()

	err := h.run(t, "list", "policies")
	assert.True(t, errors.Is(err, ErrSessionRejected))
	assert.Zero(t, h.store.Len())
	assert.Equal(t, domain.RouteLogin, h.env.Container.Navigator.Current())

	err = h.run(t, "whoami")
	var redirect *RedirectError
	assert.ErrorAs(t, err, &redirect)
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t, domain.RoleEmployee)
	assert.ErrorIs(t, h.run(t, "payroll"), ErrUsage)
	assert.ErrorIs(t, h.run(t), ErrUsage)
	assert.NoError(t, h.run(t, "help"))
}
