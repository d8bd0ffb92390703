package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops/hr-console/internal/config"
	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/events"
	"github.com/peopleops/hr-console/internal/observability"
	"github.com/peopleops/hr-console/internal/tokenstore"
	apperrors "github.com/peopleops/hr-console/pkg/util"
)

type seen struct {
	mu       sync.Mutex
	requests []*http.Request
	bodies   []map[string]any
}

func (s *seen) last() (*http.Request, map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[len(s.requests)-1], s.bodies[len(s.bodies)-1]
}

func newBackend(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *seen) {
	t.Helper()
	s := &seen{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.mu.Lock()
		s.requests = append(s.requests, r)
		s.bodies = append(s.bodies, body)
		s.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newClient(t *testing.T, baseURL string, store tokenstore.Store, dispatcher events.Dispatcher) (*Client, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetrics()
	cfg := config.APIConfig{BaseURL: baseURL + "/api/", LoginPath: "/Authentication/Login", Timeout: 5 * time.Second}
	return New(cfg, store, dispatcher, metrics, nil), metrics
}

func TestAttachesBearerAndRequestID(t *testing.T) {
	srv, s := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"id": "1", "name": "Ana"}})
	})
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), tokenstore.Record{Token: "tok-123", Identity: domain.Identity{ID: "1", Role: domain.RoleEmployee}}))
	client, metrics := newClient(t, srv.URL, store, nil)

	var out []domain.Employee
	require.NoError(t, client.Get(context.Background(), "/employees", url.Values{"department": {"IT"}}, &out))

	req, _ := s.last()
	assert.Equal(t, "/api/employees", req.URL.Path)
	assert.Equal(t, "IT", req.URL.Query().Get("department"))
	assert.Equal(t, "Bearer tok-123", req.Header.Get("Authorization"))
	assert.NotEmpty(t, req.Header.Get(observability.HeaderRequestID))
	require.Len(t, out, 1)
	assert.Equal(t, "Ana", out[0].Name)
	assert.Equal(t, int64(1), metrics.Snapshot().Requests["/employees|GET|200"])
}

func TestOmitsBearerWithoutSession(t *testing.T) {
	srv, s := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	client, _ := newClient(t, srv.URL, tokenstore.NewMemoryStore(), nil)

	require.NoError(t, client.Put(context.Background(), "/leave/5/approve", nil, nil))
	req, _ := s.last()
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Equal(t, http.MethodPut, req.Method)
}

func TestUnauthorizedPublishesRejection(t *testing.T) {
	srv, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
	})
	dispatcher := events.NewInMemoryDispatcher()
	var got []events.RequestRejectedPayload
	dispatcher.Subscribe(events.EventRequestRejected, func(_ context.Context, e events.Event) error {
		got = append(got, e.Payload.(events.RequestRejectedPayload))
		return nil
	})
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), tokenstore.Record{Token: "stale", Identity: domain.Identity{ID: "1", Role: domain.RoleEmployee}}))
	client, metrics := newClient(t, srv.URL, store, dispatcher)

	err := client.Delete(context.Background(), Path("/policies", "9"))
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	require.Len(t, got, 1)
	assert.Equal(t, events.RequestRejectedPayload{Method: http.MethodDelete, Path: "/policies/9", Status: http.StatusUnauthorized}, got[0])
	assert.Equal(t, int64(1), metrics.Snapshot().Errors["/policies/9|DELETE|UNAUTHORIZED"])
}

func TestExchangeCredentials(t *testing.T) {
	srv, s := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"token": "abc", "role": "Employee"})
	})
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), tokenstore.Record{Token: "old", Identity: domain.Identity{ID: "1", Role: domain.RoleEmployee}}))
	client, _ := newClient(t, srv.URL, store, nil)

	body, err := client.ExchangeCredentials(context.Background(), domain.Credentials{Username: "a@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "abc", body["token"])

	req, sent := s.last()
	assert.Equal(t, "/api/Authentication/Login", req.URL.Path)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Equal(t, map[string]any{"username": "a@example.com", "password": "pw"}, sent)
}

func TestExchangeCredentialsFailureIsNotBroadcast(t *testing.T) {
	srv, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid username or password"})
	})
	dispatcher := events.NewInMemoryDispatcher()
	published := 0
	dispatcher.Subscribe(events.EventRequestRejected, func(context.Context, events.Event) error {
		published++
		return nil
	})
	client, _ := newClient(t, srv.URL, tokenstore.NewMemoryStore(), dispatcher)

	_, err := client.ExchangeCredentials(context.Background(), domain.Credentials{Username: "a@example.com", Password: "bad"})
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusUnauthorized, de.HTTPStatus)
	assert.Equal(t, "Invalid username or password", de.Details["message"])
	assert.Zero(t, published)
}

func TestUpstreamErrorWithoutMessage(t *testing.T) {
	srv, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	client, _ := newClient(t, srv.URL, nil, nil)

	err := client.Post(context.Background(), "/missions", map[string]string{"title": "x"}, nil)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.Equal(t, "Internal Server Error", de.Message)
	assert.Nil(t, de.Details)
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()
	client, _ := newClient(t, base, nil, nil)

	err := client.Get(context.Background(), "/employees", nil, nil)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "BACKEND_UNAVAILABLE", de.Code)
	assert.Equal(t, http.StatusBadGateway, de.HTTPStatus)
}

func TestCanceledContext(t *testing.T) {
	client, _ := newClient(t, "http://127.0.0.1:1", nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Get(ctx, "/employees", nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "nope", errorMessage([]byte(`{"message":"nope"}`)))
	assert.Equal(t, "One or more validation errors occurred.", errorMessage([]byte(`{"title":"One or more validation errors occurred.","status":400}`)))
	assert.Equal(t, "plain failure", errorMessage([]byte("plain failure\n")))
	assert.Empty(t, errorMessage([]byte("<html>oops</html>")))
	assert.Empty(t, errorMessage(nil))
}

func TestPathEscapesSegments(t *testing.T) {
	assert.Equal(t, "/attendance/a%2Fb/approve", Path("/attendance", "a/b", "approve"))
}
