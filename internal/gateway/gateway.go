// Package gateway is the single client of the HR backend. It attaches the
// session bearer token to every call and reports rejected sessions on the
// event bus.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peopleops/hr-console/internal/config"
	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/events"
	"github.com/peopleops/hr-console/internal/observability"
	"github.com/peopleops/hr-console/internal/tokenstore"
	apperrors "github.com/peopleops/hr-console/pkg/util"
)

// TokenReader is the read half of the token store.
type TokenReader interface {
	Load(ctx context.Context) (tokenstore.Record, error)
}

// Client performs JSON requests against the HR backend.
type Client struct {
	baseURL    string
	loginPath  string
	timeout    time.Duration
	http       *fiber.Client
	tokens     TokenReader
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// New builds a gateway client from configuration.
func New(cfg config.APIConfig, tokens TokenReader, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		loginPath:  cfg.LoginPath,
		timeout:    timeout,
		http:       &fiber.Client{JSONEncoder: json.Marshal, JSONDecoder: json.Unmarshal},
		tokens:     tokens,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
	}
}

// ExchangeCredentials posts the login form. Failures carry the backend's
// message in Details["message"] when it sent one. A 401 here is a failed
// login, not a rejected session, and is not broadcast.
func (c *Client) ExchangeCredentials(ctx context.Context, creds domain.Credentials) (map[string]any, error) {
	var body map[string]any
	err := c.send(ctx, request{
		method: http.MethodPost,
		path:   c.loginPath,
		body:   map[string]string{"username": creds.Username, "password": creds.Password},
		out:    &body,
		login:  true,
	})
	if err != nil {
		return nil, err
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}

// Get fetches path into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.send(ctx, request{method: http.MethodGet, path: path, query: query, out: out})
}

// Post sends body to path and decodes the answer into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, request{method: http.MethodPost, path: path, body: body, out: out})
}

// Put sends body to path and decodes the answer into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, request{method: http.MethodPut, path: path, body: body, out: out})
}

// Delete removes the resource at path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.send(ctx, request{method: http.MethodDelete, path: path})
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	out    any
	login  bool
}

func (c *Client) send(ctx context.Context, r request) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewUnavailable(err)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	agent := c.agent(r.method, target)
	requestID := uuid.NewString()
	agent.Set(observability.HeaderRequestID, requestID)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	agent.Timeout(c.deadline(ctx))

	if !r.login {
		if token := c.bearer(ctx); token != "" {
			agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
	}
	if r.body != nil {
		agent.JSON(r.body)
	}

	start := time.Now()
	status, payload, errs := agent.Bytes()
	duration := time.Since(start)

	if len(errs) > 0 {
		err := errors.Join(errs...)
		c.metrics.RecordError(r.path, r.method, "BACKEND_UNAVAILABLE")
		c.logger.Warn("backend request failed",
			zap.String("method", r.method), zap.String("path", r.path),
			zap.String("request_id", requestID), zap.Error(err))
		return apperrors.NewUnavailable(err)
	}

	c.metrics.RecordRequest(r.path, r.method, status, duration)
	c.logger.Debug("backend request",
		zap.String("method", r.method), zap.String("path", r.path), zap.Int("status", status),
		zap.Duration("duration", duration), zap.String("request_id", requestID))

	if status < 200 || status > 299 {
		return c.failure(ctx, r, status, payload)
	}

	if r.out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, r.out); err != nil {
		c.metrics.RecordError(r.path, r.method, "DECODE_FAILED")
		return apperrors.NewDomainError("UPSTREAM_ERROR", "unexpected response from backend", http.StatusBadGateway, nil)
	}
	return nil
}

func (c *Client) failure(ctx context.Context, r request, status int, payload []byte) error {
	message := errorMessage(payload)
	err := apperrors.NewUpstreamError(status, message)
	de := apperrors.ToDomainError(err)
	if message != "" {
		de.Details = map[string]any{"message": message}
	}
	c.metrics.RecordError(r.path, r.method, de.Code)

	if status == http.StatusUnauthorized && !r.login {
		c.reject(ctx, r.method, r.path, status)
	}
	return err
}

func (c *Client) reject(ctx context.Context, method, path string, status int) {
	if c.dispatcher == nil {
		return
	}
	event := events.NewEvent(events.EventRequestRejected, events.RequestRejectedPayload{
		Method: method,
		Path:   path,
		Status: status,
	})
	if err := c.dispatcher.Publish(ctx, event); err != nil {
		c.logger.Error("publish rejected request", zap.Error(err))
	}
}

func (c *Client) bearer(ctx context.Context) string {
	if c.tokens == nil {
		return ""
	}
	rec, err := c.tokens.Load(ctx)
	if err != nil {
		if !errors.Is(err, tokenstore.ErrNoSession) {
			c.logger.Debug("no usable session token", zap.Error(err))
		}
		return ""
	}
	return rec.Token
}

// deadline is the configured timeout, shortened by a context deadline.
func (c *Client) deadline(ctx context.Context) time.Duration {
	timeout := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		if remaining := time.Until(dl); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		timeout = time.Millisecond
	}
	return timeout
}

func (c *Client) agent(method, target string) *fiber.Agent {
	switch method {
	case http.MethodPost:
		return c.http.Post(target)
	case http.MethodPut:
		return c.http.Put(target)
	case http.MethodDelete:
		return c.http.Delete(target)
	default:
		return c.http.Get(target)
	}
}

// errorMessage reads "message" (or an ASP.NET problem "title") from an error
// body; plain-text bodies are used as they are.
func errorMessage(payload []byte) string {
	if len(payload) == 0 {
		return ""
	}
	var body map[string]any
	if err := json.Unmarshal(payload, &body); err != nil {
		text := strings.TrimSpace(string(payload))
		if len(text) > 200 || strings.HasPrefix(text, "<") {
			return ""
		}
		return text
	}
	for _, field := range []string{"message", "title"} {
		if s, ok := body[field].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Path joins a resource path with escaped segments.
func Path(resource string, segments ...string) string {
	var b strings.Builder
	b.WriteString(resource)
	for _, s := range segments {
		b.WriteString("/")
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
