package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/peopleops/hr-console/internal/api/dto"
	"github.com/peopleops/hr-console/internal/auth"
	"github.com/peopleops/hr-console/internal/domain"
)

// SessionService is the part of the session manager the console drives.
type SessionService interface {
	Login(ctx context.Context, username, password string) (auth.Snapshot, error)
	Logout(ctx context.Context) error
	Snapshot(ctx context.Context) auth.Snapshot
}

// SessionHandler serves sign-in, sign-out and the session probe.
type SessionHandler struct {
	session SessionService
	guard   *auth.RouteGuard
	pages   *Pages
	logger  *zap.Logger
}

// NewSessionHandler constructs handler.
func NewSessionHandler(session SessionService, guard *auth.RouteGuard, pages *Pages, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{session: session, guard: guard, pages: pages, logger: logger}
}

type loginPage struct {
	Username string
	Errors   dto.FieldErrors
}

// Root GET / sends the user to the dashboard or the login screen.
func (h *SessionHandler) Root(c *fiber.Ctx) error {
	nav := h.guard.Resolve(c.UserContext(), domain.RouteRoot)
	return c.Redirect(string(nav.Target), http.StatusSeeOther)
}

// ShowLogin GET /login.
func (h *SessionHandler) ShowLogin(c *fiber.Ctx) error {
	return h.pages.Render(c, http.StatusOK, "login", "Sign in", loginPage{})
}

// Login POST /login.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var form dto.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return h.loginFailed(c, http.StatusBadRequest, form, dto.FieldErrors{"general": auth.FallbackLoginMessage})
	}
	form.Normalize()
	if errs := dto.Validate(form); errs != nil {
		return h.loginFailed(c, http.StatusUnprocessableEntity, form, errs)
	}

	creds := form.Credentials()
	_, err := h.session.Login(c.UserContext(), creds.Username, creds.Password)
	if err == nil {
		return c.Redirect(string(domain.RouteDashboard), http.StatusSeeOther)
	}

	var loginErr *auth.LoginError
	switch {
	case errors.Is(err, auth.ErrLoginInProgress):
		return h.loginFailed(c, http.StatusConflict, form, dto.FieldErrors{"general": "A sign-in is already in progress. Please wait."})
	case errors.Is(err, auth.ErrSessionReset):
		return h.loginFailed(c, http.StatusConflict, form, dto.FieldErrors{"general": "Sign-in was interrupted. Please try again."})
	case errors.As(err, &loginErr):
		return h.loginFailed(c, http.StatusUnauthorized, form, dto.FieldErrors{"general": loginErr.Message})
	default:
		h.logger.Error("login", zap.Error(err))
		return h.loginFailed(c, http.StatusInternalServerError, form, dto.FieldErrors{"general": auth.FallbackLoginMessage})
	}
}

func (h *SessionHandler) loginFailed(c *fiber.Ctx, status int, form dto.LoginForm, errs dto.FieldErrors) error {
	return h.pages.Render(c, status, "login", "Sign in", loginPage{Username: form.Username, Errors: errs})
}

// Logout POST /logout.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if err := h.session.Logout(c.UserContext()); err != nil {
		return err
	}
	return c.Redirect(string(domain.RouteLogin), http.StatusSeeOther)
}

// Current GET /api/session reports who is signed in.
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	snap := h.session.Snapshot(c.UserContext())
	resp := fiber.Map{
		"authenticated": snap.Authenticated(),
		"state":         snap.State.String(),
	}
	if snap.Authenticated() {
		resp["identity"] = snap.Identity
		resp["expires_at"] = snap.ExpiresAt
	}
	return c.JSON(fiber.Map{"data": resp})
}
