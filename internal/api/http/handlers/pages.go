package handlers

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/peopleops/hr-console/internal/auth"
	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/observability"
	"github.com/peopleops/hr-console/internal/view"
	apperrors "github.com/peopleops/hr-console/pkg/util"
)

// Pages renders console screens inside the shared layout.
type Pages struct {
	engine  *view.Engine
	appName string
	policy  *auth.AccessPolicy
	logger  *zap.Logger
}

// NewPages constructs the renderer.
func NewPages(engine *view.Engine, appName string, policy *auth.AccessPolicy, logger *zap.Logger) *Pages {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pages{engine: engine, appName: appName, policy: policy, logger: logger}
}

// Render writes page with the given status.
func (p *Pages) Render(c *fiber.Ctx, status int, page, title string, data any) error {
	identity, _ := auth.IdentityFromContext(c)
	td := view.TemplateData{
		Title:       title,
		AppName:     p.appName,
		CurrentPath: c.Path(),
		RequestID:   observability.RequestIDFromContext(c),
		Identity:    identity,
		Nav:         p.nav(c.Path(), identity),
		Flash:       flashFromQuery(c),
		Data:        data,
	}

	var buf bytes.Buffer
	if err := p.engine.Render(&buf, page, td); err != nil {
		p.logger.Error("render page", zap.String("page", page), zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

// Error renders the error screen. It is used by the error middleware, so it
// never returns a render error of its own.
func (p *Pages) Error(c *fiber.Ctx, status int, message string) {
	err := p.Render(c, status, "error", http.StatusText(status), errorPage{Status: status, Message: message})
	if err != nil {
		c.Type("text", "utf-8")
		_ = c.Status(status).SendString(message)
	}
}

func (p *Pages) nav(current string, identity *domain.Identity) []view.NavItem {
	if identity == nil || p.policy == nil {
		return nil
	}
	rules := p.policy.Visible(identity)
	items := make([]view.NavItem, 0, len(rules))
	for _, rule := range rules {
		items = append(items, view.NavItem{
			Route:  rule.Route,
			Title:  rule.Title,
			Active: current == string(rule.Route) || strings.HasPrefix(current, string(rule.Route)+"/"),
		})
	}
	return items
}

type errorPage struct {
	Status  int
	Message string
}

func flashFromQuery(c *fiber.Ctx) *view.Flash {
	if msg := c.Query("error"); msg != "" {
		return &view.Flash{Kind: "error", Message: msg}
	}
	if msg := c.Query("notice"); msg != "" {
		return &view.Flash{Kind: "success", Message: msg}
	}
	return nil
}

// afterMutation redirects back to the screen with a notice, or with the
// error message. An unauthorized error is returned so the error middleware
// can send the user to the login screen.
func afterMutation(c *fiber.Ctx, route domain.Route, notice string, err error) error {
	if err == nil {
		return redirectWith(c, route, "notice", notice)
	}
	if apperrors.IsUnauthorized(err) {
		return err
	}
	de := apperrors.ToDomainError(err)
	if de.HTTPStatus >= http.StatusInternalServerError && de.Code == "INTERNAL_ERROR" {
		return err
	}
	return redirectWith(c, route, "error", de.Message)
}

func redirectWith(c *fiber.Ctx, route domain.Route, key, message string) error {
	target := string(route)
	if message != "" {
		target += "?" + url.Values{key: {message}}.Encode()
	}
	return c.Redirect(target, http.StatusSeeOther)
}

// actor is the signed-in user as a person reference for new records.
func actor(c *fiber.Ctx) domain.PersonRef {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return domain.PersonRef{}
	}
	return domain.PersonRef{ID: identity.ID, Name: identity.Name}
}
