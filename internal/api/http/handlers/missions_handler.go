package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/peopleops/hr-console/internal/api/dto"
	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/repository"
	apperrors "github.com/peopleops/hr-console/pkg/util"
)

// MissionsHandler serves mission assignments.
type MissionsHandler struct {
	repo  repository.MissionRepository
	pages *Pages
}

// NewMissionsHandler constructs handler.
func NewMissionsHandler(repo repository.MissionRepository, pages *Pages) *MissionsHandler {
	return &MissionsHandler{repo: repo, pages: pages}
}

type missionsPage struct {
	Missions []domain.Mission
}

// List GET /missions.
func (h *MissionsHandler) List(c *fiber.Ctx) error {
	missions, err := h.repo.List(c.UserContext())
	if err != nil {
		return err
	}
	return h.pages.Render(c, http.StatusOK, "missions", "Missions", missionsPage{Missions: missions})
}

// Create POST /missions.
func (h *MissionsHandler) Create(c *fiber.Ctx) error {
	var form dto.MissionForm
	if err := c.BodyParser(&form); err != nil {
		return afterMutation(c, domain.RouteMissions, "", apperrors.NewValidationError("invalid form", nil))
	}
	if errs := form.Check(); errs != nil {
		return redirectWith(c, domain.RouteMissions, "error", errs.First())
	}
	mission := form.Mission(actor(c))
	err := h.repo.Create(c.UserContext(), mission)
	return afterMutation(c, domain.RouteMissions, "Mission "+mission.Title+" created", err)
}
