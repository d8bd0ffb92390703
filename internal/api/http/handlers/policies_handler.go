package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/peopleops/hr-console/internal/api/dto"
	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/repository"
	apperrors "github.com/peopleops/hr-console/pkg/util"
)

// PoliciesHandler serves HR policy configuration.
type PoliciesHandler struct {
	repo  repository.PolicyRepository
	pages *Pages
}

// NewPoliciesHandler constructs handler.
func NewPoliciesHandler(repo repository.PolicyRepository, pages *Pages) *PoliciesHandler {
	return &PoliciesHandler{repo: repo, pages: pages}
}

type policiesPage struct {
	Policies   []domain.Policy
	Categories []domain.PolicyCategory
}

// List GET /policies.
func (h *PoliciesHandler) List(c *fiber.Ctx) error {
	policies, err := h.repo.List(c.UserContext())
	if err != nil {
		return err
	}
	return h.pages.Render(c, http.StatusOK, "policies", "Policies", policiesPage{
		Policies: policies,
		Categories: []domain.PolicyCategory{
			domain.PolicyOvertime, domain.PolicyVacation, domain.PolicyDeduction,
			domain.PolicyBonus, domain.PolicyOther,
		},
	})
}

// Create POST /policies.
func (h *PoliciesHandler) Create(c *fiber.Ctx) error {
	form, errMsg, err := h.parse(c)
	if err != nil || errMsg != "" {
		return h.rejectForm(c, errMsg, err)
	}
	policy := form.Policy("")
	err = h.repo.Create(c.UserContext(), policy)
	return afterMutation(c, domain.RoutePolicies, "Policy "+policy.Name+" created", err)
}

// Update POST /policies/:id.
func (h *PoliciesHandler) Update(c *fiber.Ctx) error {
	form, errMsg, err := h.parse(c)
	if err != nil || errMsg != "" {
		return h.rejectForm(c, errMsg, err)
	}
	err = h.repo.Update(c.UserContext(), form.Policy(c.Params("id")))
	return afterMutation(c, domain.RoutePolicies, "Policy updated", err)
}

// Delete POST /policies/:id/delete.
func (h *PoliciesHandler) Delete(c *fiber.Ctx) error {
	err := h.repo.Delete(c.UserContext(), c.Params("id"))
	return afterMutation(c, domain.RoutePolicies, "Policy deleted", err)
}

func (h *PoliciesHandler) parse(c *fiber.Ctx) (dto.PolicyForm, string, error) {
	var form dto.PolicyForm
	if err := c.BodyParser(&form); err != nil {
		return form, "", apperrors.NewValidationError("invalid form", nil)
	}
	return form, dto.Validate(form).First(), nil
}

func (h *PoliciesHandler) rejectForm(c *fiber.Ctx, msg string, err error) error {
	if err != nil {
		return afterMutation(c, domain.RoutePolicies, "", err)
	}
	return redirectWith(c, domain.RoutePolicies, "error", msg)
}
