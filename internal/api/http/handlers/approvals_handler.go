package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/peopleops/hr-console/internal/repository"
	"github.com/peopleops/hr-console/internal/service"
	apperrors "github.com/peopleops/hr-console/pkg/util"
)

// ApprovalsHandler approves or rejects attendance, leave and missions.
type ApprovalsHandler struct {
	service *service.ApprovalService
}

// NewApprovalsHandler constructs handler.
func NewApprovalsHandler(approvals *service.ApprovalService) *ApprovalsHandler {
	return &ApprovalsHandler{service: approvals}
}

// Decide returns the handler for POST /<kind route>/:id/:decision.
func (h *ApprovalsHandler) Decide(kind service.ApprovalKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision, ok := repository.ParseDecision(c.Params("decision"))
		if !ok {
			return apperrors.NewNotFound("action", map[string]any{"decision": c.Params("decision")})
		}
		err := h.service.Decide(c.UserContext(), kind, c.Params("id"), decision)
		notice := "Request approved"
		if decision == repository.Reject {
			notice = "Request rejected"
		}
		return afterMutation(c, kind.Route(), notice, err)
	}
}
