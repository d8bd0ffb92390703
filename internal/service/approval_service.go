package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/repository"
	apperrors "github.com/peopleops/hr-console/pkg/util"
)

// ApprovalKind names a record type that goes through approval.
type ApprovalKind string

const (
	ApprovalAttendance ApprovalKind = "attendance"
	ApprovalLeave      ApprovalKind = "leave"
	ApprovalMissions   ApprovalKind = "missions"
)

// Route returns the console screen that owns the kind.
func (k ApprovalKind) Route() domain.Route {
	switch k {
	case ApprovalAttendance:
		return domain.RouteAttendance
	case ApprovalLeave:
		return domain.RouteLeaveManagement
	default:
		return domain.RouteMissions
	}
}

// ParseApprovalKind accepts the resource names used by routes and the CLI.
func ParseApprovalKind(s string) (ApprovalKind, bool) {
	switch ApprovalKind(s) {
	case ApprovalAttendance, ApprovalLeave, ApprovalMissions:
		return ApprovalKind(s), true
	}
	return "", false
}

// Decider records approval decisions for one record type. The attendance,
// leave and mission repositories implement it.
type Decider interface {
	Decide(ctx context.Context, id string, d repository.Decision) error
}

// ApprovalService routes approve/reject decisions to the right repository.
type ApprovalService struct {
	deciders map[ApprovalKind]Decider
	logger   *zap.Logger
}

// NewApprovalService creates the service.
func NewApprovalService(attendance, leave, missions Decider, logger *zap.Logger) *ApprovalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApprovalService{
		deciders: map[ApprovalKind]Decider{
			ApprovalAttendance: attendance,
			ApprovalLeave:      leave,
			ApprovalMissions:   missions,
		},
		logger: logger,
	}
}

// Decide approves or rejects the record id of the given kind.
func (s *ApprovalService) Decide(ctx context.Context, kind ApprovalKind, id string, d repository.Decision) error {
	target, ok := s.deciders[kind]
	if !ok {
		return apperrors.NewValidationError(fmt.Sprintf("unknown record type %q", kind), nil)
	}
	if id == "" {
		return apperrors.NewValidationError("record id is required", nil)
	}
	if err := target.Decide(ctx, id, d); err != nil {
		return err
	}
	s.logger.Info("approval recorded", zap.String("kind", string(kind)), zap.String("id", id), zap.String("decision", string(d)))
	return nil
}
