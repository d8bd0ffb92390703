package repository

import (
	"context"

	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/gateway"
)

// LeaveRepository manages leave requests.
type LeaveRepository interface {
	List(ctx context.Context) ([]domain.LeaveRequest, error)
	GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error)
	Create(ctx context.Context, req *domain.LeaveRequest) error
	Decide(ctx context.Context, id string, d Decision) error
}

type leaveRepository struct {
	api Backend
}

// NewLeaveRepository builds the repository.
func NewLeaveRepository(api Backend) LeaveRepository {
	return &leaveRepository{api: api}
}

func (r *leaveRepository) List(ctx context.Context) ([]domain.LeaveRequest, error) {
	var requests []domain.LeaveRequest
	if err := r.api.Get(ctx, "/leave", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	var req domain.LeaveRequest
	if err := r.api.Get(ctx, gateway.Path("/leave", id), nil, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *leaveRepository) Create(ctx context.Context, req *domain.LeaveRequest) error {
	return r.api.Post(ctx, "/leave", req, req)
}

func (r *leaveRepository) Decide(ctx context.Context, id string, d Decision) error {
	return decide(ctx, r.api, "/leave", id, d)
}
