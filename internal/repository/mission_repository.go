package repository

import (
	"context"

	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/gateway"
)

// MissionRepository manages missions.
type MissionRepository interface {
	List(ctx context.Context) ([]domain.Mission, error)
	GetByID(ctx context.Context, id string) (*domain.Mission, error)
	Create(ctx context.Context, m *domain.Mission) error
	Decide(ctx context.Context, id string, d Decision) error
}

type missionRepository struct {
	api Backend
}

// NewMissionRepository builds the repository.
func NewMissionRepository(api Backend) MissionRepository {
	return &missionRepository{api: api}
}

func (r *missionRepository) List(ctx context.Context) ([]domain.Mission, error) {
	var missions []domain.Mission
	if err := r.api.Get(ctx, "/missions", nil, &missions); err != nil {
		return nil, err
	}
	return missions, nil
}

func (r *missionRepository) GetByID(ctx context.Context, id string) (*domain.Mission, error) {
	var m domain.Mission
	if err := r.api.Get(ctx, gateway.Path("/missions", id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *missionRepository) Create(ctx context.Context, m *domain.Mission) error {
	return r.api.Post(ctx, "/missions", m, m)
}

func (r *missionRepository) Decide(ctx context.Context, id string, d Decision) error {
	return decide(ctx, r.api, "/missions", id, d)
}
