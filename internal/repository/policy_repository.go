package repository

import (
	"context"

	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/gateway"
)

// PolicyRepository manages HR policies.
type PolicyRepository interface {
	List(ctx context.Context) ([]domain.Policy, error)
	GetByID(ctx context.Context, id string) (*domain.Policy, error)
	Create(ctx context.Context, p *domain.Policy) error
	Update(ctx context.Context, p *domain.Policy) error
	Delete(ctx context.Context, id string) error
}

type policyRepository struct {
	api Backend
}

// NewPolicyRepository builds the repository.
func NewPolicyRepository(api Backend) PolicyRepository {
	return &policyRepository{api: api}
}

func (r *policyRepository) List(ctx context.Context) ([]domain.Policy, error) {
	var policies []domain.Policy
	if err := r.api.Get(ctx, "/policies", nil, &policies); err != nil {
		return nil, err
	}
	return policies, nil
}

func (r *policyRepository) GetByID(ctx context.Context, id string) (*domain.Policy, error) {
	var p domain.Policy
	if err := r.api.Get(ctx, gateway.Path("/policies", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *policyRepository) Create(ctx context.Context, p *domain.Policy) error {
	return r.api.Post(ctx, "/policies", p, p)
}

func (r *policyRepository) Update(ctx context.Context, p *domain.Policy) error {
	return r.api.Put(ctx, gateway.Path("/policies", p.ID), p, p)
}

func (r *policyRepository) Delete(ctx context.Context, id string) error {
	return r.api.Delete(ctx, gateway.Path("/policies", id))
}
