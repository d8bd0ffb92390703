package repository

import (
	"context"

	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/gateway"
)

// EmployeeRepository manages employee records.
type EmployeeRepository interface {
	List(ctx context.Context) ([]domain.Employee, error)
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id string) error
}

type employeeRepository struct {
	api Backend
}

// NewEmployeeRepository builds the repository.
func NewEmployeeRepository(api Backend) EmployeeRepository {
	return &employeeRepository{api: api}
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	if err := r.api.Get(ctx, "/employees", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	var emp domain.Employee
	if err := r.api.Get(ctx, gateway.Path("/employees", id), nil, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

// Create posts emp and refreshes it with the stored record.
func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	return r.api.Post(ctx, "/employees", emp, emp)
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	return r.api.Put(ctx, gateway.Path("/employees", emp.ID), emp, emp)
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	return r.api.Delete(ctx, gateway.Path("/employees", id))
}
