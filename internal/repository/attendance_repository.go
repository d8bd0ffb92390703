package repository

import (
	"context"
	"net/url"

	"github.com/peopleops/hr-console/internal/domain"
)

// AttendanceFilter narrows the attendance list. The backend accepts one
// filter at a time; Date wins when both are set.
type AttendanceFilter struct {
	Date       string
	EmployeeID string
}

func (f AttendanceFilter) query() url.Values {
	switch {
	case f.Date != "":
		return url.Values{"date": {f.Date}}
	case f.EmployeeID != "":
		return url.Values{"employeeId": {f.EmployeeID}}
	}
	return nil
}

// AttendanceRepository reads attendance and records approval decisions.
type AttendanceRepository interface {
	List(ctx context.Context, filter AttendanceFilter) ([]domain.AttendanceRecord, error)
	Decide(ctx context.Context, id string, d Decision) error
}

type attendanceRepository struct {
	api Backend
}

// NewAttendanceRepository builds the repository.
func NewAttendanceRepository(api Backend) AttendanceRepository {
	return &attendanceRepository{api: api}
}

func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]domain.AttendanceRecord, error) {
	var records []domain.AttendanceRecord
	if err := r.api.Get(ctx, "/attendance", filter.query(), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) Decide(ctx context.Context, id string, d Decision) error {
	return decide(ctx, r.api, "/attendance", id, d)
}
