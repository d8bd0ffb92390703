package repository

import (
	"context"
	"net/url"

	"github.com/peopleops/hr-console/internal/domain"
)

// ReportRepository reads the reports screen data.
type ReportRepository interface {
	Get(ctx context.Context, period domain.ReportPeriod) (*domain.ReportData, error)
}

type reportRepository struct {
	api Backend
}

// NewReportRepository builds the repository.
func NewReportRepository(api Backend) ReportRepository {
	return &reportRepository{api: api}
}

func (r *reportRepository) Get(ctx context.Context, period domain.ReportPeriod) (*domain.ReportData, error) {
	var data domain.ReportData
	if err := r.api.Get(ctx, "/reports", url.Values{"period": {string(period)}}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
