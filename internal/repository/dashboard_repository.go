package repository

import (
	"context"
	"net/url"

	"github.com/peopleops/hr-console/internal/domain"
)

// DashboardRepository reads the dashboard aggregates.
type DashboardRepository interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
	AttendanceOverview(ctx context.Context, period string) ([]domain.AttendanceChartPoint, error)
	LeaveDistribution(ctx context.Context) ([]domain.LeaveDistributionItem, error)
	PendingApprovals(ctx context.Context) ([]domain.PendingApproval, error)
	RecentActivity(ctx context.Context) ([]domain.RecentActivity, error)
}

type dashboardRepository struct {
	api Backend
}

// NewDashboardRepository builds the repository.
func NewDashboardRepository(api Backend) DashboardRepository {
	return &dashboardRepository{api: api}
}

func (r *dashboardRepository) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := r.api.Get(ctx, "/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *dashboardRepository) AttendanceOverview(ctx context.Context, period string) ([]domain.AttendanceChartPoint, error) {
	var points []domain.AttendanceChartPoint
	if err := r.api.Get(ctx, "/dashboard/attendance", url.Values{"period": {period}}, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (r *dashboardRepository) LeaveDistribution(ctx context.Context) ([]domain.LeaveDistributionItem, error) {
	var items []domain.LeaveDistributionItem
	if err := r.api.Get(ctx, "/dashboard/leave-distribution", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *dashboardRepository) PendingApprovals(ctx context.Context) ([]domain.PendingApproval, error) {
	var approvals []domain.PendingApproval
	if err := r.api.Get(ctx, "/dashboard/pending-approvals", nil, &approvals); err != nil {
		return nil, err
	}
	return approvals, nil
}

func (r *dashboardRepository) RecentActivity(ctx context.Context) ([]domain.RecentActivity, error) {
	var activity []domain.RecentActivity
	if err := r.api.Get(ctx, "/dashboard/recent-activity", nil, &activity); err != nil {
		return nil, err
	}
	return activity, nil
}
