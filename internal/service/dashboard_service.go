package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/repository"
	apperrors "github.com/peopleops/hr-console/pkg/util"
)

// Dashboard sections, as keys of DashboardView.Errors.
const (
	SectionStats             = "stats"
	SectionAttendance        = "attendance"
	SectionLeaveDistribution = "leave_distribution"
	SectionPendingApprovals  = "pending_approvals"
	SectionRecentActivity    = "recent_activity"
)

// DefaultAttendancePeriod is the chart window when none is chosen.
const DefaultAttendancePeriod = "week"

// DashboardView is everything the dashboard screen shows. Sections that
// failed to load are listed in Errors and left empty.
type DashboardView struct {
	Period            string
	Stats             *domain.DashboardStats
	Attendance        []domain.AttendanceChartPoint
	LeaveDistribution []domain.LeaveDistributionItem
	PendingApprovals  []domain.PendingApproval
	RecentActivity    []domain.RecentActivity
	Errors            map[string]error
}

// Failed reports whether section could not be loaded.
func (v *DashboardView) Failed(section string) bool {
	_, ok := v.Errors[section]
	return ok
}

// DashboardService loads the dashboard aggregates.
type DashboardService struct {
	repo   repository.DashboardRepository
	logger *zap.Logger
}

// NewDashboardService creates the service.
func NewDashboardService(repo repository.DashboardRepository, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, logger: logger}
}

// Load fetches the five aggregates concurrently. A failing section does not
// fail the view, except a rejected session: then there is nothing to show
// and the unauthorized error is returned.
func (s *DashboardService) Load(ctx context.Context, period string) (*DashboardView, error) {
	if period == "" {
		period = DefaultAttendancePeriod
	}
	view := &DashboardView{Period: period, Errors: map[string]error{}}

	var mu sync.Mutex
	record := func(section string, err error) {
		if err == nil {
			return
		}
		s.logger.Warn("dashboard section failed", zap.String("section", section), zap.Error(err))
		mu.Lock()
		view.Errors[section] = err
		mu.Unlock()
	}

	var g errgroup.Group
	g.Go(func() error {
		stats, err := s.repo.Stats(ctx)
		record(SectionStats, err)
		view.Stats = stats
		return nil
	})
	g.Go(func() error {
		points, err := s.repo.AttendanceOverview(ctx, period)
		record(SectionAttendance, err)
		view.Attendance = points
		return nil
	})
	g.Go(func() error {
		items, err := s.repo.LeaveDistribution(ctx)
		record(SectionLeaveDistribution, err)
		view.LeaveDistribution = items
		return nil
	})
	g.Go(func() error {
		approvals, err := s.repo.PendingApprovals(ctx)
		record(SectionPendingApprovals, err)
		view.PendingApprovals = approvals
		return nil
	})
	g.Go(func() error {
		activity, err := s.repo.RecentActivity(ctx)
		record(SectionRecentActivity, err)
		view.RecentActivity = activity
		return nil
	})
	_ = g.Wait()

	for _, err := range view.Errors {
		if apperrors.IsUnauthorized(err) {
			return nil, err
		}
	}
	return view, nil
}
