package service

import (
	"context"

	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/repository"
)

// ReportView is the reports screen data with the headline figures.
type ReportView struct {
	Period            domain.ReportPeriod
	Data              *domain.ReportData
	TotalEmployees    int
	AverageSalary     float64
	OvertimeHours     float64
	LeaveDaysTaken    int
	AttendanceRate    float64
	LargestDepartment string
}

// ReportService builds report views.
type ReportService struct {
	repo repository.ReportRepository
}

// NewReportService creates the service.
func NewReportService(repo repository.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

// Load fetches the report for period and computes the summary figures.
func (s *ReportService) Load(ctx context.Context, period domain.ReportPeriod) (*ReportView, error) {
	data, err := s.repo.Get(ctx, period)
	if err != nil {
		return nil, err
	}
	return Summarize(period, data), nil
}

// Summarize derives the headline figures from report data.
func Summarize(period domain.ReportPeriod, data *domain.ReportData) *ReportView {
	view := &ReportView{Period: period, Data: data}
	if data == nil {
		view.Data = &domain.ReportData{}
		return view
	}

	largest := -1
	for _, d := range data.DepartmentData {
		view.TotalEmployees += d.Employees
		if d.Employees > largest {
			largest = d.Employees
			view.LargestDepartment = d.Name
		}
	}

	if len(data.SalaryData) > 0 {
		var sum float64
		for _, band := range data.SalaryData {
			sum += band.Average
		}
		view.AverageSalary = sum / float64(len(data.SalaryData))
	}

	for _, m := range data.OvertimeData {
		view.OvertimeHours += m.Total()
	}
	for _, m := range data.LeaveData {
		view.LeaveDaysTaken += m.Annual + m.Sick + m.Personal + m.Other
	}

	var onTime, total int
	for _, m := range data.AttendanceData {
		onTime += m.OnTime
		total += m.OnTime + m.Late + m.Absent
	}
	if total > 0 {
		view.AttendanceRate = float64(onTime) / float64(total) * 100
	}
	return view
}
