package domain

// TrendType drives the colour of a stat card's trend line.
type TrendType string

const (
	TrendUp      TrendType = "up"
	TrendDown    TrendType = "down"
	TrendNeutral TrendType = "neutral"
	TrendWarning TrendType = "warning"
)

// Trend is the small comparison line under a stat value.
type Trend struct {
	Type  TrendType `json:"type"`
	Value string    `json:"value"`
}

// Stat is one dashboard card.
type Stat struct {
	Value int   `json:"value"`
	Trend Trend `json:"trend"`
}

// DashboardStats aggregates the four headline cards.
type DashboardStats struct {
	TotalEmployees       Stat `json:"totalEmployees"`
	PendingLeaveRequests Stat `json:"pendingLeaveRequests"`
	TodayAttendance      Stat `json:"todayAttendance"`
	ActiveMissions       Stat `json:"activeMissions"`
}

// AttendanceChartPoint is one day of the attendance overview chart.
type AttendanceChartPoint struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Late    int    `json:"late"`
}

// LeaveDistributionItem is one slice of the leave distribution chart.
type LeaveDistributionItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// PendingApproval is a row of the approvals table.
type PendingApproval struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Employee PersonRef `json:"employee"`
	Date     string    `json:"date"`
	Status   string    `json:"status"`
}

// RecentActivity is an entry of the activity feed.
type RecentActivity struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Time        string `json:"time"`
	Icon        string `json:"icon"`
}
