package domain

// ReportPeriod selects the window of the reports screen.
type ReportPeriod string

const (
	ReportMonth   ReportPeriod = "month"
	ReportQuarter ReportPeriod = "quarter"
	ReportYear    ReportPeriod = "year"
)

// ParseReportPeriod maps user input to a period, defaulting to a quarter.
func ParseReportPeriod(s string) ReportPeriod {
	switch ReportPeriod(s) {
	case ReportMonth, ReportYear:
		return ReportPeriod(s)
	default:
		return ReportQuarter
	}
}

type DepartmentHeadcount struct {
	Name      string `json:"name"`
	Employees int    `json:"employees"`
	Color     string `json:"color"`
}

type SalaryBand struct {
	Department string  `json:"department"`
	Min        float64 `json:"min"`
	Average    float64 `json:"average"`
	Max        float64 `json:"max"`
}

type MonthlyAttendance struct {
	Month  string `json:"month"`
	OnTime int    `json:"onTime"`
	Late   int    `json:"late"`
	Absent int    `json:"absent"`
}

type MonthlyLeave struct {
	Month    string `json:"month"`
	Annual   int    `json:"annual"`
	Sick     int    `json:"sick"`
	Personal int    `json:"personal"`
	Other    int    `json:"other"`
}

type MonthlyOvertime struct {
	Month       string  `json:"month"`
	Engineering float64 `json:"engineering"`
	Production  float64 `json:"production"`
	HR          float64 `json:"hr"`
	Sales       float64 `json:"sales"`
	Other       float64 `json:"other"`
}

// Total sums overtime hours across departments.
func (m MonthlyOvertime) Total() float64 {
	return m.Engineering + m.Production + m.HR + m.Sales + m.Other
}

// ReportData feeds the reports screen.
type ReportData struct {
	DepartmentData []DepartmentHeadcount `json:"departmentData"`
	SalaryData     []SalaryBand          `json:"salaryData"`
	AttendanceData []MonthlyAttendance   `json:"attendanceData"`
	LeaveData      []MonthlyLeave        `json:"leaveData"`
	OvertimeData   []MonthlyOvertime     `json:"overtimeData"`
}
