package domain

// AttendanceStatus enumerates check-in outcomes.
type AttendanceStatus string

const (
	AttendancePresent         AttendanceStatus = "Present"
	AttendanceAbsent          AttendanceStatus = "Absent"
	AttendanceLate            AttendanceStatus = "Late"
	AttendanceEarlyDeparture  AttendanceStatus = "Early Departure"
	AttendancePendingApproval AttendanceStatus = "Pending Approval"
)

// AttendanceRecord is one employee day.
type AttendanceRecord struct {
	ID         string           `json:"id"`
	Employee   PersonRef        `json:"employee"`
	Date       string           `json:"date"`
	CheckIn    string           `json:"checkIn"`
	CheckOut   *string          `json:"checkOut"`
	Status     AttendanceStatus `json:"status"`
	Notes      string           `json:"notes,omitempty"`
	ApprovedBy *PersonRef       `json:"approvedBy,omitempty"`
	ApprovedAt string           `json:"approvedAt,omitempty"`
}

// Pending reports whether the record awaits a decision.
func (r AttendanceRecord) Pending() bool {
	return r.Status == AttendancePendingApproval
}
