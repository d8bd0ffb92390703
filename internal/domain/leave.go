package domain

// LeaveType enumerates leave categories.
type LeaveType string

const (
	LeaveAnnual   LeaveType = "Annual"
	LeaveSick     LeaveType = "Sick"
	LeavePersonal LeaveType = "Personal"
	LeaveOther    LeaveType = "Other"
)

// LeaveStatus represents the approval state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "Pending"
	LeaveApproved LeaveStatus = "Approved"
	LeaveRejected LeaveStatus = "Rejected"
)

// LeaveRequest is an employee's request for time off.
type LeaveRequest struct {
	ID              string      `json:"id"`
	Employee        PersonRef   `json:"employee"`
	Type            LeaveType   `json:"type"`
	StartDate       string      `json:"startDate"`
	EndDate         string      `json:"endDate"`
	Days            int         `json:"days"`
	Reason          string      `json:"reason"`
	Status          LeaveStatus `json:"status"`
	AppliedOn       string      `json:"appliedOn"`
	ApprovedBy      *PersonRef  `json:"approvedBy,omitempty"`
	ApprovedAt      string      `json:"approvedAt,omitempty"`
	RejectedBy      *PersonRef  `json:"rejectedBy,omitempty"`
	RejectedAt      string      `json:"rejectedAt,omitempty"`
	RejectionReason string      `json:"rejectionReason,omitempty"`
}
