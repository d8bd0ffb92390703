package domain

// MissionStatus enumerates lifecycle states for missions.
type MissionStatus string

const (
	MissionPending    MissionStatus = "Pending"
	MissionApproved   MissionStatus = "Approved"
	MissionInProgress MissionStatus = "In Progress"
	MissionCompleted  MissionStatus = "Completed"
	MissionCanceled   MissionStatus = "Canceled"
)

// Mission is an off-site assignment.
type Mission struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	AssignedTo     PersonRef     `json:"assignedTo"`
	AssignedBy     PersonRef     `json:"assignedBy"`
	StartDate      string        `json:"startDate"`
	EndDate        *string       `json:"endDate"`
	Location       string        `json:"location"`
	Transportation *string       `json:"transportation"`
	Status         MissionStatus `json:"status"`
	ApprovedBy     *PersonRef    `json:"approvedBy,omitempty"`
	ApprovedAt     string        `json:"approvedAt,omitempty"`
	CompletedAt    string        `json:"completedAt,omitempty"`
	CanceledAt     string        `json:"canceledAt,omitempty"`
	CancelReason   string        `json:"cancelReason,omitempty"`
}
