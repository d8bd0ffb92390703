package domain

// PolicyCategory groups HR policies.
type PolicyCategory string

const (
	PolicyOvertime  PolicyCategory = "Overtime"
	PolicyVacation  PolicyCategory = "Vacation"
	PolicyDeduction PolicyCategory = "Deduction"
	PolicyBonus     PolicyCategory = "Bonus"
	PolicyOther     PolicyCategory = "Other"
)

// Policy is a configurable HR rule such as an overtime rate.
type Policy struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Category    PolicyCategory `json:"category"`
	Description string         `json:"description"`
	Value       string         `json:"value"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
	CreatedBy   PersonRef      `json:"createdBy"`
	UpdatedBy   *PersonRef     `json:"updatedBy,omitempty"`
}
