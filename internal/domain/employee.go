package domain

// EmployeeType classifies staff.
type EmployeeType string

const (
	EmployeeTypeEngineer   EmployeeType = "Engineer"
	EmployeeTypeManager    EmployeeType = "Manager"
	EmployeeTypeTeamLeader EmployeeType = "Team Leader"
	EmployeeTypeWorker     EmployeeType = "Worker"
)

// EmploymentStatus represents lifecycle states for an employee.
type EmploymentStatus string

const (
	EmploymentActive     EmploymentStatus = "Active"
	EmploymentOnLeave    EmploymentStatus = "On Leave"
	EmploymentInactive   EmploymentStatus = "Inactive"
	EmploymentTerminated EmploymentStatus = "Terminated"
)

// PersonRef is the short form the backend embeds for related people.
type PersonRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
}

// Employee is the HR record of a staff member.
type Employee struct {
	ID                    string           `json:"id"`
	Name                  string           `json:"name"`
	Email                 string           `json:"email"`
	Phone                 string           `json:"phone,omitempty"`
	Position              string           `json:"position"`
	Department            string           `json:"department"`
	Type                  EmployeeType     `json:"type"`
	Status                EmploymentStatus `json:"status"`
	Salary                *float64         `json:"salary,omitempty"`
	JoiningDate           string           `json:"joiningDate"`
	Manager               *PersonRef       `json:"manager,omitempty"`
	TeamLeader            *PersonRef       `json:"teamLeader,omitempty"`
	RemainingVacationDays *int             `json:"remainingVacationDays,omitempty"`
}
