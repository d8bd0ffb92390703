package dto

import (
	"strings"
	"time"

	"github.com/peopleops/hr-console/internal/domain"
)

const dateLayout = "2006-01-02"

// LoginForm is the sign-in form.
type LoginForm struct {
	Username string `form:"username" json:"username" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

// Normalize trims the username; the password is sent as typed.
func (f *LoginForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
}

// Credentials converts the form for the session manager.
func (f LoginForm) Credentials() domain.Credentials {
	return domain.Credentials{Username: f.Username, Password: f.Password}
}

// EmployeeForm creates or updates an employee.
type EmployeeForm struct {
	Name        string  `form:"name" validate:"required,max=120"`
	Email       string  `form:"email" validate:"required,email"`
	Phone       string  `form:"phone" validate:"max=40"`
	Position    string  `form:"position" validate:"required"`
	Department  string  `form:"department" validate:"required"`
	Type        string  `form:"type" validate:"required,oneof=Engineer Manager 'Team Leader' Worker"`
	Status      string  `form:"status" validate:"omitempty,oneof=Active 'On Leave' Inactive Terminated"`
	Salary      float64 `form:"salary" validate:"gte=0"`
	JoiningDate string  `form:"joiningDate" validate:"required,datetime=2006-01-02"`
}

// Employee converts the form. A zero salary means "not disclosed".
func (f EmployeeForm) Employee(id string) *domain.Employee {
	emp := &domain.Employee{
		ID:          id,
		Name:        strings.TrimSpace(f.Name),
		Email:       strings.TrimSpace(f.Email),
		Phone:       strings.TrimSpace(f.Phone),
		Position:    strings.TrimSpace(f.Position),
		Department:  strings.TrimSpace(f.Department),
		Type:        domain.EmployeeType(f.Type),
		Status:      domain.EmploymentStatus(f.Status),
		JoiningDate: f.JoiningDate,
	}
	if emp.Status == "" {
		emp.Status = domain.EmploymentActive
	}
	if f.Salary > 0 {
		salary := f.Salary
		emp.Salary = &salary
	}
	return emp
}

// LeaveForm requests time off for the signed-in user.
type LeaveForm struct {
	Type      string `form:"type" validate:"required,oneof=Annual Sick Personal Other"`
	StartDate string `form:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `form:"endDate" validate:"required,datetime=2006-01-02"`
	Reason    string `form:"reason" validate:"required,max=500"`
}

// Check validates the tags and the date order.
func (f LeaveForm) Check() FieldErrors {
	if errs := Validate(f); errs != nil {
		return errs
	}
	if _, err := f.days(); err != nil {
		return FieldErrors{"EndDate": "End date must not be before the start date"}
	}
	return nil
}

// LeaveRequest converts a checked form.
func (f LeaveForm) LeaveRequest(employee domain.PersonRef) *domain.LeaveRequest {
	days, _ := f.days()
	return &domain.LeaveRequest{
		Employee:  employee,
		Type:      domain.LeaveType(f.Type),
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Days:      days,
		Reason:    strings.TrimSpace(f.Reason),
		Status:    domain.LeavePending,
	}
}

// days counts calendar days, both ends included.
func (f LeaveForm) days() (int, error) {
	start, err := time.Parse(dateLayout, f.StartDate)
	if err != nil {
		return 0, err
	}
	end, err := time.Parse(dateLayout, f.EndDate)
	if err != nil {
		return 0, err
	}
	if end.Before(start) {
		return 0, errEndBeforeStart
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// MissionForm assigns a mission to an employee.
type MissionForm struct {
	Title          string `form:"title" validate:"required,max=200"`
	Description    string `form:"description" validate:"max=2000"`
	AssignedTo     string `form:"assignedTo" validate:"required"`
	Location       string `form:"location" validate:"required"`
	StartDate      string `form:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate        string `form:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Transportation string `form:"transportation"`
}

// Check validates the tags and, when an end date is set, the date order.
func (f MissionForm) Check() FieldErrors {
	if errs := Validate(f); errs != nil {
		return errs
	}
	if f.EndDate != "" && f.EndDate < f.StartDate {
		return FieldErrors{"EndDate": "End date must not be before the start date"}
	}
	return nil
}

// Mission converts a checked form.
func (f MissionForm) Mission(assignedBy domain.PersonRef) *domain.Mission {
	m := &domain.Mission{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		AssignedTo:  domain.PersonRef{ID: strings.TrimSpace(f.AssignedTo)},
		AssignedBy:  assignedBy,
		StartDate:   f.StartDate,
		Location:    strings.TrimSpace(f.Location),
		Status:      domain.MissionPending,
	}
	if f.EndDate != "" {
		end := f.EndDate
		m.EndDate = &end
	}
	if t := strings.TrimSpace(f.Transportation); t != "" {
		m.Transportation = &t
	}
	return m
}

// PolicyForm creates or updates a policy.
type PolicyForm struct {
	Name        string `form:"name" validate:"required,max=120"`
	Category    string `form:"category" validate:"required,oneof=Overtime Vacation Deduction Bonus Other"`
	Description string `form:"description" validate:"max=1000"`
	Value       string `form:"value" validate:"required,max=60"`
}

// Policy converts the form.
func (f PolicyForm) Policy(id string) *domain.Policy {
	return &domain.Policy{
		ID:          id,
		Name:        strings.TrimSpace(f.Name),
		Category:    domain.PolicyCategory(f.Category),
		Description: strings.TrimSpace(f.Description),
		Value:       strings.TrimSpace(f.Value),
	}
}
