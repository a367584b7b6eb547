package domain

import "time"

// Role classifies what a user is allowed to do. The set is closed: a user
// holds exactly one role, assigned at account creation and immutable after.
type Role string

const (
	RoleGuest           Role = "guest"
	RoleCustomer        Role = "customer"
	RoleAssessmentStaff Role = "assessment_staff"
	RoleConsultant      Role = "consultant"
	RoleManager         Role = "manager"
	RoleAdmin           Role = "admin"
)

// StaffRoles are the internal roles with access to the assessment workflow.
var StaffRoles = []Role{RoleAssessmentStaff, RoleConsultant, RoleManager, RoleAdmin}

// ValidRole reports whether r is a member of the closed role enumeration.
func ValidRole(r Role) bool {
	switch r {
	case RoleGuest, RoleCustomer, RoleAssessmentStaff, RoleConsultant, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role belongs to internal personnel.
func (r Role) IsStaff() bool {
	for _, s := range StaffRoles {
		if r == s {
			return true
		}
	}
	return false
}

// User models an authenticated actor in the portal.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
