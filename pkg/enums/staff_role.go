package enums

import "fmt"

// StaffRole represents the permission level of a workshop employee.
type StaffRole string

const (
	StaffRoleAdmin     StaffRole = "admin"
	StaffRoleManager   StaffRole = "gerente"
	StaffRoleReception StaffRole = "recepcao"
	StaffRoleEmployee  StaffRole = "funcionario"
)

var validStaffRoles = []StaffRole{
	StaffRoleAdmin,
	StaffRoleManager,
	StaffRoleReception,
	StaffRoleEmployee,
}

// String implements fmt.Stringer.
func (r StaffRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known StaffRole.
func (r StaffRole) IsValid() bool {
	for _, candidate := range validStaffRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role unlocks the administrative screens.
func (r StaffRole) IsAdmin() bool {
	return r == StaffRoleAdmin
}

// ParseStaffRole converts raw input into a StaffRole.
func ParseStaffRole(value string) (StaffRole, error) {
	for _, candidate := range validStaffRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid staff role %q", value)
}
