package user

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleGuard      Role = "guard"
	RoleEmployee   Role = "employee"
)

// ValidRoles lists assignable roles.
var ValidRoles = []Role{RoleAdmin, RoleSupervisor, RoleGuard, RoleEmployee}

func (r Role) IsValid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

type User struct {
	ID             string
	OrganizationID string
	Email          string
	PasswordHash   *string
	GoogleID       *string
	FullName       string
	Role           Role
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
