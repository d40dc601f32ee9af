package user

import "time"

type Role string

const (
	RoleEmployee Role = "employee" // can record and view own attendance
	RoleManager  Role = "manager"  // can view team attendance and reports
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeCode string
	Department   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsManager checks if user can access team views and reports
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	return s == string(RoleEmployee) || s == string(RoleManager)
}
