package user

// ProfileResponse is the public shape of a user, returned by auth endpoints
// and embedded in report rows.
type ProfileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	EmployeeCode string `json:"employee_code"`
	Department   string `json:"department,omitempty"`
}

// ToProfile maps a User entity to its public response shape.
func ToProfile(u User) ProfileResponse {
	return ProfileResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		EmployeeCode: u.EmployeeCode,
		Department:   u.Department,
	}
}
