package user

import (
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)

	GetByID(ctx context.Context, id string) (User, error)

	GetByEmail(ctx context.Context, email string) (User, error)

	// GetByEmployeeCode resolves the human-facing code used in report filters.
	GetByEmployeeCode(ctx context.Context, employeeCode string) (User, error)

	// List retrieves all users, ordered by name.
	List(ctx context.Context) ([]User, error)

	// CountByRole counts users carrying the given role.
	CountByRole(ctx context.Context, role Role) (int64, error)
}
