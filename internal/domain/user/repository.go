package user

import (
	"context"
)

// UserRepository is the directory's view of the persistence collaborator.
// Lookups of unknown ids return ErrUserNotFound; list operations return an
// empty slice rather than an error.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ListByIDs(ctx context.Context, ids []string) ([]User, error)
	ListDirectReports(ctx context.Context, supervisorID string) ([]User, error)

	// Create is used by seeding only; the directory is read-only at runtime.
	Create(ctx context.Context, newUser User) (User, error)
}
