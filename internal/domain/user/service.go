package user

import "context"

// DirectoryService resolves users and reporting lines.
type DirectoryService interface {
	// FindUser returns the user with the given id or ErrUserNotFound.
	FindUser(ctx context.Context, id string) (User, error)

	// ListDirectReports returns every user whose supervisor is supervisorID,
	// ordered by name. Unknown supervisors yield an empty list.
	ListDirectReports(ctx context.Context, supervisorID string) ([]User, error)

	// Index returns the users with the given ids keyed by id. Unknown ids are
	// simply absent from the map.
	Index(ctx context.Context, ids []string) (map[string]User, error)
}
