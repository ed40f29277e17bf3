package request

import (
	"context"
	"time"
)

// RequestRepository defines data access for requests.
type RequestRepository interface {
	Create(ctx context.Context, newRequest Request) (Request, error)

	// GetByID returns ErrRequestNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (Request, error)

	// ListByUser returns the user's requests, newest first, ties broken by id.
	ListByUser(ctx context.Context, userID string) ([]Request, error)

	// ListByUserIDs returns requests filed by any of the users, newest first.
	ListByUserIDs(ctx context.Context, userIDs []string) ([]Request, error)

	// Resolve moves a pending request to status in one atomic step. Returns
	// ErrRequestNotFound or ErrAlreadyResolved when the precondition fails.
	Resolve(ctx context.Context, id string, status RequestStatus, approverID string, at time.Time) (Request, error)
}
