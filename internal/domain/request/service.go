package request

import (
	"context"
)

// RequestService is the request workbench.
type RequestService interface {
	// CreateRequest files a new pending request for req.UserID
	CreateRequest(ctx context.Context, req CreateRequestRequest) (Request, error)

	// GetRequest retrieves a single request by ID
	GetRequest(ctx context.Context, id string) (Request, error)

	// GetRequestsByUser retrieves the user's own requests
	GetRequestsByUser(ctx context.Context, userID string) ([]Request, error)

	// GetManagedRequests retrieves requests filed by the supervisor's direct reports
	GetManagedRequests(ctx context.Context, supervisorID string) ([]Request, error)

	// UpdateRequestStatus approves or rejects a pending request
	UpdateRequestStatus(ctx context.Context, requestID string, status RequestStatus, approverID string) (Request, error)
}
