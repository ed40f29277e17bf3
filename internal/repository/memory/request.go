package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/errs"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/request"
)

type requestRepository struct {
	store *Store
}

func cloneRequest(r request.Request) request.Request {
	r.ApproverID = clonePtr(r.ApproverID)
	r.ResolvedAt = clonePtr(r.ResolvedAt)
	return r
}

// Create implements request.RequestRepository.
func (r *requestRepository) Create(ctx context.Context, newRequest request.Request) (request.Request, error) {
	if err := ctx.Err(); err != nil {
		return request.Request{}, errs.Storage("create request", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if newRequest.ID == "" {
		newRequest.ID = r.store.newID()
	}
	if _, exists := r.store.requests[newRequest.ID]; exists {
		return request.Request{}, errs.Conflict("request already exists")
	}
	r.store.requests[newRequest.ID] = cloneRequest(newRequest)
	return cloneRequest(newRequest), nil
}

// GetByID implements request.RequestRepository.
func (r *requestRepository) GetByID(ctx context.Context, id string) (request.Request, error) {
	if err := ctx.Err(); err != nil {
		return request.Request{}, errs.Storage("get request", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	req, ok := r.store.requests[id]
	if !ok {
		return request.Request{}, request.ErrRequestNotFound
	}
	return cloneRequest(req), nil
}

func (r *requestRepository) list(match func(request.Request) bool) []request.Request {
	requests := []request.Request{}
	for _, req := range r.store.requests {
		if match(req) {
			requests = append(requests, cloneRequest(req))
		}
	}
	request.SortNewestFirst(requests)
	return requests
}

// ListByUser implements request.RequestRepository.
func (r *requestRepository) ListByUser(ctx context.Context, userID string) ([]request.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Storage("list requests", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.list(func(req request.Request) bool { return req.UserID == userID }), nil
}

// ListByUserIDs implements request.RequestRepository.
func (r *requestRepository) ListByUserIDs(ctx context.Context, userIDs []string) ([]request.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Storage("list requests", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	set := toSet(userIDs)
	return r.list(func(req request.Request) bool {
		_, ok := set[req.UserID]
		return ok
	}), nil
}

// Resolve implements request.RequestRepository.
func (r *requestRepository) Resolve(ctx context.Context, id string, status request.RequestStatus, approverID string, at time.Time) (request.Request, error) {
	if err := ctx.Err(); err != nil {
		return request.Request{}, errs.Storage("resolve request", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	req, ok := r.store.requests[id]
	if !ok {
		return request.Request{}, request.ErrRequestNotFound
	}
	if !req.IsPending() {
		return request.Request{}, request.ErrAlreadyResolved
	}

	req.Status = status
	req.ApproverID = &approverID
	req.ResolvedAt = &at
	req.UpdatedAt = at
	r.store.requests[id] = req
	return cloneRequest(req), nil
}
