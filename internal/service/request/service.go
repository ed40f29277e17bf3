package request

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/request"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/mq"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/validator"
)

type RequestServiceImpl struct {
	request.RequestRepository
	directory user.DirectoryService
	publisher mq.Publisher
	now       func() time.Time
	logger    *slog.Logger
}

type Option func(*RequestServiceImpl)

// WithClock overrides the time source used for createdAt and resolution.
func WithClock(now func() time.Time) Option {
	return func(s *RequestServiceImpl) { s.now = now }
}

// WithPublisher sends lifecycle events to p.
func WithPublisher(p mq.Publisher) Option {
	return func(s *RequestServiceImpl) { s.publisher = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *RequestServiceImpl) { s.logger = l }
}

func NewRequestService(requestRepository request.RequestRepository, directory user.DirectoryService, opts ...Option) request.RequestService {
	s := &RequestServiceImpl{
		RequestRepository: requestRepository,
		directory:         directory,
		now:               time.Now,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest implements request.RequestService.
func (s *RequestServiceImpl) CreateRequest(ctx context.Context, req request.CreateRequestRequest) (request.Request, error) {
	if err := req.Validate(); err != nil {
		return request.Request{}, err
	}

	requester, err := s.directory.FindUser(ctx, req.UserID)
	if err != nil {
		return request.Request{}, err
	}

	now := s.now()
	created, err := s.RequestRepository.Create(ctx, request.Request{
		UserID:        requester.ID,
		UserName:      requester.Name,
		Type:          request.RequestType(req.Type),
		Date:          req.Date,
		RequestedTime: strings.TrimSpace(req.RequestedTime),
		Reason:        strings.TrimSpace(req.Reason),
		Status:        request.RequestStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return request.Request{}, err
	}

	s.logger.InfoContext(ctx, "request created",
		slog.String("request_id", created.ID),
		slog.String("user_id", created.UserID),
		slog.String("type", string(created.Type)),
	)
	s.publish(ctx, request.EventRequestCreated, created, now)
	return created, nil
}

// GetRequest implements request.RequestService.
func (s *RequestServiceImpl) GetRequest(ctx context.Context, id string) (request.Request, error) {
	if validator.IsEmpty(id) {
		return request.Request{}, request.ErrRequestNotFound
	}
	return s.RequestRepository.GetByID(ctx, id)
}

// GetRequestsByUser implements request.RequestService.
func (s *RequestServiceImpl) GetRequestsByUser(ctx context.Context, userID string) ([]request.Request, error) {
	requests, err := s.RequestRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	request.SortNewestFirst(requests)
	return requests, nil
}

// GetManagedRequests implements request.RequestService.
func (s *RequestServiceImpl) GetManagedRequests(ctx context.Context, supervisorID string) ([]request.Request, error) {
	reports, err := s.directory.ListDirectReports(ctx, supervisorID)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return []request.Request{}, nil
	}

	userIDs := make([]string, 0, len(reports))
	for _, r := range reports {
		userIDs = append(userIDs, r.ID)
	}

	requests, err := s.RequestRepository.ListByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	request.SortNewestFirst(requests)
	return requests, nil
}

// UpdateRequestStatus implements request.RequestService.
func (s *RequestServiceImpl) UpdateRequestStatus(ctx context.Context, requestID string, status request.RequestStatus, approverID string) (request.Request, error) {
	var errs validator.ValidationErrors
	if !status.IsResolution() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Approved, Rejected",
		})
	}
	if validator.IsEmpty(approverID) {
		errs = append(errs, validator.ValidationError{
			Field:   "approver_id",
			Message: "approver_id is required",
		})
	}
	if len(errs) > 0 {
		return request.Request{}, errs
	}

	now := s.now()
	resolved, err := s.RequestRepository.Resolve(ctx, requestID, status, approverID, now)
	if err != nil {
		return request.Request{}, err
	}

	s.logger.InfoContext(ctx, "request resolved",
		slog.String("request_id", resolved.ID),
		slog.String("status", string(resolved.Status)),
		slog.String("approver_id", approverID),
	)
	s.publish(ctx, request.EventRequestResolved, resolved, now)
	return resolved, nil
}

// publish never fails the calling operation; the request is already stored.
func (s *RequestServiceImpl) publish(ctx context.Context, name string, r request.Request, at time.Time) {
	if s.publisher == nil {
		return
	}
	event := request.Event{
		Name:       name,
		Request:    request.ToResponse(r),
		OccurredAt: at,
	}
	if err := s.publisher.PublishJSON(ctx, name, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish request event",
			slog.String("event", name),
			slog.String("request_id", r.ID),
			slog.Any("error", err),
		)
	}
}
