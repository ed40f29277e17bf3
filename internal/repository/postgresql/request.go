package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/errs"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/request"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const requestColumns = `id, user_id, user_name, type, date::text, requested_time, reason, status,
	approver_id, resolved_at, created_at, updated_at`

type requestRepositoryImpl struct {
	db *database.DB
}

func scanRequest(row scanner) (request.Request, error) {
	var r request.Request
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.UserName,
		&r.Type,
		&r.Date,
		&r.RequestedTime,
		&r.Reason,
		&r.Status,
		&r.ApproverID,
		&r.ResolvedAt,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

// Create implements request.RequestRepository.
func (r *requestRepositoryImpl) Create(ctx context.Context, newRequest request.Request) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	if newRequest.ID == "" {
		newRequest.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO requests (id, user_id, user_name, type, date, requested_time, reason, status,
			approver_id, resolved_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + requestColumns

	created, err := scanRequest(q.QueryRow(ctx, query,
		newRequest.ID,
		newRequest.UserID,
		newRequest.UserName,
		newRequest.Type,
		newRequest.Date,
		newRequest.RequestedTime,
		newRequest.Reason,
		newRequest.Status,
		newRequest.ApproverID,
		newRequest.ResolvedAt,
		newRequest.CreatedAt,
		newRequest.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return request.Request{}, errs.Conflict("request already exists")
		}
		return request.Request{}, errs.Storage("create request", err)
	}
	return created, nil
}

// GetByID implements request.RequestRepository.
func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	req, err := scanRequest(q.QueryRow(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, request.ErrRequestNotFound
		}
		return request.Request{}, errs.Storage("get request", err)
	}
	return req, nil
}

func (r *requestRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, errs.Storage("list requests", err)
	}
	defer rows.Close()

	requests := []request.Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, errs.Storage("list requests", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage("list requests", err)
	}
	return requests, nil
}

// ListByUser implements request.RequestRepository.
func (r *requestRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]request.Request, error) {
	return r.list(ctx, `SELECT `+requestColumns+` FROM requests WHERE user_id = $1 ORDER BY created_at DESC, id`, userID)
}

// ListByUserIDs implements request.RequestRepository.
func (r *requestRepositoryImpl) ListByUserIDs(ctx context.Context, userIDs []string) ([]request.Request, error) {
	if len(userIDs) == 0 {
		return []request.Request{}, nil
	}
	return r.list(ctx, `SELECT `+requestColumns+` FROM requests WHERE user_id = ANY($1) ORDER BY created_at DESC, id`, userIDs)
}

// Resolve implements request.RequestRepository.
func (r *requestRepositoryImpl) Resolve(ctx context.Context, id string, status request.RequestStatus, approverID string, at time.Time) (request.Request, error) {
	var resolved request.Request

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		current, err := scanRequest(tx.QueryRow(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return request.ErrRequestNotFound
			}
			return errs.Storage("lock request", err)
		}
		if !current.IsPending() {
			return request.ErrAlreadyResolved
		}

		updateQuery := `
			UPDATE requests
			SET status = $1, approver_id = $2, resolved_at = $3, updated_at = $3
			WHERE id = $4
			RETURNING ` + requestColumns
		resolved, err = scanRequest(tx.QueryRow(ctx, updateQuery, status, approverID, at, id))
		if err != nil {
			return errs.Storage("resolve request", err)
		}
		return nil
	})
	if err != nil {
		return request.Request{}, err
	}
	return resolved, nil
}

func NewRequestRepository(db *database.DB) request.RequestRepository {
	return &requestRepositoryImpl{
		db: db,
	}
}
