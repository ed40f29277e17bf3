package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/errs"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const timeEntryColumns = `id, user_id, date::text, clock_in, clock_out, status, created_at, updated_at`

type timeEntryRepositoryImpl struct {
	db *database.DB
}

func scanTimeEntry(row scanner) (attendance.TimeEntry, error) {
	var e attendance.TimeEntry
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Date,
		&e.ClockIn,
		&e.ClockOut,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// GetByUserAndDate implements attendance.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date string) (*attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE user_id = $1 AND date = $2::date`
	e, err := scanTimeEntry(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errs.Storage("get time entry", err)
	}
	return &e, nil
}

// ClockIn implements attendance.TimeEntryRepository. The upsert only touches
// an existing row whose clock_in is still NULL, so a second clock-in returns
// no row.
func (r *timeEntryRepositoryImpl) ClockIn(ctx context.Context, entry attendance.TimeEntry) (attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.Must(uuid.NewV7()).String()
	}
	if entry.Status == "" {
		entry.Status = attendance.EntryStatusNormal
	}

	query := `
		INSERT INTO time_entries (id, user_id, date, clock_in, status, created_at, updated_at)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7)
		ON CONFLICT (user_id, date) DO UPDATE
		SET clock_in = EXCLUDED.clock_in, updated_at = EXCLUDED.updated_at
		WHERE time_entries.clock_in IS NULL
		RETURNING ` + timeEntryColumns

	created, err := scanTimeEntry(q.QueryRow(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Date,
		entry.ClockIn,
		entry.Status,
		entry.CreatedAt,
		entry.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.TimeEntry{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.TimeEntry{}, errs.Storage("clock in", err)
	}
	return created, nil
}

// ClockOut implements attendance.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ClockOut(ctx context.Context, userID string, date string, at time.Time) (attendance.TimeEntry, error) {
	var updated attendance.TimeEntry

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		lockQuery := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE user_id = $1 AND date = $2::date FOR UPDATE`
		current, err := scanTimeEntry(tx.QueryRow(ctx, lockQuery, userID, date))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrNotClockedIn
			}
			return errs.Storage("lock time entry", err)
		}

		if !current.HasClockedIn() {
			return attendance.ErrNotClockedIn
		}
		if current.HasClockedOut() {
			return attendance.ErrAlreadyClockedOut
		}
		if at.Before(*current.ClockIn) {
			return attendance.NewClockOutBeforeClockInError()
		}

		updateQuery := `
			UPDATE time_entries
			SET clock_out = $1, updated_at = $1
			WHERE id = $2
			RETURNING ` + timeEntryColumns
		updated, err = scanTimeEntry(tx.QueryRow(ctx, updateQuery, at, current.ID))
		if err != nil {
			return errs.Storage("clock out", err)
		}
		return nil
	})
	if err != nil {
		return attendance.TimeEntry{}, err
	}
	return updated, nil
}

func (r *timeEntryRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, errs.Storage("list time entries", err)
	}
	defer rows.Close()

	entries := []attendance.TimeEntry{}
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, errs.Storage("list time entries", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage("list time entries", err)
	}
	return entries, nil
}

// ListByUser implements attendance.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]attendance.TimeEntry, error) {
	return r.list(ctx, `SELECT `+timeEntryColumns+` FROM time_entries WHERE user_id = $1 ORDER BY date DESC`, userID)
}

// ListByUserIDs implements attendance.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ListByUserIDs(ctx context.Context, userIDs []string) ([]attendance.TimeEntry, error) {
	if len(userIDs) == 0 {
		return []attendance.TimeEntry{}, nil
	}
	return r.list(ctx, `SELECT `+timeEntryColumns+` FROM time_entries WHERE user_id = ANY($1) ORDER BY date DESC`, userIDs)
}

// ListAll implements attendance.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ListAll(ctx context.Context) ([]attendance.TimeEntry, error) {
	return r.list(ctx, `SELECT `+timeEntryColumns+` FROM time_entries ORDER BY date DESC`)
}

// Seed inserts a complete entry as-is. Used by the seed command only.
func (r *timeEntryRepositoryImpl) Seed(ctx context.Context, entry attendance.TimeEntry) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO time_entries (id, user_id, date, clock_in, clock_out, status, created_at, updated_at)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8)
		ON CONFLICT DO NOTHING`,
		entry.ID,
		entry.UserID,
		entry.Date,
		entry.ClockIn,
		entry.ClockOut,
		entry.Status,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	return errs.Storage("seed time entry", err)
}

type TimeEntryRepository interface {
	attendance.TimeEntryRepository
	Seed(ctx context.Context, entry attendance.TimeEntry) error
}

func NewTimeEntryRepository(db *database.DB) TimeEntryRepository {
	return &timeEntryRepositoryImpl{
		db: db,
	}
}
