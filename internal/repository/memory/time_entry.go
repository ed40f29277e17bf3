package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/errs"
)

type timeEntryRepository struct {
	store *Store
}

func cloneEntry(e attendance.TimeEntry) attendance.TimeEntry {
	e.ClockIn = clonePtr(e.ClockIn)
	e.ClockOut = clonePtr(e.ClockOut)
	return e
}

// GetByUserAndDate implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) GetByUserAndDate(ctx context.Context, userID string, date string) (*attendance.TimeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Storage("get time entry", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e, ok := r.store.entries[entryKey{userID, date}]
	if !ok {
		return nil, nil
	}
	e = cloneEntry(e)
	return &e, nil
}

// ClockIn implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) ClockIn(ctx context.Context, entry attendance.TimeEntry) (attendance.TimeEntry, error) {
	if err := ctx.Err(); err != nil {
		return attendance.TimeEntry{}, errs.Storage("clock in", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := entryKey{entry.UserID, entry.Date}
	existing, ok := r.store.entries[key]
	if ok {
		if existing.HasClockedIn() {
			return attendance.TimeEntry{}, attendance.ErrAlreadyClockedIn
		}
		existing.ClockIn = clonePtr(entry.ClockIn)
		existing.UpdatedAt = entry.UpdatedAt
		r.store.entries[key] = existing
		return cloneEntry(existing), nil
	}

	if entry.ID == "" {
		entry.ID = r.store.newID()
	}
	entry = cloneEntry(entry)
	r.store.entries[key] = entry
	return cloneEntry(entry), nil
}

// ClockOut implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) ClockOut(ctx context.Context, userID string, date string, at time.Time) (attendance.TimeEntry, error) {
	if err := ctx.Err(); err != nil {
		return attendance.TimeEntry{}, errs.Storage("clock out", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := entryKey{userID, date}
	existing, ok := r.store.entries[key]
	if !ok || !existing.HasClockedIn() {
		return attendance.TimeEntry{}, attendance.ErrNotClockedIn
	}
	if existing.HasClockedOut() {
		return attendance.TimeEntry{}, attendance.ErrAlreadyClockedOut
	}
	if at.Before(*existing.ClockIn) {
		return attendance.TimeEntry{}, attendance.NewClockOutBeforeClockInError()
	}

	existing.ClockOut = &at
	existing.UpdatedAt = at
	r.store.entries[key] = existing
	return cloneEntry(existing), nil
}

func (r *timeEntryRepository) list(match func(attendance.TimeEntry) bool) []attendance.TimeEntry {
	entries := []attendance.TimeEntry{}
	for _, e := range r.store.entries {
		if match(e) {
			entries = append(entries, cloneEntry(e))
		}
	}
	attendance.SortEntries(entries)
	return entries
}

// ListByUser implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) ListByUser(ctx context.Context, userID string) ([]attendance.TimeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Storage("list time entries", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.list(func(e attendance.TimeEntry) bool { return e.UserID == userID }), nil
}

// ListByUserIDs implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) ListByUserIDs(ctx context.Context, userIDs []string) ([]attendance.TimeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Storage("list time entries", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	set := toSet(userIDs)
	return r.list(func(e attendance.TimeEntry) bool {
		_, ok := set[e.UserID]
		return ok
	}), nil
}

// ListAll implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) ListAll(ctx context.Context) ([]attendance.TimeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Storage("list time entries", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.list(func(attendance.TimeEntry) bool { return true }), nil
}
