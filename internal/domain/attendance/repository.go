package attendance

import (
	"context"
	"time"
)

// TimeEntryRepository defines data access for time entries. ClockIn and
// ClockOut are compare-and-set operations: the precondition check and the
// write happen atomically in the store.
type TimeEntryRepository interface {
	// GetByUserAndDate returns nil, nil when no entry exists.
	GetByUserAndDate(ctx context.Context, userID string, date string) (*TimeEntry, error)

	// ClockIn creates the (UserID, Date) entry, or sets ClockIn on an existing
	// entry that has none. Returns ErrAlreadyClockedIn otherwise.
	ClockIn(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	// ClockOut sets ClockOut on the (userID, date) entry. Returns
	// ErrNotClockedIn, ErrAlreadyClockedOut, or a validation error when at is
	// before the stored clock-in.
	ClockOut(ctx context.Context, userID string, date string, at time.Time) (TimeEntry, error)

	// ListByUser returns the user's entries ordered by date descending.
	ListByUser(ctx context.Context, userID string) ([]TimeEntry, error)

	// ListByUserIDs returns the entries of the given users, date descending.
	ListByUserIDs(ctx context.Context, userIDs []string) ([]TimeEntry, error)

	// ListAll returns every entry, date descending.
	ListAll(ctx context.Context) ([]TimeEntry, error)
}
