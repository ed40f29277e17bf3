package attendance

import (
	"context"
	"time"
)

// AttendanceService is the time ledger. Dates are derived from now in the
// ledger's configured location.
type AttendanceService interface {
	// GetTodaysEntry returns the user's entry for today, or nil when absent
	GetTodaysEntry(ctx context.Context, userID string, now time.Time) (*TimeEntry, error)

	// ClockIn records the first clock-in of the day
	ClockIn(ctx context.Context, userID string, now time.Time) (TimeEntry, error)

	// ClockOut closes today's entry
	ClockOut(ctx context.Context, userID string, now time.Time) (TimeEntry, error)

	// GetUserAttendance retrieves the user's history, newest date first
	GetUserAttendance(ctx context.Context, userID string) ([]TimeEntry, error)

	// GetAllAttendanceRecords retrieves every record (admin)
	GetAllAttendanceRecords(ctx context.Context) ([]AttendanceRecord, error)

	// GetManagedTeamAttendance retrieves records of the supervisor's direct reports
	GetManagedTeamAttendance(ctx context.Context, supervisorID string) ([]AttendanceRecord, error)
}
