package attendance

import (
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/errs"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/validator"
)

// Attendance domain errors
var (
	ErrAlreadyClockedIn  = errs.Conflict("already clocked in today")
	ErrNotClockedIn      = errs.Conflict("cannot clock out without clocking in first")
	ErrAlreadyClockedOut = errs.Conflict("already clocked out today")
	ErrEntryNotFound     = errs.NotFound("time entry not found")
)

// NewClockOutBeforeClockInError reports a clock-out time earlier than the
// stored clock-in time.
func NewClockOutBeforeClockInError() error {
	return validator.ValidationErrors{{
		Field:   "clock_out",
		Message: "clock-out time must not be before clock-in time",
	}}
}
