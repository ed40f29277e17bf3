package attendance

import (
	"time"
)

// DateLayout is the calendar-date format used for TimeEntry.Date.
const DateLayout = "2006-01-02"

type EntryStatus string

const (
	EntryStatusNormal    EntryStatus = "Normal"
	EntryStatusCorrected EntryStatus = "Corrected"
)

// TimeEntry is one user's attendance on one calendar date. There is at most
// one entry per (UserID, Date); ClockOut is never set without ClockIn and is
// never before it.
type TimeEntry struct {
	ID        string
	UserID    string
	Date      string // YYYY-MM-DD
	ClockIn   *time.Time
	ClockOut  *time.Time
	Status    EntryStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateOf returns the calendar date of t in loc.
func DateOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// WorkDuration returns the elapsed hours between clock-in and clock-out, or
// nil when either timestamp is missing.
func (e TimeEntry) WorkDuration() *float64 {
	if e.ClockIn == nil || e.ClockOut == nil {
		return nil
	}
	hours := e.ClockOut.Sub(*e.ClockIn).Hours()
	return &hours
}

// HasClockedIn reports whether the entry has a clock-in time.
func (e TimeEntry) HasClockedIn() bool {
	return e.ClockIn != nil
}

// HasClockedOut reports whether the entry has a clock-out time.
func (e TimeEntry) HasClockedOut() bool {
	return e.ClockOut != nil
}

// AttendanceRecord is a TimeEntry joined with its user's display name and the
// derived work duration. It is never persisted.
type AttendanceRecord struct {
	TimeEntry
	UserName     string
	WorkDuration *float64
}
