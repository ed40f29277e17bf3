package attendance

import (
	"strconv"
	"time"
)

type TimeEntryResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Date         string  `json:"date"`
	ClockInTime  *string `json:"clock_in_time"`
	ClockOutTime *string `json:"clock_out_time"`
	Status       string  `json:"status"`
}

type AttendanceRecordResponse struct {
	TimeEntryResponse
	UserName            string   `json:"user_name"`
	WorkDuration        *float64 `json:"work_duration"`
	WorkDurationDisplay *string  `json:"work_duration_display"`
}

type TodayResponse struct {
	Date  string             `json:"date"`
	Entry *TimeEntryResponse `json:"entry"`
}

// timePtrToString safely converts a *time.Time to an RFC3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

// FormatHours renders a work duration with two decimals.
func FormatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 2, 64)
}

func ToEntryResponse(e TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		Date:         e.Date,
		ClockInTime:  timePtrToString(e.ClockIn),
		ClockOutTime: timePtrToString(e.ClockOut),
		Status:       string(e.Status),
	}
}

func ToEntryResponses(entries []TimeEntry) []TimeEntryResponse {
	out := make([]TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToEntryResponse(e))
	}
	return out
}

func ToRecordResponse(r AttendanceRecord) AttendanceRecordResponse {
	resp := AttendanceRecordResponse{
		TimeEntryResponse: ToEntryResponse(r.TimeEntry),
		UserName:          r.UserName,
		WorkDuration:      r.WorkDuration,
	}
	if r.WorkDuration != nil {
		display := FormatHours(*r.WorkDuration)
		resp.WorkDurationDisplay = &display
	}
	return resp
}

func ToRecordResponses(records []AttendanceRecord) []AttendanceRecordResponse {
	out := make([]AttendanceRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToRecordResponse(r))
	}
	return out
}
