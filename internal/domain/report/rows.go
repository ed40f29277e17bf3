package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/attendance"
)

// SheetName is the worksheet name of XLSX exports.
const SheetName = "勤怠"

// Header is the first row of every export.
var Header = []string{"日付", "社員名", "出勤時刻", "退勤時刻", "労働時間(h)", "ステータス"}

// ClockTime renders t in loc as H:mm:ss, the ja-JP locale time format.
// A nil t renders as the empty string.
func ClockTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	return fmt.Sprintf("%d:%02d:%02d", lt.Hour(), lt.Minute(), lt.Second())
}

// Row renders one record in header order.
func Row(r attendance.AttendanceRecord, loc *time.Location) []string {
	hours := ""
	if r.WorkDuration != nil {
		hours = attendance.FormatHours(*r.WorkDuration)
	}
	return []string{
		r.Date,
		r.UserName,
		ClockTime(r.ClockIn, loc),
		ClockTime(r.ClockOut, loc),
		hours,
		string(r.Status),
	}
}

// Rows renders records in the given order, without the header.
func Rows(records []attendance.AttendanceRecord, loc *time.Location) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, Row(r, loc))
	}
	return rows
}

// Filename is the download name of an export created on date.
func Filename(date string, format Format) string {
	return fmt.Sprintf("dakokun_attendance_%s.%s", date, format)
}
