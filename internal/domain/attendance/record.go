package attendance

import (
	"sort"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
)

// UnknownUserName is shown for entries whose user is not in the directory.
const UnknownUserName = "Unknown User"

// ToAttendanceRecord joins entry with its user's name from users.
func ToAttendanceRecord(entry TimeEntry, users map[string]user.User) AttendanceRecord {
	name := UnknownUserName
	if u, ok := users[entry.UserID]; ok {
		name = u.Name
	}
	return AttendanceRecord{
		TimeEntry:    entry,
		UserName:     name,
		WorkDuration: entry.WorkDuration(),
	}
}

// ToAttendanceRecords joins every entry and returns them in report order.
func ToAttendanceRecords(entries []TimeEntry, users map[string]user.User) []AttendanceRecord {
	records := make([]AttendanceRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, ToAttendanceRecord(e, users))
	}
	SortRecords(records)
	return records
}

// SortRecords orders records by date descending, then user name ascending
// using Japanese collation.
func SortRecords(records []AttendanceRecord) {
	c := user.NewNameCollator()
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return c.CompareString(records[i].UserName, records[j].UserName) < 0
	})
}

// SortEntries orders entries by date descending.
func SortEntries(entries []TimeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}
