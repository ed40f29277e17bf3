package fixtures

import (
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/request"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }

// ==========================================
// DEMO DATA
// ==========================================

// DemoPassword is the login password of every demo user.
const DemoPassword = "password123"

// Demo user IDs
const (
	EmployeeTanakaID = "user-1"
	EmployeeSatoID   = "user-2"
	SupervisorID     = "user-supervisor-1"
	AdminID          = "user-admin-1"
)

// DemoData is a small directory with a few days of history.
type DemoData struct {
	Users       []user.User
	TimeEntries []attendance.TimeEntry
	Requests    []request.Request
}

// Demo builds the demo data relative to now. Day offsets count back from the
// calendar date of now in loc.
func Demo(now time.Time, loc *time.Location) DemoData {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	day := func(daysAgo int) string {
		return midnight.AddDate(0, 0, -daysAgo).Format(attendance.DateLayout)
	}
	at := func(daysAgo, hour, minute, second int) time.Time {
		d := midnight.AddDate(0, 0, -daysAgo)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, second, 0, loc)
	}
	entry := func(id, userID string, daysAgo int, in, out [3]int) attendance.TimeEntry {
		clockIn := at(daysAgo, in[0], in[1], in[2])
		clockOut := at(daysAgo, out[0], out[1], out[2])
		return attendance.TimeEntry{
			ID:        id,
			UserID:    userID,
			Date:      day(daysAgo),
			ClockIn:   &clockIn,
			ClockOut:  &clockOut,
			Status:    attendance.EntryStatusNormal,
			CreatedAt: clockIn,
			UpdatedAt: clockOut,
		}
	}

	users := []user.User{
		{ID: EmployeeTanakaID, Name: "田中 太郎", Email: "tanaka@example.com", Role: user.RoleEmployee, SupervisorID: strPtr(SupervisorID)},
		{ID: EmployeeSatoID, Name: "佐藤 花子", Email: "sato@example.com", Role: user.RoleEmployee, SupervisorID: strPtr(SupervisorID)},
		{ID: SupervisorID, Name: "鈴木 一郎", Email: "suzuki@example.com", Role: user.RoleSupervisor, SupervisorID: strPtr(AdminID)},
		{ID: AdminID, Name: "高橋 優子", Email: "takahashi@example.com", Role: user.RoleAdmin},
	}
	for i := range users {
		users[i].CreatedAt = midnight.AddDate(0, -1, 0)
		users[i].UpdatedAt = users[i].CreatedAt
	}

	entries := []attendance.TimeEntry{
		entry("t-0", EmployeeTanakaID, 2, [3]int{9, 2, 30}, [3]int{18, 3, 45}),
		entry("t-1", EmployeeSatoID, 2, [3]int{9, 28, 11}, [3]int{17, 40, 5}),
		entry("t-2", EmployeeTanakaID, 1, [3]int{9, 1, 15}, [3]int{18, 5, 20}),
		entry("t-3", EmployeeSatoID, 1, [3]int{9, 30, 0}, [3]int{17, 45, 10}),
		entry("t-4", SupervisorID, 1, [3]int{8, 55, 0}, [3]int{19, 0, 0}),
		entry("t-5", EmployeeTanakaID, 3, [3]int{8, 58, 0}, [3]int{18, 1, 0}),
		entry("t-6", EmployeeTanakaID, 4, [3]int{9, 10, 0}, [3]int{18, 15, 0}),
		entry("t-7", SupervisorID, 2, [3]int{8, 59, 10}, [3]int{18, 45, 0}),
	}

	r2Resolved := at(1, 12, 0, 0)
	r3Resolved := at(2, 10, 0, 0)
	requests := []request.Request{
		{
			ID:            "r-1",
			UserID:        EmployeeTanakaID,
			UserName:      "田中 太郎",
			Type:          request.RequestTypeCorrection,
			Date:          day(2),
			RequestedTime: "09:00",
			Reason:        "打刻を忘れました。",
			Status:        request.RequestStatusPending,
			CreatedAt:     at(1, 10, 0, 0),
			UpdatedAt:     at(1, 10, 0, 0),
		},
		{
			ID:            "r-2",
			UserID:        EmployeeSatoID,
			UserName:      "佐藤 花子",
			Type:          request.RequestTypeOvertime,
			Date:          day(0),
			RequestedTime: "19:30",
			Reason:        "緊急の顧客対応のため。",
			Status:        request.RequestStatusApproved,
			ApproverID:    strPtr(SupervisorID),
			ResolvedAt:    &r2Resolved,
			CreatedAt:     at(1, 11, 0, 0),
			UpdatedAt:     r2Resolved,
		},
		{
			ID:            "r-3",
			UserID:        EmployeeTanakaID,
			UserName:      "田中 太郎",
			Type:          request.RequestTypeCorrection,
			Date:          day(3),
			RequestedTime: "18:00",
			Reason:        "退勤打刻漏れ",
			Status:        request.RequestStatusRejected,
			ApproverID:    strPtr(SupervisorID),
			ResolvedAt:    &r3Resolved,
			CreatedAt:     at(2, 9, 0, 0),
			UpdatedAt:     r3Resolved,
		},
	}

	return DemoData{Users: users, TimeEntries: entries, Requests: requests}
}

// HashDemoPasswords sets every user's password hash to the bcrypt hash of
// DemoPassword.
func HashDemoPasswords(users []user.User, cost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
	if err != nil {
		return err
	}
	hashed := string(hash)
	for i := range users {
		users[i].PasswordHash = &hashed
	}
	return nil
}
