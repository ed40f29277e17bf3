package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/errs"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/dakokun-backend-go/internal/service/attendance"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/service/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var (
	jst     = time.FixedZone("JST", 9*60*60)
	testNow = time.Date(2025, 7, 12, 10, 0, 0, 0, jst)
)

func newTestService() (report.ReportService, []user.User) {
	data := fixtures.Demo(testNow, jst)
	store := memory.NewSeededStore(data)
	dir := directory.NewDirectoryService(store.Users())
	att := attendanceService.NewAttendanceService(store.TimeEntries(), dir, jst, logger.Discard())
	return NewReportService(att, jst, logger.Discard()), data.Users
}

func findUser(users []user.User, id string) user.User {
	for _, u := range users {
		if u.ID == id {
			return u
		}
	}
	return user.User{}
}

func TestSerializeToCSV(t *testing.T) {
	svc, _ := newTestService()

	in := time.Date(2025, 7, 12, 9, 1, 15, 0, jst)
	out := time.Date(2025, 7, 12, 18, 5, 20, 0, jst)
	entry := attendance.TimeEntry{UserID: "user-1", Date: "2025-07-12", ClockIn: &in, ClockOut: &out, Status: attendance.EntryStatusNormal}
	records := []attendance.AttendanceRecord{
		attendance.ToAttendanceRecord(entry, map[string]user.User{"user-1": {ID: "user-1", Name: "田中 太郎"}}),
	}

	data, err := svc.SerializeToCSV(records)
	require.NoError(t, err)
	assert.Equal(t,
		"日付,社員名,出勤時刻,退勤時刻,労働時間(h),ステータス\n"+
			"2025-07-12,田中 太郎,9:01:15,18:05:20,9.07,Normal\n",
		string(data))
}

func TestSerializeToCSV_Empty(t *testing.T) {
	svc, _ := newTestService()

	data, err := svc.SerializeToCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "日付,社員名,出勤時刻,退勤時刻,労働時間(h),ステータス\n", string(data))
}

func TestSerializeToCSV_QuotesCommas(t *testing.T) {
	svc, _ := newTestService()

	records := []attendance.AttendanceRecord{{
		TimeEntry: attendance.TimeEntry{Date: "2025-07-12", Status: attendance.EntryStatusCorrected},
		UserName:  "Smith, John",
	}}

	data, err := svc.SerializeToCSV(records)
	require.NoError(t, err)
	assert.Contains(t, string(data), `2025-07-12,"Smith, John",,,,Corrected`)
}

func TestSerializeToXLSX(t *testing.T) {
	svc, users := newTestService()
	admin := findUser(users, fixtures.AdminID)

	file, err := svc.Export(context.Background(), admin, report.ExportRequest{Scope: report.ScopeAll, Format: report.FormatXLSX}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "dakokun_attendance_2025-07-12.xlsx", file.Filename)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	assert.Equal(t, report.SheetName, wb.GetSheetName(0))
	rows, err := wb.GetRows(report.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.Equal(t, report.Header, rows[0])
	assert.Equal(t, "2025-07-11", rows[1][0])
}

func TestExport_Scopes(t *testing.T) {
	svc, users := newTestService()
	ctx := context.Background()

	supervisor := findUser(users, fixtures.SupervisorID)
	file, err := svc.Export(ctx, supervisor, report.ExportRequest{Scope: report.ScopeTeam}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "dakokun_attendance_2025-07-12.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	assert.Len(t, lines, 7)
	assert.NotContains(t, string(file.Data), "鈴木 一郎")

	_, err = svc.Export(ctx, supervisor, report.ExportRequest{Scope: report.ScopeAll}, testNow)
	assert.ErrorIs(t, err, user.ErrAdminAccessRequired)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	employee := findUser(users, fixtures.EmployeeTanakaID)
	_, err = svc.Export(ctx, employee, report.ExportRequest{Scope: report.ScopeTeam}, testNow)
	assert.ErrorIs(t, err, user.ErrSupervisorAccessRequired)

	_, err = svc.Export(ctx, supervisor, report.ExportRequest{Format: "pdf"}, testNow)
	assert.Error(t, err)
}
