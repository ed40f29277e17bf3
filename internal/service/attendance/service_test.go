package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/errs"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/service/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jst = time.FixedZone("JST", 9*60*60)

func jstTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", value, jst)
	require.NoError(t, err)
	return ts
}

func newTestService(data fixtures.DemoData) attendance.AttendanceService {
	store := memory.NewSeededStore(data)
	return NewAttendanceService(store.TimeEntries(), directory.NewDirectoryService(store.Users()), jst, logger.Discard())
}

func usersOnly(now time.Time) fixtures.DemoData {
	data := fixtures.Demo(now, jst)
	return fixtures.DemoData{Users: data.Users}
}

func TestClockInOut_WorkDuration(t *testing.T) {
	ctx := context.Background()
	in := jstTime(t, "2025-07-12 09:01:15")
	out := jstTime(t, "2025-07-12 18:05:20")
	svc := newTestService(usersOnly(in))

	entry, err := svc.ClockIn(ctx, fixtures.EmployeeTanakaID, in)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-12", entry.Date)
	assert.Equal(t, attendance.EntryStatusNormal, entry.Status)
	assert.Nil(t, entry.ClockOut)

	entry, err = svc.ClockOut(ctx, fixtures.EmployeeTanakaID, out)
	require.NoError(t, err)
	require.NotNil(t, entry.WorkDuration())
	assert.InDelta(t, 9.068, *entry.WorkDuration(), 0.001)
	assert.Equal(t, "9.07", attendance.FormatHours(*entry.WorkDuration()))

	today, err := svc.GetTodaysEntry(ctx, fixtures.EmployeeTanakaID, out)
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, entry.ID, today.ID)
}

func TestClockIn_Twice(t *testing.T) {
	ctx := context.Background()
	in := jstTime(t, "2025-07-12 09:00:00")
	svc := newTestService(usersOnly(in))

	_, err := svc.ClockIn(ctx, fixtures.EmployeeTanakaID, in)
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, fixtures.EmployeeTanakaID, in.Add(time.Minute))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestClockOut_Errors(t *testing.T) {
	ctx := context.Background()
	in := jstTime(t, "2025-07-12 09:00:00")
	svc := newTestService(usersOnly(in))

	_, err := svc.ClockOut(ctx, fixtures.EmployeeTanakaID, in)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	_, err = svc.ClockIn(ctx, fixtures.EmployeeTanakaID, in)
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, fixtures.EmployeeTanakaID, in.Add(-time.Second))
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "clock_out")

	_, err = svc.ClockOut(ctx, fixtures.EmployeeTanakaID, in.Add(8*time.Hour))
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, fixtures.EmployeeTanakaID, in.Add(9*time.Hour))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestClockIn_DateUsesLocation(t *testing.T) {
	ctx := context.Background()
	// 23:30 UTC on the 11th is 08:30 JST on the 12th.
	now := time.Date(2025, 7, 11, 23, 30, 0, 0, time.UTC)
	svc := newTestService(usersOnly(now))

	entry, err := svc.ClockIn(ctx, fixtures.EmployeeSatoID, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-12", entry.Date)
}

func TestClockIn_NextDayIsNewEntry(t *testing.T) {
	ctx := context.Background()
	day1 := jstTime(t, "2025-07-11 09:00:00")
	svc := newTestService(usersOnly(day1))

	_, err := svc.ClockIn(ctx, fixtures.EmployeeTanakaID, day1)
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, fixtures.EmployeeTanakaID, day1.Add(24*time.Hour))
	require.NoError(t, err)

	history, err := svc.GetUserAttendance(ctx, fixtures.EmployeeTanakaID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2025-07-12", history[0].Date)
	assert.Equal(t, "2025-07-11", history[1].Date)
}

func TestClockIn_Concurrent(t *testing.T) {
	ctx := context.Background()
	in := jstTime(t, "2025-07-12 09:00:00")
	svc := newTestService(usersOnly(in))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ClockIn(ctx, fixtures.EmployeeTanakaID, in); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, success)
}

func TestGetTodaysEntry_None(t *testing.T) {
	now := jstTime(t, "2025-07-12 09:00:00")
	svc := newTestService(usersOnly(now))

	entry, err := svc.GetTodaysEntry(context.Background(), fixtures.EmployeeTanakaID, now)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestGetAllAttendanceRecords(t *testing.T) {
	now := jstTime(t, "2025-07-12 10:00:00")
	svc := newTestService(fixtures.Demo(now, jst))

	records, err := svc.GetAllAttendanceRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 8)

	for i := 1; i < len(records); i++ {
		assert.GreaterOrEqual(t, records[i-1].Date, records[i].Date)
	}
	for _, r := range records {
		assert.NotEqual(t, attendance.UnknownUserName, r.UserName)
		require.NotNil(t, r.WorkDuration)
	}

	day := []string{}
	for _, r := range records {
		if r.Date == "2025-07-11" {
			day = append(day, r.UserID)
		}
	}
	assert.ElementsMatch(t, []string{fixtures.EmployeeSatoID, fixtures.SupervisorID, fixtures.EmployeeTanakaID}, day)
}

func TestGetAllAttendanceRecords_UnknownUser(t *testing.T) {
	ctx := context.Background()
	now := jstTime(t, "2025-07-12 09:00:00")
	svc := newTestService(fixtures.DemoData{})

	_, err := svc.ClockIn(ctx, "ghost", now)
	require.NoError(t, err)

	records, err := svc.GetAllAttendanceRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.UnknownUserName, records[0].UserName)
	assert.Nil(t, records[0].WorkDuration)
}

func TestGetManagedTeamAttendance(t *testing.T) {
	ctx := context.Background()
	now := jstTime(t, "2025-07-12 10:00:00")
	svc := newTestService(fixtures.Demo(now, jst))

	records, err := svc.GetManagedTeamAttendance(ctx, fixtures.SupervisorID)
	require.NoError(t, err)
	require.Len(t, records, 6)
	for _, r := range records {
		assert.Contains(t, []string{fixtures.EmployeeTanakaID, fixtures.EmployeeSatoID}, r.UserID)
	}

	records, err = svc.GetManagedTeamAttendance(ctx, fixtures.AdminID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, fixtures.SupervisorID, r.UserID)
	}

	records, err = svc.GetManagedTeamAttendance(ctx, fixtures.EmployeeTanakaID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRequiresUserID(t *testing.T) {
	svc := newTestService(fixtures.DemoData{})
	_, err := svc.ClockIn(context.Background(), " ", time.Now())

	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}
