package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/errs"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/request"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 7, 12, 0, 30, 0, 0, time.UTC)

func seeded() *Store {
	return NewSeededStore(fixtures.Demo(testNow, time.UTC))
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	users := seeded().Users()

	u, err := users.GetByID(ctx, fixtures.EmployeeTanakaID)
	require.NoError(t, err)
	assert.Equal(t, "田中 太郎", u.Name)

	_, err = users.GetByID(ctx, "nobody")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	u, err = users.GetByEmail(ctx, "suzuki@example.com")
	require.NoError(t, err)
	assert.Equal(t, fixtures.SupervisorID, u.ID)

	reports, err := users.ListDirectReports(ctx, fixtures.SupervisorID)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	reports, err = users.ListDirectReports(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, reports)

	listed, err := users.ListByIDs(ctx, []string{fixtures.AdminID, "nobody", fixtures.AdminID})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, fixtures.AdminID, listed[0].ID)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	users := seeded().Users()

	u, err := users.GetByID(ctx, fixtures.EmployeeTanakaID)
	require.NoError(t, err)
	*u.SupervisorID = "someone-else"

	again, err := users.GetByID(ctx, fixtures.EmployeeTanakaID)
	require.NoError(t, err)
	assert.Equal(t, fixtures.SupervisorID, *again.SupervisorID)
}

func TestTimeEntryRepository_ClockInOut(t *testing.T) {
	ctx := context.Background()
	entries := NewStore().TimeEntries()
	in := time.Date(2025, 7, 12, 0, 1, 15, 0, time.UTC)

	got, err := entries.GetByUserAndDate(ctx, "user-1", "2025-07-12")
	require.NoError(t, err)
	assert.Nil(t, got)

	created, err := entries.ClockIn(ctx, attendance.TimeEntry{
		UserID:  "user-1",
		Date:    "2025-07-12",
		ClockIn: &in,
		Status:  attendance.EntryStatusNormal,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = entries.ClockIn(ctx, attendance.TimeEntry{UserID: "user-1", Date: "2025-07-12", ClockIn: &in})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	_, err = entries.ClockOut(ctx, "user-1", "2025-07-12", in.Add(-time.Minute))
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	out, err := entries.ClockOut(ctx, "user-1", "2025-07-12", in.Add(9*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, out.ClockOut)
	assert.Equal(t, created.ID, out.ID)

	_, err = entries.ClockOut(ctx, "user-1", "2025-07-12", in.Add(10*time.Hour))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)

	_, err = entries.ClockOut(ctx, "user-2", "2025-07-12", in)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestTimeEntryRepository_ConcurrentClockIn(t *testing.T) {
	ctx := context.Background()
	entries := NewStore().TimeEntries()
	in := time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC)

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := entries.ClockIn(ctx, attendance.TimeEntry{UserID: "user-1", Date: "2025-07-12", ClockIn: &in})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if errors.Is(err, attendance.ErrAlreadyClockedIn) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)

	all, err := entries.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTimeEntryRepository_Lists(t *testing.T) {
	ctx := context.Background()
	entries := seeded().TimeEntries()

	mine, err := entries.ListByUser(ctx, fixtures.EmployeeTanakaID)
	require.NoError(t, err)
	require.Len(t, mine, 4)
	for i := 1; i < len(mine); i++ {
		assert.Greater(t, mine[i-1].Date, mine[i].Date)
	}

	team, err := entries.ListByUserIDs(ctx, []string{fixtures.EmployeeTanakaID, fixtures.EmployeeSatoID})
	require.NoError(t, err)
	assert.Len(t, team, 6)

	all, err := entries.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 8)
}

func TestRequestRepository_Resolve(t *testing.T) {
	ctx := context.Background()
	requests := seeded().Requests()
	at := testNow.Add(time.Hour)

	resolved, err := requests.Resolve(ctx, "r-1", request.RequestStatusApproved, fixtures.SupervisorID, at)
	require.NoError(t, err)
	assert.Equal(t, request.RequestStatusApproved, resolved.Status)
	require.NotNil(t, resolved.ApproverID)
	assert.Equal(t, fixtures.SupervisorID, *resolved.ApproverID)

	_, err = requests.Resolve(ctx, "r-1", request.RequestStatusRejected, fixtures.AdminID, at)
	assert.ErrorIs(t, err, request.ErrAlreadyResolved)
	assert.ErrorIs(t, err, errs.ErrConflict)

	_, err = requests.Resolve(ctx, "missing", request.RequestStatusRejected, fixtures.AdminID, at)
	assert.ErrorIs(t, err, request.ErrRequestNotFound)

	stored, err := requests.GetByID(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, request.RequestStatusApproved, stored.Status)
}

func TestRequestRepository_Lists(t *testing.T) {
	ctx := context.Background()
	requests := seeded().Requests()

	mine, err := requests.ListByUser(ctx, fixtures.EmployeeTanakaID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "r-1", mine[0].ID)
	assert.Equal(t, "r-3", mine[1].ID)

	managed, err := requests.ListByUserIDs(ctx, []string{fixtures.EmployeeTanakaID, fixtures.EmployeeSatoID})
	require.NoError(t, err)
	ids := make([]string, 0, len(managed))
	for _, r := range managed {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"r-2", "r-1", "r-3"}, ids)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := seeded().Users().GetByID(ctx, fixtures.AdminID)
	assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}
