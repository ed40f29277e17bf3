package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.TimeEntryRepository
	directory user.DirectoryService
	loc       *time.Location
	logger    *slog.Logger
}

// NewAttendanceService builds the time ledger. loc decides which calendar
// date a timestamp belongs to.
func NewAttendanceService(timeEntryRepository attendance.TimeEntryRepository, directory user.DirectoryService, loc *time.Location, logger *slog.Logger) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceServiceImpl{
		TimeEntryRepository: timeEntryRepository,
		directory:           directory,
		loc:                 loc,
		logger:              logger,
	}
}

func requireUserID(userID string) error {
	if validator.IsEmpty(userID) {
		return validator.ValidationErrors{{Field: "user_id", Message: "user_id is required"}}
	}
	return nil
}

// GetTodaysEntry implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTodaysEntry(ctx context.Context, userID string, now time.Time) (*attendance.TimeEntry, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	return a.TimeEntryRepository.GetByUserAndDate(ctx, userID, attendance.DateOf(now, a.loc))
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, userID string, now time.Time) (attendance.TimeEntry, error) {
	if err := requireUserID(userID); err != nil {
		return attendance.TimeEntry{}, err
	}

	clockIn := now
	entry, err := a.TimeEntryRepository.ClockIn(ctx, attendance.TimeEntry{
		UserID:    userID,
		Date:      attendance.DateOf(now, a.loc),
		ClockIn:   &clockIn,
		Status:    attendance.EntryStatusNormal,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return attendance.TimeEntry{}, err
	}

	a.logger.InfoContext(ctx, "clocked in",
		slog.String("user_id", userID),
		slog.String("date", entry.Date),
	)
	return entry, nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, userID string, now time.Time) (attendance.TimeEntry, error) {
	if err := requireUserID(userID); err != nil {
		return attendance.TimeEntry{}, err
	}

	entry, err := a.TimeEntryRepository.ClockOut(ctx, userID, attendance.DateOf(now, a.loc), now)
	if err != nil {
		return attendance.TimeEntry{}, err
	}

	a.logger.InfoContext(ctx, "clocked out",
		slog.String("user_id", userID),
		slog.String("date", entry.Date),
	)
	return entry, nil
}

// GetUserAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetUserAttendance(ctx context.Context, userID string) ([]attendance.TimeEntry, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	entries, err := a.TimeEntryRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	attendance.SortEntries(entries)
	return entries, nil
}

// GetAllAttendanceRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAllAttendanceRecords(ctx context.Context) ([]attendance.AttendanceRecord, error) {
	entries, err := a.TimeEntryRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	userIDs := make([]string, 0)
	for _, e := range entries {
		if _, ok := seen[e.UserID]; !ok {
			seen[e.UserID] = struct{}{}
			userIDs = append(userIDs, e.UserID)
		}
	}

	users, err := a.directory.Index(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	return attendance.ToAttendanceRecords(entries, users), nil
}

// GetManagedTeamAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetManagedTeamAttendance(ctx context.Context, supervisorID string) ([]attendance.AttendanceRecord, error) {
	if err := requireUserID(supervisorID); err != nil {
		return nil, err
	}

	reports, err := a.directory.ListDirectReports(ctx, supervisorID)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return []attendance.AttendanceRecord{}, nil
	}

	users := make(map[string]user.User, len(reports))
	userIDs := make([]string, 0, len(reports))
	for _, r := range reports {
		users[r.ID] = r
		userIDs = append(userIDs, r.ID)
	}

	entries, err := a.TimeEntryRepository.ListByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	return attendance.ToAttendanceRecords(entries, users), nil
}
