package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
	"github.com/xuri/excelize/v2"
)

type ReportServiceImpl struct {
	attendanceService attendance.AttendanceService
	loc               *time.Location
	logger            *slog.Logger
}

func NewReportService(attendanceService attendance.AttendanceService, loc *time.Location, logger *slog.Logger) report.ReportService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportServiceImpl{
		attendanceService: attendanceService,
		loc:               loc,
		logger:            logger,
	}
}

// Export implements report.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, viewer user.User, req report.ExportRequest, now time.Time) (report.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return report.ExportFile{}, err
	}

	var (
		records []attendance.AttendanceRecord
		err     error
	)
	switch req.Scope {
	case report.ScopeAll:
		if !viewer.IsAdmin() {
			return report.ExportFile{}, user.ErrAdminAccessRequired
		}
		records, err = s.attendanceService.GetAllAttendanceRecords(ctx)
	case report.ScopeTeam:
		if !viewer.IsSupervisor() {
			return report.ExportFile{}, user.ErrSupervisorAccessRequired
		}
		records, err = s.attendanceService.GetManagedTeamAttendance(ctx, viewer.ID)
	}
	if err != nil {
		return report.ExportFile{}, err
	}

	var data []byte
	switch req.Format {
	case report.FormatXLSX:
		data, err = s.SerializeToXLSX(records)
	default:
		data, err = s.SerializeToCSV(records)
	}
	if err != nil {
		return report.ExportFile{}, err
	}

	s.logger.InfoContext(ctx, "attendance exported",
		slog.String("user_id", viewer.ID),
		slog.String("scope", string(req.Scope)),
		slog.String("format", string(req.Format)),
		slog.Int("records", len(records)),
	)

	return report.ExportFile{
		Filename:    report.Filename(attendance.DateOf(now, s.loc), req.Format),
		ContentType: req.Format.ContentType(),
		Data:        data,
	}, nil
}

// SerializeToCSV implements report.ReportService.
func (s *ReportServiceImpl) SerializeToCSV(records []attendance.AttendanceRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(report.Header); err != nil {
		return nil, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}
	if err := w.WriteAll(report.Rows(records, s.loc)); err != nil {
		return nil, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}
	return buf.Bytes(), nil
}

// SerializeToXLSX implements report.ReportService.
func (s *ReportServiceImpl) SerializeToXLSX(records []attendance.AttendanceRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), report.SheetName); err != nil {
		return nil, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}

	rows := append([][]string{report.Header}, report.Rows(records, s.loc)...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(report.SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}
	return buf.Bytes(), nil
}
