package report

import (
	"context"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
)

type ReportService interface {
	// Export renders the attendance records visible to viewer in the requested scope
	Export(ctx context.Context, viewer user.User, req ExportRequest, now time.Time) (ExportFile, error)

	// SerializeToCSV renders records as CSV
	SerializeToCSV(records []attendance.AttendanceRecord) ([]byte, error)

	// SerializeToXLSX renders records as a single-sheet workbook
	SerializeToXLSX(records []attendance.AttendanceRecord) ([]byte, error)
}
