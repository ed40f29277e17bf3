package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// ExportAttendance handles GET /attendance/export?scope=&format=
	ExportAttendance(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	now           func() time.Time
}

func NewReportHandler(reportService report.ReportService, now func() time.Time) ReportHandler {
	if now == nil {
		now = time.Now
	}
	return &reportHandlerImpl{
		reportService: reportService,
		now:           now,
	}
}

// ExportAttendance implements ReportHandler.
func (h *reportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	req := report.ExportRequest{
		Scope:  report.Scope(r.URL.Query().Get("scope")),
		Format: report.Format(r.URL.Query().Get("format")),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.reportService.Export(r.Context(), actor, req, h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Data)
}
