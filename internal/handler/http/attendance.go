package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Today(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	GetTeamAttendance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	loc               *time.Location
	now               func() time.Time
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, loc *time.Location, now func() time.Time) AttendanceHandler {
	if now == nil {
		now = time.Now
	}
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		loc:               loc,
		now:               now,
	}
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	now := h.now()
	entry, err := h.attendanceService.GetTodaysEntry(r.Context(), actor.ID, now)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := attendance.TodayResponse{Date: attendance.DateOf(now, h.loc)}
	if entry != nil {
		e := attendance.ToEntryResponse(*entry)
		resp.Entry = &e
	}
	response.Success(w, resp)
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.attendanceService.ClockIn(r.Context(), actor.ID, h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", attendance.ToEntryResponse(result))
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), actor.ID, h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", attendance.ToEntryResponse(result))
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	entries, err := h.attendanceService.GetUserAttendance(r.Context(), actor.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToEntryResponses(entries))
}

// GetTeamAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetTeamAttendance(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	records, err := h.attendanceService.GetManagedTeamAttendance(r.Context(), actor.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToRecordResponses(records))
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.GetAllAttendanceRecords(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToRecordResponses(records))
}
