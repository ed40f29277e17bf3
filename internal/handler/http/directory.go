package http

import (
	"net/http"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DirectoryHandler interface {
	GetTeam(w http.ResponseWriter, r *http.Request)
	GetUser(w http.ResponseWriter, r *http.Request)
}

type directoryHandlerImpl struct {
	directory user.DirectoryService
}

func NewDirectoryHandler(directory user.DirectoryService) DirectoryHandler {
	return &directoryHandlerImpl{
		directory: directory,
	}
}

// GetTeam implements DirectoryHandler.
func (h *directoryHandlerImpl) GetTeam(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	reports, err := h.directory.ListDirectReports(r.Context(), actor.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, user.ToResponses(reports))
}

// GetUser implements DirectoryHandler. Supervisors only see themselves and
// their direct reports.
func (h *directoryHandlerImpl) GetUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	found, err := h.directory.FindUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !actor.IsAdmin() && actor.ID != found.ID && !found.ReportsTo(actor.ID) {
		response.HandleError(w, user.ErrInsufficientPermissions)
		return
	}

	response.Success(w, user.ToResponse(found))
}
