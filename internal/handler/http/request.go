package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/request"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RequestHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetManagedRequests(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type requestHandlerImpl struct {
	requestService request.RequestService
	directory      user.DirectoryService
}

func NewRequestHandler(requestService request.RequestService, directory user.DirectoryService) RequestHandler {
	return &requestHandlerImpl{
		requestService: requestService,
		directory:      directory,
	}
}

// Create implements RequestHandler.
func (h *requestHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req request.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request body", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = actor.ID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.requestService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Request submitted", request.ToResponse(created))
}

// GetMyRequests implements RequestHandler.
func (h *requestHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	requests, err := h.requestService.GetRequestsByUser(r.Context(), actor.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request.ToResponses(requests))
}

// GetManagedRequests implements RequestHandler.
func (h *requestHandlerImpl) GetManagedRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	requests, err := h.requestService.GetManagedRequests(r.Context(), actor.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request.ToResponses(requests))
}

// loadRequest fetches the request named in the URL together with its requester.
func (h *requestHandlerImpl) loadRequest(r *http.Request) (request.Request, user.User, error) {
	req, err := h.requestService.GetRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return request.Request{}, user.User{}, err
	}
	requester, err := h.directory.FindUser(r.Context(), req.UserID)
	if err != nil {
		return request.Request{}, user.User{}, err
	}
	return req, requester, nil
}

// Get implements RequestHandler.
func (h *requestHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	req, requester, err := h.loadRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !user.CanViewRequestOf(actor, requester) {
		response.HandleError(w, user.ErrInsufficientPermissions)
		return
	}

	response.Success(w, request.ToResponse(req))
}

// Approve implements RequestHandler.
func (h *requestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, request.RequestStatusApproved, "Request approved")
}

// Reject implements RequestHandler.
func (h *requestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, request.RequestStatusRejected, "Request rejected")
}

func (h *requestHandlerImpl) resolve(w http.ResponseWriter, r *http.Request, status request.RequestStatus, message string) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	req, requester, err := h.loadRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !user.CanResolveRequestOf(actor, requester) {
		response.HandleError(w, user.ErrNotRequestersSupervisor)
		return
	}

	resolved, err := h.requestService.UpdateRequestStatus(r.Context(), req.ID, status, actor.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, request.ToResponse(resolved))
}
