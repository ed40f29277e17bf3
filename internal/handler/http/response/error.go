package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/errs"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())

	// Error kinds shared by every domain package
	case errors.Is(err, errs.ErrStorageUnavailable):
		slog.Error("storage unavailable", slog.Any("error", err))
		ServiceUnavailable(w, "Storage is temporarily unavailable")
	case errors.Is(err, errs.ErrNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, errs.ErrConflict):
		Conflict(w, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		Forbidden(w, err.Error())

	// Default
	default:
		slog.Error("unhandled error", slog.Any("error", err))
		InternalServerError(w, "An unexpected error occurred")
	}
}
