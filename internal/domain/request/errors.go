package request

import "github.com/cmlabs-hris/dakokun-backend-go/internal/domain/errs"

var (
	ErrRequestNotFound = errs.NotFound("request not found")
	ErrAlreadyResolved = errs.Conflict("request has already been approved or rejected")
)
