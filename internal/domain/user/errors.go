package user

import "github.com/cmlabs-hris/dakokun-backend-go/internal/domain/errs"

var (
	ErrUserNotFound             = errs.NotFound("user not found")
	ErrSupervisorAccessRequired = errs.Forbidden("supervisor access required")
	ErrAdminAccessRequired      = errs.Forbidden("admin access required")
	ErrInsufficientPermissions  = errs.Forbidden("insufficient permissions")
	ErrNotRequestersSupervisor  = errs.Forbidden("only the requester's supervisor or an admin can resolve this request")
)
