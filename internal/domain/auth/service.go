package auth

import (
	"context"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
)

// AuthService authenticates users and issues access tokens. The attendance
// and request services never call it; handlers resolve the acting user from
// the token claims.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (AccessTokenResponse, error)
	Me(ctx context.Context, userID string) (user.User, error)
}
