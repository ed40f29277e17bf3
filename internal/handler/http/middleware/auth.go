package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type userCtxKey struct{}

// AuthRequired rejects requests without a valid access token and stores the
// acting user rebuilt from its claims in the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				if errors.Is(err, jwtauth.ErrExpired) {
					response.HandleError(w, auth.ErrTokenExpired)
					return
				}
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			actor, err := jwt.UserFromClaims(claims)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), actor)))
		}
		return http.HandlerFunc(hfn)
	}
}

// WithUser returns a copy of ctx carrying u as the acting user.
func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the acting user stored by AuthRequired.
func UserFromContext(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(user.User)
	return u, ok
}
