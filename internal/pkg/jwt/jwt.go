package jwt

import (
	"errors"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(u user.User) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(u user.User) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = j.now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":       u.ID,
		"email":         u.Email,
		"name":          u.Name,
		"role":          string(u.Role),
		"supervisor_id": j.returnValueOrNil(u.SupervisorID),
		"type":          "access",
		"exp":           expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) returnValueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	} else {
		return *value
	}
}

var ErrMissingClaim = errors.New("token is missing a required claim")

// UserFromClaims rebuilds the acting user from access token claims.
func UserFromClaims(claims map[string]interface{}) (user.User, error) {
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return user.User{}, ErrMissingClaim
	}

	id, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if id == "" || !user.Role(role).IsValid() {
		return user.User{}, ErrMissingClaim
	}

	u := user.User{
		ID:   id,
		Role: user.Role(role),
	}
	u.Email, _ = claims["email"].(string)
	u.Name, _ = claims["name"].(string)
	if sid, ok := claims["supervisor_id"].(string); ok && sid != "" {
		u.SupervisorID = &sid
	}
	return u, nil
}
