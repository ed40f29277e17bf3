package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
)

func newTestAuthService(t *testing.T) (auth.AuthService, jwt.Service) {
	t.Helper()
	data := fixtures.Demo(time.Now(), time.UTC)
	require.NoError(t, fixtures.HashDemoPasswords(data.Users, bcrypt.MinCost))

	jwtService := jwt.NewJWTService(testSecret, testAccessExp)
	store := memory.NewSeededStore(data)
	return NewAuthService(store.Users(), jwtService, logger.Discard()), jwtService
}

// Test Login with valid credentials
func TestAuthService_Login_Success(t *testing.T) {
	svc, jwtService := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, auth.LoginRequest{Email: "suzuki@example.com", Password: fixtures.DemoPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, time.Now().Unix())
	assert.Equal(t, fixtures.SupervisorID, resp.User.ID)
	assert.Equal(t, "Supervisor", resp.User.Role)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	claims, err := token.AsMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, fixtures.SupervisorID, claims["user_id"])
	assert.Equal(t, fixtures.AdminID, claims["supervisor_id"])
}

func TestAuthService_Login_CaseInsensitiveEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "Tanaka@Example.com", Password: fixtures.DemoPassword})
	assert.NoError(t, err)
}

// Test Login with wrong password or unknown email
func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, auth.LoginRequest{Email: "tanaka@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: fixtures.DemoPassword})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_NoPasswordHash(t *testing.T) {
	store := memory.NewStore()
	_, err := store.Users().Create(context.Background(), user.User{ID: "u", Email: "sso@example.com", Role: user.RoleEmployee})
	require.NoError(t, err)
	svc := NewAuthService(store.Users(), jwt.NewJWTService(testSecret, testAccessExp), logger.Discard())

	_, err = svc.Login(context.Background(), auth.LoginRequest{Email: "sso@example.com", Password: "anything"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "email")
	assert.Contains(t, verrs.ToMap(), "password")
}

func TestAuthService_Me(t *testing.T) {
	svc, _ := newTestAuthService(t)

	u, err := svc.Me(context.Background(), fixtures.AdminID)
	require.NoError(t, err)
	assert.Equal(t, "高橋 優子", u.Name)

	_, err = svc.Me(context.Background(), "ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
