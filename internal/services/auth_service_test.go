package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(newTestDB(t), &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
		StaffEmails:      "editor@example.com",
	})
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(&dto.RegisterRequest{Email: "a@example.com", Username: "a", Password: "short"})
	assert.ErrorIs(t, err, ErrInvalidSignup)

	resp, err := svc.Register(&dto.RegisterRequest{Email: " Editor@Example.com ", Username: "editor", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.RefreshToken)

	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "editor", claims["username"])
	assert.Equal(t, "staff", claims["role"], "listed emails get the staff role")

	_, err = svc.Register(&dto.RegisterRequest{Email: "other@example.com", Username: "editor", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Login(&dto.LoginRequest{Email: "editor@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "EDITOR@example.com", Password: "password123"})
	assert.NoError(t, err)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc := newAuthService(t)
	resp, err := svc.Register(&dto.RegisterRequest{Email: "r@example.com", Username: "r", Password: "password123"})
	require.NoError(t, err)

	next, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, next.RefreshToken)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken, "a refresh token works once")

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: next.RefreshToken}))
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: next.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDeleteAccount(t *testing.T) {
	svc := newAuthService(t)
	resp, err := svc.Register(&dto.RegisterRequest{Email: "d@example.com", Username: "d", Password: "password123"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteAccount(resp.User.ID, "nope"), ErrInvalidCredentials)
	require.NoError(t, svc.DeleteAccount(resp.User.ID, "password123"))

	_, err = svc.UserByID(resp.User.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
