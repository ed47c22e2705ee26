package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/routelogpro/routelogpro/internal/auth"
)

func newTestService() *auth.Service {
	return auth.NewService(auth.ServiceConfig{
		JWTService: auth.NewJWTService(auth.JWTConfig{
			SigningKey: "test-secret-key-for-testing-only",
			Issuer:     "https://api.routelogpro.com",
			Audience:   "routelogpro-api",
		}),
		UserRepo:    auth.NewInMemoryUserRepository(),
		RefreshRepo: auth.NewInMemoryRefreshTokenRepository(),
		BcryptCost:  bcrypt.MinCost,
	})
}

func registerRequest() *auth.RegisterRequest {
	return &auth.RegisterRequest{
		Username:        "driver1",
		Email:           "driver1@example.com",
		FirstName:       "Sam",
		LastName:        "Carter",
		Password:        "hunter2hunter2",
		ConfirmPassword: "hunter2hunter2",
	}
}

func TestService_Register(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	require.NotNil(t, resp.User)
	assert.Equal(t, "driver1", resp.User.Username)
	assert.Contains(t, resp.User.ID, "usr_")
	assert.Empty(t, resp.User.PasswordHash, "hash must not leak into responses")

	// The access token authenticates as the new user.
	userID, err := svc.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
}

func TestService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*auth.RegisterRequest)
	}{
		{"missing username", func(r *auth.RegisterRequest) { r.Username = "" }},
		{"short password", func(r *auth.RegisterRequest) { r.Password = "short"; r.ConfirmPassword = "short" }},
		{"password mismatch", func(r *auth.RegisterRequest) { r.ConfirmPassword = "different-password" }},
		{"bad email", func(r *auth.RegisterRequest) { r.Email = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()
			req := registerRequest()
			tt.mutate(req)

			_, err := svc.Register(context.Background(), req)
			assert.Error(t, err)
		})
	}
}

func TestService_RegisterUsernameTaken(t *testing.T) {
	svc := newTestService()

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, auth.ErrUsernameTaken)
}

func TestService_Login(t *testing.T) {
	svc := newTestService()
	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &auth.LoginRequest{
		Username: "driver1",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "driver1", resp.User.Username)
}

func TestService_LoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService()
	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &auth.LoginRequest{
		Username: "driver1",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &auth.LoginRequest{
		Username: "nobody",
		Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials,
		"unknown user and wrong password must be indistinguishable")
}

func TestService_RefreshRotatesToken(t *testing.T) {
	svc := newTestService()
	first, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	second, err := svc.RefreshAccessToken(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The rotated-out token is no longer usable.
	_, err = svc.RefreshAccessToken(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)

	// The new one is.
	_, err = svc.RefreshAccessToken(context.Background(), second.RefreshToken)
	assert.NoError(t, err)
}

func TestService_RevokeAllTokens(t *testing.T) {
	svc := newTestService()
	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAllTokens(context.Background(), resp.User.ID))

	_, err = svc.RefreshAccessToken(context.Background(), resp.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}
