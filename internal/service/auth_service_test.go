package service

import (
	"context"
	"testing"
	"time"

	"kharcha/internal/dto"
	"kharcha/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthServiceForTest() (*AuthService, *fakeUserStore) {
	store := newFakeUserStore()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(store, jwtManager, zap.NewNop()), store
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "ali",
		Email:    "ali@example.com",
		Password: "super-secret-pw",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.AccessToken)
	assert.NotEmpty(t, reg.RefreshToken)
	assert.Equal(t, "Bearer", reg.TokenType)
	assert.Equal(t, "ali", reg.User.Username)

	login, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "ali@example.com",
		Password: "super-secret-pw",
	})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	req := &dto.RegisterRequest{Username: "ali", Email: "ali@example.com", Password: "super-secret-pw"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "ali", Email: "ali@example.com", Password: "super-secret-pw",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "ali@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "ali", Email: "ali@example.com", Password: "super-secret-pw",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, reg.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
