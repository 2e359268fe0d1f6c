package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/adapters/persistence/repositories"
	"orgpulse-survey/internal/core/domain"
	"orgpulse-survey/internal/core/services"
	"orgpulse-survey/internal/pkg/jwt"
)

type authDeps struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
}

func newAuthService(t *testing.T) (*services.AuthService, *authDeps) {
	t.Helper()

	db := newTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	logRepo := repositories.NewLoginLogRepository(db)

	svc := services.NewAuthService(userRepo, logRepo, testConfig())
	return svc, &authDeps{db: db, userRepo: userRepo}
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, &services.RegisterInput{
		Email:    "alice@example.com",
		Password: "Password123",
		Name:     "Alice",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "alice@example.com", result.User.Email)
	assert.Equal(t, models.RoleNone, result.User.Role)
	assert.NotEmpty(t, result.Token)

	// The token carries the new identity.
	claims := jwt.Verify(result.Token, "test-secret")
	require.NotNil(t, claims)
	assert.Equal(t, result.User.ID, claims.UserID)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, &services.RegisterInput{
			Email:    "alice@example.com",
			Password: "Password123",
			Name:     "Alice Again",
		})
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := svc.Register(ctx, &services.RegisterInput{
			Email:    "bob@example.com",
			Password: "weak",
			Name:     "Bob",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidPassword)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	svc, deps := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &services.RegisterInput{
		Email:    "carol@example.com",
		Password: "Password123",
		Name:     "Carol",
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		result, err := svc.Login(ctx, &services.LoginInput{
			Email:    "carol@example.com",
			Password: "Password123",
		})
		require.NoError(t, err)
		assert.Equal(t, "carol@example.com", result.User.Email)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &services.LoginInput{
			Email:    "carol@example.com",
			Password: "Password124",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &services.LoginInput{
			Email:    "ghost@example.com",
			Password: "Password123",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	// Every attempt above left a login_logs row.
	var attempts int64
	require.NoError(t, deps.db.Model(&models.LoginLog{}).Count(&attempts).Error)
	assert.Equal(t, int64(3), attempts)

	var failures int64
	require.NoError(t, deps.db.Model(&models.LoginLog{}).Where("succeeded = ?", false).Count(&failures).Error)
	assert.Equal(t, int64(2), failures)
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, &services.RegisterInput{
		Email:    "dave@example.com",
		Password: "Password123",
		Name:     "Dave",
	})
	require.NoError(t, err)
	userID := result.User.ID

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, userID, "Wrong12345", "NewPassword1")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("weak new password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, userID, "Password123", "weak")
		assert.ErrorIs(t, err, domain.ErrInvalidPassword)
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(ctx, userID, "Password123", "NewPassword1"))

		_, err := svc.Login(ctx, &services.LoginInput{
			Email:    "dave@example.com",
			Password: "NewPassword1",
		})
		assert.NoError(t, err)

		_, err = svc.Login(ctx, &services.LoginInput{
			Email:    "dave@example.com",
			Password: "Password123",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthService_PasswordResetFlow(t *testing.T) {
	t.Parallel()

	svc, deps := newAuthService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, &services.RegisterInput{
		Email:    "erin@example.com",
		Password: "Password123",
		Name:     "Erin",
	})
	require.NoError(t, err)
	userID := result.User.ID

	t.Run("unknown email", func(t *testing.T) {
		err := svc.RequestPasswordReset(ctx, "nobody@example.com", "NewPassword1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("approve applies the new password", func(t *testing.T) {
		require.NoError(t, svc.RequestPasswordReset(ctx, "erin@example.com", "NewPassword1"))

		user, err := deps.userRepo.GetByID(ctx, userID)
		require.NoError(t, err)
		assert.True(t, user.HasPendingReset())

		// Old password still works until approval.
		_, err = svc.Login(ctx, &services.LoginInput{Email: "erin@example.com", Password: "Password123"})
		require.NoError(t, err)

		require.NoError(t, svc.ApprovePasswordReset(ctx, userID))

		_, err = svc.Login(ctx, &services.LoginInput{Email: "erin@example.com", Password: "NewPassword1"})
		assert.NoError(t, err)
		_, err = svc.Login(ctx, &services.LoginInput{Email: "erin@example.com", Password: "Password123"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("approve without pending", func(t *testing.T) {
		assert.ErrorIs(t, svc.ApprovePasswordReset(ctx, userID), domain.ErrNoPendingReset)
	})

	t.Run("reject discards the pending hash", func(t *testing.T) {
		require.NoError(t, svc.RequestPasswordReset(ctx, "erin@example.com", "AnotherPass9"))
		require.NoError(t, svc.RejectPasswordReset(ctx, userID))

		user, err := deps.userRepo.GetByID(ctx, userID)
		require.NoError(t, err)
		assert.False(t, user.HasPendingReset())

		// The rejected password never becomes valid.
		_, err = svc.Login(ctx, &services.LoginInput{Email: "erin@example.com", Password: "AnotherPass9"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
