package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/adapters/persistence/repositories"
	"orgpulse-survey/internal/config"
	"orgpulse-survey/internal/core/domain"
	"orgpulse-survey/internal/pkg/jwt"
	"orgpulse-survey/internal/pkg/password"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo     repositories.UserRepository
	loginLogRepo repositories.LoginLogRepository
	cfg          *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	loginLogRepo repositories.LoginLogRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		loginLogRepo: loginLogRepo,
		cfg:          cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	DepartmentID *uint  `json:"department_id"`
	JobID        *uint  `json:"job_id"`
}

// LoginInput represents login input
type LoginInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User  *models.UserResponse `json:"user"`
	Token string               `json:"token"`
}

// Register registers a new user. The password policy is checked
// before any database write.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	// 1. Validate password policy
	if !password.Validate(input.Password) {
		return nil, domain.ErrInvalidPassword
	}

	// 2. Check if email already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	// 3. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 4. Create user (role starts unprivileged until an admin assigns one)
	user := &models.User{
		Email:        input.Email,
		Password:     hashedPassword,
		Name:         input.Name,
		Role:         models.RoleNone,
		DepartmentID: input.DepartmentID,
		JobID:        input.JobID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, err
	}

	// 5. Generate token
	token, err := jwt.Generate(user.ID, user.Email, user.Role, s.cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}

	log.Printf("User registered: %s (ID: %d)", user.Email, user.ID)

	return &AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}, nil
}

// Login authenticates a user. Every attempt, successful or not, is
// recorded in login_logs.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.recordLogin(ctx, nil, input, false)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password
	if !password.Verify(input.Password, user.Password) {
		s.recordLogin(ctx, &user.ID, input, false)
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Record successful attempt
	s.recordLogin(ctx, &user.ID, input, true)

	// 4. Generate token
	token, err := jwt.Generate(user.ID, user.Email, user.Role, s.cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}

	log.Printf("User logged in: %s", user.Email)

	return &AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}, nil
}

// recordLogin writes a login_logs row; failures only get logged
func (s *AuthService) recordLogin(ctx context.Context, userID *uint, input *LoginInput, succeeded bool) {
	entry := &models.LoginLog{
		SessionID: uuid.New().String(),
		UserID:    userID,
		Email:     input.Email,
		Succeeded: succeeded,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
	}
	if err := s.loginLogRepo.Create(ctx, entry); err != nil {
		log.Printf("Warning: failed to record login attempt for %s: %v", input.Email, err)
	}
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ChangePassword changes a user's password after verifying the
// current one
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, newPassword string) error {
	if !password.Validate(newPassword) {
		return domain.ErrInvalidPassword
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !password.Verify(current, user.Password) {
		return domain.ErrInvalidCredentials
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	user.Password = hash
	return s.userRepo.Update(ctx, user)
}

// RequestPasswordReset stores the desired new password as a pending
// hash awaiting admin approval
func (s *AuthService) RequestPasswordReset(ctx context.Context, email, newPassword string) error {
	if !password.Validate(newPassword) {
		return domain.ErrInvalidPassword
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	user.PendingPassword = &hash
	user.PasswordResetRequestedAt = &now

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("Password reset requested: %s", user.Email)
	return nil
}

// ApprovePasswordReset applies a pending reset
func (s *AuthService) ApprovePasswordReset(ctx context.Context, userID uint) error {
	if err := s.userRepo.ApproveReset(ctx, userID); err != nil {
		return err
	}

	log.Printf("Password reset approved for user %d", userID)
	return nil
}

// RejectPasswordReset discards a pending reset
func (s *AuthService) RejectPasswordReset(ctx context.Context, userID uint) error {
	return s.userRepo.ClearPendingReset(ctx, userID)
}
