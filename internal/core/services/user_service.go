package services

import (
	"context"

	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/adapters/persistence/repositories"
	"orgpulse-survey/internal/config"
	"orgpulse-survey/internal/core/domain"
)

// UserService handles user administration
type UserService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, cfg *config.Config) *UserService {
	return &UserService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// UpdateUserInput represents admin-editable user fields
type UpdateUserInput struct {
	Name         *string `json:"name"`
	Role         *string `json:"role"`
	DepartmentID *uint   `json:"department_id"`
	JobID        *uint   `json:"job_id"`
}

// List returns users with pagination. The reserved system account id
// is excluded by primary-key filter.
func (s *UserService) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, offset, limit, s.cfg.SystemAccount.ID)
}

// Get gets a user by ID
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Update applies admin edits to a user
func (s *UserService) Update(ctx context.Context, id uint, input *UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		switch *input.Role {
		case models.RoleAdmin, models.RoleEmployee, models.RoleNone:
			user.Role = *input.Role
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if input.DepartmentID != nil {
		user.DepartmentID = input.DepartmentID
	}
	if input.JobID != nil {
		user.JobID = input.JobID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, id)
}

// Delete removes a user and all dependent rows. The reserved system
// account cannot be deleted.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if id == s.cfg.SystemAccount.ID {
		return domain.ErrForbidden
	}
	return s.userRepo.Delete(ctx, id)
}
