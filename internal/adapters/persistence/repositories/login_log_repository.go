package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"orgpulse-survey/internal/adapters/persistence/models"
)

// loginLogRepository implements LoginLogRepository interface
type loginLogRepository struct {
	db *gorm.DB
}

// NewLoginLogRepository creates a new login log repository
func NewLoginLogRepository(db *gorm.DB) LoginLogRepository {
	return &loginLogRepository{db: db}
}

// Create records a login attempt
func (r *loginLogRepository) Create(ctx context.Context, l *models.LoginLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// DeleteOlderThan removes logs created before the cutoff and returns
// how many rows were removed
func (r *loginLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.LoginLog{})
	return result.RowsAffected, result.Error
}
