package repositories

import (
	"context"

	"gorm.io/gorm"

	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/core/domain"
)

// problemRepository implements ProblemRepository interface
type problemRepository struct {
	db *gorm.DB
}

// NewProblemRepository creates a new problem repository
func NewProblemRepository(db *gorm.DB) ProblemRepository {
	return &problemRepository{db: db}
}

func (r *problemRepository) Create(ctx context.Context, p *models.Problem) error {
	return translateError(r.db.WithContext(ctx).Create(p).Error)
}

func (r *problemRepository) GetByID(ctx context.Context, id uint) (*models.Problem, error) {
	var problem models.Problem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&problem).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &problem, nil
}

func (r *problemRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Problem, int64, error) {
	var problems []*models.Problem
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Problem{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&problems).Error
	if err != nil {
		return nil, 0, err
	}

	return problems, total, nil
}

func (r *problemRepository) ListAll(ctx context.Context, offset, limit int) ([]*models.Problem, int64, error) {
	var problems []*models.Problem
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Problem{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&problems).Error
	if err != nil {
		return nil, 0, err
	}

	return problems, total, nil
}

func (r *problemRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Problem{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
