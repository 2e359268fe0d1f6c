package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/core/domain"
)

// surveyRepository implements SurveyRepository interface
type surveyRepository struct {
	db *gorm.DB
}

// NewSurveyRepository creates a new survey repository
func NewSurveyRepository(db *gorm.DB) SurveyRepository {
	return &surveyRepository{db: db}
}

// Create creates a new survey
func (r *surveyRepository) Create(ctx context.Context, survey *models.Survey) error {
	return translateError(r.db.WithContext(ctx).Create(survey).Error)
}

// GetByID gets a survey by ID
func (r *surveyRepository) GetByID(ctx context.Context, id uint) (*models.Survey, error) {
	var survey models.Survey
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&survey).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &survey, nil
}

// Update updates a survey
func (r *surveyRepository) Update(ctx context.Context, survey *models.Survey) error {
	return translateError(r.db.WithContext(ctx).Save(survey).Error)
}

// Delete deletes a survey
func (r *surveyRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Survey{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lists surveys with pagination, newest first
func (r *surveyRepository) List(ctx context.Context, offset, limit int) ([]*models.Survey, int64, error) {
	var surveys []*models.Survey
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Survey{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&surveys).Error
	if err != nil {
		return nil, 0, err
	}

	return surveys, total, nil
}

// ListByStatus lists surveys with the given status
func (r *surveyRepository) ListByStatus(ctx context.Context, status string) ([]*models.Survey, error) {
	var surveys []*models.Survey
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("start_date DESC").
		Find(&surveys).Error
	if err != nil {
		return nil, err
	}
	return surveys, nil
}

// CompleteExpired marks active surveys whose end date has passed as
// completed and returns how many rows changed
func (r *surveyRepository) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Survey{}).
		Where("status = ? AND end_date < ?", models.SurveyStatusActive, now).
		Update("status", models.SurveyStatusCompleted)
	return result.RowsAffected, result.Error
}
