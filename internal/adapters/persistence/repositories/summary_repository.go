package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"orgpulse-survey/internal/adapters/persistence/models"
)

// summaryRepository implements SummaryRepository interface
type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{db: db}
}

// UpsertOrganizational inserts or replaces the (user, survey) row
func (r *summaryRepository) UpsertOrganizational(ctx context.Context, summary *models.OrganizationalSurveySummary) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "survey_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"category1", "category2", "category3", "category4",
			"category5", "category6", "category7", "category8",
			"total_score", "updated_at",
		}),
	}).Create(summary).Error
}

// UpsertGrowth inserts or replaces the (user, survey) row
func (r *summaryRepository) UpsertGrowth(ctx context.Context, summary *models.GrowthSurveySummary) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "survey_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"category1", "category2", "category3", "category4",
			"category5", "total_score", "updated_at",
		}),
	}).Create(summary).Error
}

// GetOrganizational gets the summary row for (user, survey)
func (r *summaryRepository) GetOrganizational(ctx context.Context, userID, surveyID uint) (*models.OrganizationalSurveySummary, error) {
	var summary models.OrganizationalSurveySummary
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND survey_id = ?", userID, surveyID).
		First(&summary).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &summary, nil
}

// GetGrowth gets the summary row for (user, survey)
func (r *summaryRepository) GetGrowth(ctx context.Context, userID, surveyID uint) (*models.GrowthSurveySummary, error) {
	var summary models.GrowthSurveySummary
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND survey_id = ?", userID, surveyID).
		First(&summary).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &summary, nil
}
