package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/adapters/persistence/repositories"
	"orgpulse-survey/internal/core/domain"
)

func TestSummaryRepository_UpsertOrganizational(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewSummaryRepository(db)
	ctx := context.Background()

	first := &models.OrganizationalSurveySummary{
		UserID:    1,
		SurveyID:  1,
		Category1: 50, Category2: 50, Category3: 50, Category4: 50,
		Category5: 50, Category6: 50, Category7: 50, Category8: 50,
		TotalScore: 50,
	}
	require.NoError(t, repo.UpsertOrganizational(ctx, first))

	// Resubmitting overwrites the same (user, survey) row.
	second := &models.OrganizationalSurveySummary{
		UserID:    1,
		SurveyID:  1,
		Category1: 80, Category2: 80, Category3: 80, Category4: 80,
		Category5: 80, Category6: 80, Category7: 80, Category8: 80,
		TotalScore: 80,
	}
	require.NoError(t, repo.UpsertOrganizational(ctx, second))

	var count int64
	require.NoError(t, db.Model(&models.OrganizationalSurveySummary{}).
		Where("user_id = ? AND survey_id = ?", 1, 1).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetOrganizational(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 80.0, got.Category1)
	assert.Equal(t, 80.0, got.TotalScore)
}

func TestSummaryRepository_UpsertGrowth(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewSummaryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpsertGrowth(ctx, &models.GrowthSurveySummary{
		UserID: 2, SurveyID: 3,
		Category1: 10, Category2: 20, Category3: 30, Category4: 40, Category5: 50,
		TotalScore: 30,
	}))
	require.NoError(t, repo.UpsertGrowth(ctx, &models.GrowthSurveySummary{
		UserID: 2, SurveyID: 3,
		Category1: 100, Category2: 100, Category3: 100, Category4: 100, Category5: 100,
		TotalScore: 100,
	}))

	got, err := repo.GetGrowth(ctx, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.TotalScore)

	// Distinct pairs stay distinct rows.
	require.NoError(t, repo.UpsertGrowth(ctx, &models.GrowthSurveySummary{
		UserID: 2, SurveyID: 4, TotalScore: 55,
	}))

	var count int64
	require.NoError(t, db.Model(&models.GrowthSurveySummary{}).Where("user_id = ?", 2).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestSummaryRepository_GetMissing(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewSummaryRepository(db)
	ctx := context.Background()

	_, err := repo.GetOrganizational(ctx, 1, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetGrowth(ctx, 1, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
