package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/adapters/persistence/repositories"
	"orgpulse-survey/internal/core/domain"
)

func TestSurveyRepository_CRUD(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewSurveyRepository(db)
	ctx := context.Background()

	survey := &models.Survey{
		Name:       "Q3 Assessment",
		StartDate:  time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		Status:     models.SurveyStatusActive,
		SurveyType: models.SurveyTypeOrganizational,
	}
	require.NoError(t, repo.Create(ctx, survey))

	got, err := repo.GetByID(ctx, survey.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q3 Assessment", got.Name)

	got.Status = models.SurveyStatusCompleted
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByID(ctx, survey.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SurveyStatusCompleted, updated.Status)

	require.NoError(t, repo.Delete(ctx, survey.ID))
	_, err = repo.GetByID(ctx, survey.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, survey.ID), domain.ErrNotFound)
}

func TestSurveyRepository_CompleteExpired(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewSurveyRepository(db)
	ctx := context.Background()

	now := time.Date(2026, 8, 28, 3, 0, 0, 0, time.UTC)

	expired := &models.Survey{
		Name:       "Expired",
		StartDate:  now.AddDate(0, -2, 0),
		EndDate:    now.AddDate(0, -1, 0),
		Status:     models.SurveyStatusActive,
		SurveyType: models.SurveyTypeOrganizational,
	}
	running := &models.Survey{
		Name:       "Running",
		StartDate:  now.AddDate(0, -1, 0),
		EndDate:    now.AddDate(0, 1, 0),
		Status:     models.SurveyStatusActive,
		SurveyType: models.SurveyTypeGrowth,
	}
	draft := &models.Survey{
		Name:       "Old draft",
		StartDate:  now.AddDate(0, -3, 0),
		EndDate:    now.AddDate(0, -2, 0),
		Status:     models.SurveyStatusDraft,
		SurveyType: models.SurveyTypeOrganizational,
	}
	require.NoError(t, repo.Create(ctx, expired))
	require.NoError(t, repo.Create(ctx, running))
	require.NoError(t, repo.Create(ctx, draft))

	changed, err := repo.CompleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)

	got, err := repo.GetByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SurveyStatusCompleted, got.Status)

	got, err = repo.GetByID(ctx, running.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SurveyStatusActive, got.Status)

	// Drafts stay drafts no matter how old.
	got, err = repo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SurveyStatusDraft, got.Status)

	// Second run finds nothing left to do.
	changed, err = repo.CompleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestSurveyRepository_ListByStatus(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := repositories.NewSurveyRepository(db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Create(ctx, &models.Survey{
		Name: "A", StartDate: now, EndDate: now.AddDate(0, 1, 0),
		Status: models.SurveyStatusActive, SurveyType: models.SurveyTypeOrganizational,
	}))
	require.NoError(t, repo.Create(ctx, &models.Survey{
		Name: "B", StartDate: now, EndDate: now.AddDate(0, 1, 0),
		Status: models.SurveyStatusDraft, SurveyType: models.SurveyTypeOrganizational,
	}))

	active, err := repo.ListByStatus(ctx, models.SurveyStatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "A", active[0].Name)
}
