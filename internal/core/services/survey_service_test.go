package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/adapters/persistence/repositories"
	"orgpulse-survey/internal/core/domain"
	"orgpulse-survey/internal/core/services"
)

func newSurveyService(t *testing.T) (*services.SurveyService, repositories.SummaryRepository) {
	t.Helper()

	db := newTestDB(t)
	surveyRepo := repositories.NewSurveyRepository(db)
	summaryRepo := repositories.NewSummaryRepository(db)

	return services.NewSurveyService(surveyRepo, summaryRepo), summaryRepo
}

func openSurvey(surveyType string) *services.SurveyInput {
	now := time.Now()
	return &services.SurveyInput{
		Name:       "Test Survey",
		StartDate:  now.AddDate(0, 0, -1),
		EndDate:    now.AddDate(0, 0, 7),
		Status:     models.SurveyStatusActive,
		SurveyType: surveyType,
	}
}

func TestSurveyService_CreateValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newSurveyService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*services.SurveyInput)
	}{
		{"empty name", func(in *services.SurveyInput) { in.Name = "" }},
		{"end before start", func(in *services.SurveyInput) { in.EndDate = in.StartDate.AddDate(0, 0, -5) }},
		{"bad status", func(in *services.SurveyInput) { in.Status = "paused" }},
		{"bad type", func(in *services.SurveyInput) { in.SurveyType = "wellness" }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			input := openSurvey(models.SurveyTypeOrganizational)
			tc.mutate(input)

			_, err := svc.Create(ctx, input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	survey, err := svc.Create(ctx, openSurvey(models.SurveyTypeOrganizational))
	require.NoError(t, err)
	assert.NotZero(t, survey.ID)
}

func TestSurveyService_ListActive(t *testing.T) {
	t.Parallel()

	svc, _ := newSurveyService(t)
	ctx := context.Background()
	now := time.Now()

	// Open right now.
	_, err := svc.Create(ctx, openSurvey(models.SurveyTypeOrganizational))
	require.NoError(t, err)

	// Active status but the window has passed.
	_, err = svc.Create(ctx, &services.SurveyInput{
		Name:       "Past window",
		StartDate:  now.AddDate(0, -2, 0),
		EndDate:    now.AddDate(0, -1, 0),
		Status:     models.SurveyStatusActive,
		SurveyType: models.SurveyTypeGrowth,
	})
	require.NoError(t, err)

	// In window but still a draft.
	_, err = svc.Create(ctx, &services.SurveyInput{
		Name:       "Draft",
		StartDate:  now.AddDate(0, 0, -1),
		EndDate:    now.AddDate(0, 0, 7),
		Status:     models.SurveyStatusDraft,
		SurveyType: models.SurveyTypeOrganizational,
	})
	require.NoError(t, err)

	open, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Test Survey", open[0].Name)
}

func TestSurveyService_Submit(t *testing.T) {
	t.Parallel()

	svc, summaryRepo := newSurveyService(t)
	ctx := context.Background()

	org, err := svc.Create(ctx, openSurvey(models.SurveyTypeOrganizational))
	require.NoError(t, err)

	growth, err := svc.Create(ctx, openSurvey(models.SurveyTypeGrowth))
	require.NoError(t, err)

	t.Run("organizational records mean total", func(t *testing.T) {
		scores := []float64{80, 80, 80, 80, 60, 60, 60, 60}
		require.NoError(t, svc.Submit(ctx, 1, org.ID, &services.SubmitInput{Scores: scores}))

		summary, err := summaryRepo.GetOrganizational(ctx, 1, org.ID)
		require.NoError(t, err)
		assert.Equal(t, 80.0, summary.Category1)
		assert.Equal(t, 60.0, summary.Category8)
		assert.InDelta(t, 70.0, summary.TotalScore, 0.001)
	})

	t.Run("resubmission overwrites", func(t *testing.T) {
		scores := []float64{100, 100, 100, 100, 100, 100, 100, 100}
		require.NoError(t, svc.Submit(ctx, 1, org.ID, &services.SubmitInput{Scores: scores}))

		summary, err := summaryRepo.GetOrganizational(ctx, 1, org.ID)
		require.NoError(t, err)
		assert.Equal(t, 100.0, summary.TotalScore)
	})

	t.Run("growth takes five categories", func(t *testing.T) {
		require.NoError(t, svc.Submit(ctx, 1, growth.ID, &services.SubmitInput{
			Scores: []float64{10, 20, 30, 40, 50},
		}))

		summary, err := summaryRepo.GetGrowth(ctx, 1, growth.ID)
		require.NoError(t, err)
		assert.InDelta(t, 30.0, summary.TotalScore, 0.001)
	})

	t.Run("wrong score count", func(t *testing.T) {
		err := svc.Submit(ctx, 1, org.ID, &services.SubmitInput{Scores: []float64{50, 50, 50}})
		assert.ErrorIs(t, err, domain.ErrInvalidScores)

		// Growth count against an organizational survey.
		err = svc.Submit(ctx, 1, org.ID, &services.SubmitInput{Scores: []float64{50, 50, 50, 50, 50}})
		assert.ErrorIs(t, err, domain.ErrInvalidScores)
	})

	t.Run("out of range score", func(t *testing.T) {
		err := svc.Submit(ctx, 1, growth.ID, &services.SubmitInput{
			Scores: []float64{10, 20, 30, 40, 101},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidScores)

		err = svc.Submit(ctx, 1, growth.ID, &services.SubmitInput{
			Scores: []float64{-1, 20, 30, 40, 50},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidScores)
	})

	t.Run("closed survey", func(t *testing.T) {
		now := time.Now()
		closed, err := svc.Create(ctx, &services.SurveyInput{
			Name:       "Closed",
			StartDate:  now.AddDate(0, -2, 0),
			EndDate:    now.AddDate(0, -1, 0),
			Status:     models.SurveyStatusActive,
			SurveyType: models.SurveyTypeOrganizational,
		})
		require.NoError(t, err)

		err = svc.Submit(ctx, 1, closed.ID, &services.SubmitInput{
			Scores: []float64{50, 50, 50, 50, 50, 50, 50, 50},
		})
		assert.ErrorIs(t, err, domain.ErrSurveyClosed)
	})

	t.Run("missing survey", func(t *testing.T) {
		err := svc.Submit(ctx, 1, 9999, &services.SubmitInput{Scores: []float64{50}})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
