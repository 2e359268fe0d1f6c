package services

import (
	"context"
	"log"
	"time"

	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/adapters/persistence/repositories"
	"orgpulse-survey/internal/core/domain"
)

// SurveyService handles survey configuration and response submission
type SurveyService struct {
	surveyRepo  repositories.SurveyRepository
	summaryRepo repositories.SummaryRepository
}

// NewSurveyService creates a new survey service
func NewSurveyService(
	surveyRepo repositories.SurveyRepository,
	summaryRepo repositories.SummaryRepository,
) *SurveyService {
	return &SurveyService{
		surveyRepo:  surveyRepo,
		summaryRepo: summaryRepo,
	}
}

// SurveyInput represents survey create/update input
type SurveyInput struct {
	Name       string    `json:"name"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Status     string    `json:"status"`
	SurveyType string    `json:"survey_type"`
}

func (in *SurveyInput) validate() error {
	if in.Name == "" {
		return domain.ErrInvalidInput
	}
	if in.EndDate.Before(in.StartDate) {
		return domain.ErrInvalidInput
	}
	switch in.Status {
	case models.SurveyStatusDraft, models.SurveyStatusActive, models.SurveyStatusCompleted:
	default:
		return domain.ErrInvalidInput
	}
	switch in.SurveyType {
	case models.SurveyTypeOrganizational, models.SurveyTypeGrowth:
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// Create creates a new survey
func (s *SurveyService) Create(ctx context.Context, input *SurveyInput) (*models.Survey, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	survey := &models.Survey{
		Name:       input.Name,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Status:     input.Status,
		SurveyType: input.SurveyType,
	}

	if err := s.surveyRepo.Create(ctx, survey); err != nil {
		return nil, err
	}

	return survey, nil
}

// Update updates an existing survey
func (s *SurveyService) Update(ctx context.Context, id uint, input *SurveyInput) (*models.Survey, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	survey, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	survey.Name = input.Name
	survey.StartDate = input.StartDate
	survey.EndDate = input.EndDate
	survey.Status = input.Status
	survey.SurveyType = input.SurveyType

	if err := s.surveyRepo.Update(ctx, survey); err != nil {
		return nil, err
	}

	return survey, nil
}

// Delete deletes a survey
func (s *SurveyService) Delete(ctx context.Context, id uint) error {
	return s.surveyRepo.Delete(ctx, id)
}

// Get gets a survey by ID
func (s *SurveyService) Get(ctx context.Context, id uint) (*models.Survey, error) {
	return s.surveyRepo.GetByID(ctx, id)
}

// List lists surveys with pagination
func (s *SurveyService) List(ctx context.Context, offset, limit int) ([]*models.Survey, int64, error) {
	return s.surveyRepo.List(ctx, offset, limit)
}

// ListActive lists surveys currently accepting responses. The date
// window is evaluated per request, never cached as survey state.
func (s *SurveyService) ListActive(ctx context.Context) ([]*models.Survey, error) {
	surveys, err := s.surveyRepo.ListByStatus(ctx, models.SurveyStatusActive)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	open := make([]*models.Survey, 0, len(surveys))
	for _, survey := range surveys {
		if survey.AcceptsResponses(now) {
			open = append(open, survey)
		}
	}

	return open, nil
}

// SubmitInput represents a survey response submission
type SubmitInput struct {
	Scores []float64 `json:"scores"`
}

// Submit records a user's response to a survey as a summary row. The
// category count is fixed per survey type; the total is the mean of
// the categories.
func (s *SurveyService) Submit(ctx context.Context, userID, surveyID uint, input *SubmitInput) error {
	// 1. Gate on status + date window, evaluated now
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return err
	}
	if !survey.AcceptsResponses(time.Now()) {
		return domain.ErrSurveyClosed
	}

	// 2. Validate scores
	if len(input.Scores) != survey.CategoryCount() {
		return domain.ErrInvalidScores
	}
	var total float64
	for _, score := range input.Scores {
		if score < 0 || score > 100 {
			return domain.ErrInvalidScores
		}
		total += score
	}
	total /= float64(len(input.Scores))

	// 3. Upsert the (user, survey) summary row
	switch survey.SurveyType {
	case models.SurveyTypeGrowth:
		err = s.summaryRepo.UpsertGrowth(ctx, &models.GrowthSurveySummary{
			UserID:     userID,
			SurveyID:   surveyID,
			Category1:  input.Scores[0],
			Category2:  input.Scores[1],
			Category3:  input.Scores[2],
			Category4:  input.Scores[3],
			Category5:  input.Scores[4],
			TotalScore: total,
		})
	default:
		err = s.summaryRepo.UpsertOrganizational(ctx, &models.OrganizationalSurveySummary{
			UserID:     userID,
			SurveyID:   surveyID,
			Category1:  input.Scores[0],
			Category2:  input.Scores[1],
			Category3:  input.Scores[2],
			Category4:  input.Scores[3],
			Category5:  input.Scores[4],
			Category6:  input.Scores[5],
			Category7:  input.Scores[6],
			Category8:  input.Scores[7],
			TotalScore: total,
		})
	}
	if err != nil {
		return err
	}

	log.Printf("Survey response recorded: user=%d survey=%d", userID, surveyID)
	return nil
}

// MyOrganizationalSummary returns the caller's organizational summary for a survey
func (s *SurveyService) MyOrganizationalSummary(ctx context.Context, userID, surveyID uint) (*models.OrganizationalSurveySummary, error) {
	return s.summaryRepo.GetOrganizational(ctx, userID, surveyID)
}

// MyGrowthSummary returns the caller's growth summary for a survey
func (s *SurveyService) MyGrowthSummary(ctx context.Context, userID, surveyID uint) (*models.GrowthSurveySummary, error) {
	return s.summaryRepo.GetGrowth(ctx, userID, surveyID)
}
