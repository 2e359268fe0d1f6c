package services

import (
	"context"

	"gorm.io/gorm"

	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/adapters/persistence/repositories"
)

// StatsService computes descriptive statistics over survey summary
// rows for dashboards and reports
type StatsService struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
}

// NewStatsService creates a new stats service
func NewStatsService(db *gorm.DB, userRepo repositories.UserRepository) *StatsService {
	return &StatsService{db: db, userRepo: userRepo}
}

// Scope describes row-level visibility for a caller. Non-admin
// callers see only their own rows unless ForOrganization widens the
// view to all rows; the flag has no effect for admins, who always see
// everything.
type Scope struct {
	UserID          uint
	IsAdmin         bool
	ForOrganization bool
}

// restricted reports whether queries must filter to the caller's rows
func (sc Scope) restricted() bool {
	return !sc.IsAdmin && !sc.ForOrganization
}

// OrganizationalAverages holds per-category mean scores for
// organizational surveys. Empty row sets yield zeros, never an error.
type OrganizationalAverages struct {
	Category1     float64 `json:"category1"`
	Category2     float64 `json:"category2"`
	Category3     float64 `json:"category3"`
	Category4     float64 `json:"category4"`
	Category5     float64 `json:"category5"`
	Category6     float64 `json:"category6"`
	Category7     float64 `json:"category7"`
	Category8     float64 `json:"category8"`
	TotalScore    float64 `json:"total_score"`
	ResponseCount int64   `json:"response_count"`
}

// GrowthAverages holds per-category mean scores for growth surveys
type GrowthAverages struct {
	Category1     float64 `json:"category1"`
	Category2     float64 `json:"category2"`
	Category3     float64 `json:"category3"`
	Category4     float64 `json:"category4"`
	Category5     float64 `json:"category5"`
	TotalScore    float64 `json:"total_score"`
	ResponseCount int64   `json:"response_count"`
}

// DepartmentStats is one department's aggregate. Departments with no
// summary rows are omitted from breakdowns, not zero-filled.
type DepartmentStats struct {
	DepartmentID   uint    `json:"department_id"`
	DepartmentName string  `json:"department_name"`
	AverageScore   float64 `json:"average_score"`
	ResponseCount  int64   `json:"response_count"`
}

// ParticipationStats is the responder ratio for a survey
type ParticipationStats struct {
	Responded int64   `json:"responded"`
	Eligible  int64   `json:"eligible"`
	Rate      float64 `json:"rate"`
}

// GetOrganizationalAverages computes per-category and total averages
// over organizational summary rows visible to the caller, optionally
// restricted to one survey
func (s *StatsService) GetOrganizationalAverages(ctx context.Context, scope Scope, surveyID *uint) (*OrganizationalAverages, error) {
	query := s.db.WithContext(ctx).Table("organizational_survey_summary").
		Select(`
			COALESCE(AVG(category1), 0) as category1,
			COALESCE(AVG(category2), 0) as category2,
			COALESCE(AVG(category3), 0) as category3,
			COALESCE(AVG(category4), 0) as category4,
			COALESCE(AVG(category5), 0) as category5,
			COALESCE(AVG(category6), 0) as category6,
			COALESCE(AVG(category7), 0) as category7,
			COALESCE(AVG(category8), 0) as category8,
			COALESCE(AVG(total_score), 0) as total_score,
			COUNT(*) as response_count
		`)

	if scope.restricted() {
		query = query.Where("user_id = ?", scope.UserID)
	}
	if surveyID != nil {
		query = query.Where("survey_id = ?", *surveyID)
	}

	var result OrganizationalAverages
	if err := query.Scan(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetGrowthAverages computes per-category and total averages over
// growth summary rows visible to the caller
func (s *StatsService) GetGrowthAverages(ctx context.Context, scope Scope, surveyID *uint) (*GrowthAverages, error) {
	query := s.db.WithContext(ctx).Table("growth_survey_summary").
		Select(`
			COALESCE(AVG(category1), 0) as category1,
			COALESCE(AVG(category2), 0) as category2,
			COALESCE(AVG(category3), 0) as category3,
			COALESCE(AVG(category4), 0) as category4,
			COALESCE(AVG(category5), 0) as category5,
			COALESCE(AVG(total_score), 0) as total_score,
			COUNT(*) as response_count
		`)

	if scope.restricted() {
		query = query.Where("user_id = ?", scope.UserID)
	}
	if surveyID != nil {
		query = query.Where("survey_id = ?", *surveyID)
	}

	var result GrowthAverages
	if err := query.Scan(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetManagerAverages restricts organizational averages to users whose
// job code is a manager grade
func (s *StatsService) GetManagerAverages(ctx context.Context, surveyID *uint) (*OrganizationalAverages, error) {
	query := s.db.WithContext(ctx).Table("organizational_survey_summary").
		Select(`
			COALESCE(AVG(organizational_survey_summary.category1), 0) as category1,
			COALESCE(AVG(organizational_survey_summary.category2), 0) as category2,
			COALESCE(AVG(organizational_survey_summary.category3), 0) as category3,
			COALESCE(AVG(organizational_survey_summary.category4), 0) as category4,
			COALESCE(AVG(organizational_survey_summary.category5), 0) as category5,
			COALESCE(AVG(organizational_survey_summary.category6), 0) as category6,
			COALESCE(AVG(organizational_survey_summary.category7), 0) as category7,
			COALESCE(AVG(organizational_survey_summary.category8), 0) as category8,
			COALESCE(AVG(organizational_survey_summary.total_score), 0) as total_score,
			COUNT(*) as response_count
		`).
		Joins("JOIN users ON users.id = organizational_survey_summary.user_id").
		Joins("JOIN jobs ON jobs.id = users.job_id").
		Where("jobs.code IN ?", models.ManagerJobCodes)

	if surveyID != nil {
		query = query.Where("organizational_survey_summary.survey_id = ?", *surveyID)
	}

	var result OrganizationalAverages
	if err := query.Scan(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetDepartmentBreakdown groups average total scores by department.
// The inner joins drop summary rows whose user has no department and
// omit departments without rows.
func (s *StatsService) GetDepartmentBreakdown(ctx context.Context, surveyType string, surveyID *uint) ([]DepartmentStats, error) {
	table := "organizational_survey_summary"
	if surveyType == models.SurveyTypeGrowth {
		table = "growth_survey_summary"
	}

	query := s.db.WithContext(ctx).Table(table).
		Select(`
			departments.id as department_id,
			departments.name as department_name,
			COALESCE(AVG(`+table+`.total_score), 0) as average_score,
			COUNT(*) as response_count
		`).
		Joins("JOIN users ON users.id = " + table + ".user_id").
		Joins("JOIN departments ON departments.id = users.department_id").
		Group("departments.id, departments.name").
		Order("departments.id ASC")

	if surveyID != nil {
		query = query.Where(table+".survey_id = ?", *surveyID)
	}

	var results []DepartmentStats
	if err := query.Scan(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

// GetParticipation computes the responder ratio for a survey
func (s *StatsService) GetParticipation(ctx context.Context, surveyID uint, surveyType string) (*ParticipationStats, error) {
	table := "organizational_survey_summary"
	if surveyType == models.SurveyTypeGrowth {
		table = "growth_survey_summary"
	}

	var responded int64
	err := s.db.WithContext(ctx).Table(table).
		Where("survey_id = ?", surveyID).
		Distinct("user_id").
		Count(&responded).Error
	if err != nil {
		return nil, err
	}

	eligible, err := s.userRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ParticipationStats{
		Responded: responded,
		Eligible:  eligible,
	}
	if eligible > 0 {
		stats.Rate = float64(responded) / float64(eligible)
	}

	return stats, nil
}

// AdminOverview is the admin dashboard headline data
type AdminOverview struct {
	TotalUsers       int64 `json:"total_users"`
	TotalAdmins      int64 `json:"total_admins"`
	TotalEmployees   int64 `json:"total_employees"`
	ActiveSurveys    int64 `json:"active_surveys"`
	CompletedSurveys int64 `json:"completed_surveys"`
	OpenProblems     int64 `json:"open_problems"`
}

// GetAdminOverview returns admin dashboard headline counts
func (s *StatsService) GetAdminOverview(ctx context.Context) (*AdminOverview, error) {
	data := &AdminOverview{}

	s.db.WithContext(ctx).Table("users").Where("deleted_at IS NULL").Count(&data.TotalUsers)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", models.RoleAdmin).Count(&data.TotalAdmins)
	s.db.WithContext(ctx).Table("users").Where("role = ? AND deleted_at IS NULL", models.RoleEmployee).Count(&data.TotalEmployees)
	s.db.WithContext(ctx).Table("surveys").Where("status = ?", models.SurveyStatusActive).Count(&data.ActiveSurveys)
	s.db.WithContext(ctx).Table("surveys").Where("status = ?", models.SurveyStatusCompleted).Count(&data.CompletedSurveys)
	s.db.WithContext(ctx).Table("problems").Where("status = ?", models.ProblemStatusOpen).Count(&data.OpenProblems)

	return data, nil
}
