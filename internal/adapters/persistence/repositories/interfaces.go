package repositories

import (
	"context"
	"time"

	"orgpulse-survey/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// ApproveReset moves the pending password hash into the active
	// password and clears the pending fields in one transaction.
	ApproveReset(ctx context.Context, id uint) error
	ClearPendingReset(ctx context.Context, id uint) error
	// Delete removes the user and all dependent rows (summaries,
	// notifications, problems, login logs).
	Delete(ctx context.Context, id uint) error
	// List returns users with pagination. excludeID is filtered out by
	// primary key so the reserved system account never appears.
	List(ctx context.Context, offset, limit int, excludeID uint) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountActive(ctx context.Context) (int64, error)
}

// SurveyRepository defines survey repository interface
type SurveyRepository interface {
	Create(ctx context.Context, survey *models.Survey) error
	GetByID(ctx context.Context, id uint) (*models.Survey, error)
	Update(ctx context.Context, survey *models.Survey) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Survey, int64, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Survey, error)
	CompleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SummaryRepository persists survey summary rows, one per
// (user, survey) pair
type SummaryRepository interface {
	UpsertOrganizational(ctx context.Context, summary *models.OrganizationalSurveySummary) error
	UpsertGrowth(ctx context.Context, summary *models.GrowthSurveySummary) error
	GetOrganizational(ctx context.Context, userID, surveyID uint) (*models.OrganizationalSurveySummary, error)
	GetGrowth(ctx context.Context, userID, surveyID uint) (*models.GrowthSurveySummary, error)
}

// NotificationRepository defines notification repository interface
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID uint) ([]*models.Notification, error)
	MarkRead(ctx context.Context, userID, id uint) error
	// Prune deletes all but the keep most-recently-created rows for the
	// user, ranked by (created_at desc, id desc). Idempotent.
	Prune(ctx context.Context, userID uint, keep int) error
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

// JobRepository defines job master repository interface
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id uint) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Job, error)
}

// DepartmentRepository defines department master repository interface
type DepartmentRepository interface {
	Create(ctx context.Context, dept *models.Department) error
	GetByID(ctx context.Context, id uint) (*models.Department, error)
	Update(ctx context.Context, dept *models.Department) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Department, error)
}

// ProblemRepository defines problem repository interface
type ProblemRepository interface {
	Create(ctx context.Context, p *models.Problem) error
	GetByID(ctx context.Context, id uint) (*models.Problem, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Problem, int64, error)
	ListAll(ctx context.Context, offset, limit int) ([]*models.Problem, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

// LoginLogRepository defines login log repository interface
type LoginLogRepository interface {
	Create(ctx context.Context, l *models.LoginLog) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
