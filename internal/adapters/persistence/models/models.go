package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values stored on users.role
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleNone     = "none"
)

// Survey status values
const (
	SurveyStatusDraft     = "draft"
	SurveyStatusActive    = "active"
	SurveyStatusCompleted = "completed"
)

// Survey type values
const (
	SurveyTypeOrganizational = "organizational"
	SurveyTypeGrowth         = "growth"
)

// Category counts are fixed per survey type
const (
	OrganizationalCategoryCount = 8
	GrowthCategoryCount         = 5
)

// MaxNotificationsPerUser is the retained notification backlog per user
const MaxNotificationsPerUser = 5

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID                       uint           `gorm:"primaryKey" json:"id"`
	Email                    string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password                 string         `gorm:"size:255;not null" json:"-"`
	Name                     string         `gorm:"size:100;not null" json:"name"`
	Role                     string         `gorm:"size:20;default:'none'" json:"role"`
	DepartmentID             *uint          `gorm:"index" json:"department_id"`
	JobID                    *uint          `gorm:"index" json:"job_id"`
	PendingPassword          *string        `gorm:"size:255" json:"-"`
	PasswordResetRequestedAt *time.Time     `json:"password_reset_requested_at"`
	CreatedAt                time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt                gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Job        *Job        `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// HasPendingReset reports whether a password reset awaits admin approval
func (u *User) HasPendingReset() bool {
	return u.PendingPassword != nil
}

// UserResponse DTO
type UserResponse struct {
	ID             uint      `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	DepartmentID   *uint     `json:"department_id"`
	DepartmentName string    `json:"department_name,omitempty"`
	JobID          *uint     `json:"job_id"`
	JobName        string    `json:"job_name,omitempty"`
	ResetPending   bool      `json:"reset_pending"`
	CreatedAt      time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
		JobID:        u.JobID,
		ResetPending: u.HasPendingReset(),
		CreatedAt:    u.CreatedAt,
	}

	if u.Department != nil {
		resp.DepartmentName = u.Department.Name
	}
	if u.Job != nil {
		resp.JobName = u.Job.Name
	}

	return resp
}

// LoginLog represents login_logs table. One row per login attempt,
// success or failure.
type LoginLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"size:36;index" json:"session_id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	Email     string    `gorm:"size:100;not null" json:"email"`
	Succeeded bool      `gorm:"not null" json:"succeeded"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (LoginLog) TableName() string {
	return "login_logs"
}

// ============================================================
// Master Tables
// ============================================================

// Department represents departments table (Master)
type Department struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Department) TableName() string {
	return "departments"
}

// Job represents jobs table (Master). Codes 1-3 are manager grades.
type Job struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      int       `gorm:"uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

// ManagerJobCodes are the job codes counted as managers in statistics
var ManagerJobCodes = []int{1, 2, 3}

// ============================================================
// Survey Tables
// ============================================================

// Survey represents surveys table
type Survey struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:200;not null" json:"name"`
	StartDate  time.Time `gorm:"not null" json:"start_date"`
	EndDate    time.Time `gorm:"not null" json:"end_date"`
	Status     string    `gorm:"size:20;default:'draft'" json:"status"`
	SurveyType string    `gorm:"size:20;not null" json:"survey_type"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Survey) TableName() string {
	return "surveys"
}

// AcceptsResponses reports whether response entry is permitted right
// now. Evaluated per request, never cached as survey state.
func (s *Survey) AcceptsResponses(now time.Time) bool {
	if s.Status != SurveyStatusActive {
		return false
	}
	return !now.Before(s.StartDate) && !now.After(s.EndDate)
}

// CategoryCount returns the fixed category count for the survey type
func (s *Survey) CategoryCount() int {
	if s.SurveyType == SurveyTypeGrowth {
		return GrowthCategoryCount
	}
	return OrganizationalCategoryCount
}

// OrganizationalSurveySummary represents organizational_survey_summary
// table. One row per (user, survey) pair.
type OrganizationalSurveySummary struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_org_summary_user_survey" json:"user_id"`
	SurveyID   uint      `gorm:"not null;uniqueIndex:idx_org_summary_user_survey" json:"survey_id"`
	Category1  float64   `gorm:"type:decimal(5,2);not null" json:"category1"`
	Category2  float64   `gorm:"type:decimal(5,2);not null" json:"category2"`
	Category3  float64   `gorm:"type:decimal(5,2);not null" json:"category3"`
	Category4  float64   `gorm:"type:decimal(5,2);not null" json:"category4"`
	Category5  float64   `gorm:"type:decimal(5,2);not null" json:"category5"`
	Category6  float64   `gorm:"type:decimal(5,2);not null" json:"category6"`
	Category7  float64   `gorm:"type:decimal(5,2);not null" json:"category7"`
	Category8  float64   `gorm:"type:decimal(5,2);not null" json:"category8"`
	TotalScore float64   `gorm:"type:decimal(5,2);not null" json:"total_score"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (OrganizationalSurveySummary) TableName() string {
	return "organizational_survey_summary"
}

// GrowthSurveySummary represents growth_survey_summary table. One row
// per (user, survey) pair.
type GrowthSurveySummary struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_growth_summary_user_survey" json:"user_id"`
	SurveyID   uint      `gorm:"not null;uniqueIndex:idx_growth_summary_user_survey" json:"survey_id"`
	Category1  float64   `gorm:"type:decimal(5,2);not null" json:"category1"`
	Category2  float64   `gorm:"type:decimal(5,2);not null" json:"category2"`
	Category3  float64   `gorm:"type:decimal(5,2);not null" json:"category3"`
	Category4  float64   `gorm:"type:decimal(5,2);not null" json:"category4"`
	Category5  float64   `gorm:"type:decimal(5,2);not null" json:"category5"`
	TotalScore float64   `gorm:"type:decimal(5,2);not null" json:"total_score"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (GrowthSurveySummary) TableName() string {
	return "growth_survey_summary"
}

// ============================================================
// Notifications & Problems
// ============================================================

// Notification represents notifications table. At most
// MaxNotificationsPerUser rows are retained per user; older rows are
// deleted, not archived.
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	SurveyID  *uint      `gorm:"index" json:"survey_id"`
	Title     string     `gorm:"size:200;not null" json:"title"`
	Message   string     `gorm:"type:text" json:"message"`
	IsRead    bool       `gorm:"default:false" json:"is_read"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedBy uint       `gorm:"not null" json:"created_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Problem represents problems table
type Problem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Status    string    `gorm:"size:20;default:'open'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Problem) TableName() string {
	return "problems"
}

// Problem status values
const (
	ProblemStatusOpen     = "open"
	ProblemStatusResolved = "resolved"
)

// ============================================================
// Migration
// ============================================================

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Department{},
		&Job{},
		&User{},
		&LoginLog{},
		&Survey{},
		&OrganizationalSurveySummary{},
		&GrowthSurveySummary{},
		&Notification{},
		&Problem{},
	)
}
