package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/core/domain"
)

// notificationRepository implements NotificationRepository interface
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create creates a new notification
func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return translateError(r.db.WithContext(ctx).Create(n).Error)
}

// ListByUser lists a user's notifications, newest first
func (r *notificationRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead marks a notification read. Scoped by user so nobody can
// mark another user's rows.
func (r *notificationRepository) MarkRead(ctx context.Context, userID, id uint) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Prune deletes all but the keep most-recently-created rows for the
// user, ranked by (created_at desc, id desc). The inner derived table
// keeps MySQL happy about deleting from a table referenced in a
// subquery.
func (r *notificationRepository) Prune(ctx context.Context, userID uint, keep int) error {
	return r.db.WithContext(ctx).Exec(`
		DELETE FROM notifications
		WHERE user_id = ?
		  AND id NOT IN (
			SELECT id FROM (
				SELECT id FROM notifications
				WHERE user_id = ?
				ORDER BY created_at DESC, id DESC
				LIMIT ?
			) AS recent
		)`, userID, userID, keep).Error
}

// CountByUser counts a user's notifications
func (r *notificationRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
