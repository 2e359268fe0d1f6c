package services

import (
	"context"
	"log"

	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/adapters/persistence/repositories"
	"orgpulse-survey/internal/core/domain"
)

// NotificationService handles in-app notifications with a bounded
// per-user backlog
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// SendInput represents an admin notification broadcast
type SendInput struct {
	UserIDs  []uint `json:"user_ids"`
	SurveyID *uint  `json:"survey_id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// Send inserts one notification per target user and prunes each
// user's backlog back down to the retention limit
func (s *NotificationService) Send(ctx context.Context, createdBy uint, input *SendInput) (int, error) {
	if len(input.UserIDs) == 0 || input.Title == "" {
		return 0, domain.ErrInvalidInput
	}

	sent := 0
	for _, userID := range input.UserIDs {
		n := &models.Notification{
			UserID:    userID,
			SurveyID:  input.SurveyID,
			Title:     input.Title,
			Message:   input.Message,
			CreatedBy: createdBy,
		}

		if err := s.notificationRepo.Create(ctx, n); err != nil {
			return sent, err
		}
		sent++

		if err := s.notificationRepo.Prune(ctx, userID, models.MaxNotificationsPerUser); err != nil {
			return sent, err
		}
	}

	log.Printf("Notifications sent: %d recipients (by user %d)", sent, createdBy)
	return sent, nil
}

// ListForUser returns a user's notifications, pruning the backlog
// opportunistically first
func (s *NotificationService) ListForUser(ctx context.Context, userID uint) ([]*models.Notification, error) {
	if err := s.notificationRepo.Prune(ctx, userID, models.MaxNotificationsPerUser); err != nil {
		return nil, err
	}
	return s.notificationRepo.ListByUser(ctx, userID)
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) error {
	return s.notificationRepo.MarkRead(ctx, userID, id)
}
