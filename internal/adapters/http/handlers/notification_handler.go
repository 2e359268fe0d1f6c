package handlers

import (
	"errors"

	"orgpulse-survey/internal/adapters/http/middleware"
	"orgpulse-survey/internal/core/domain"
	"orgpulse-survey/internal/core/services"
	"orgpulse-survey/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Send broadcasts a notification to a set of users
// @Summary Send notifications
// @Description Send a notification to the given users (admin). Each recipient keeps at most the five newest notifications.
// @Tags Notifications
// @Accept json
// @Produce json
// @Param body body services.SendInput true "Notification data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /notifications [post]
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	session, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var input services.SendInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	sent, err := h.notificationService.Send(c.Context(), session.ID, &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Recipients and title are required")
		}
		return response.InternalServerError(c, "Failed to send notifications")
	}

	return response.Success(c, "Notifications sent", fiber.Map{
		"sent": sent,
	})
}

// My lists the caller's notifications
// @Summary My notifications
// @Description List the caller's notifications, newest first
// @Tags Notifications
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /notifications/my [get]
func (h *NotificationHandler) My(c *fiber.Ctx) error {
	session, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	notifications, err := h.notificationService.ListForUser(c.Context(), session.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list notifications")
	}

	return response.Success(c, "Notifications retrieved successfully", fiber.Map{
		"notifications": notifications,
	})
}

// MarkRead marks one of the caller's notifications as read
// @Summary Mark notification read
// @Description Mark one of the caller's notifications as read
// @Tags Notifications
// @Accept json
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	session, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.MarkRead(c.Context(), session.ID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Notification not found")
		}
		return response.InternalServerError(c, "Failed to mark notification as read")
	}

	return response.Success(c, "Notification marked as read", nil)
}
