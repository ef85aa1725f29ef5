package handlers

import (
	"errors"

	"sjfs/internal/models"
	"sjfs/internal/repositories"
	"sjfs/internal/services/notification"
	"sjfs/internal/utils/pagination"
	"sjfs/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles GET /api/notifications.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	p := pagination.ParseFromRequest(c)

	notifications, total, err := h.notificationService.List(c.Context(), claims.UserID, claims.Role, p.Offset, p.Limit)
	if err != nil {
		return response.ServerError(c, "Failed to fetch notifications")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, notifications))
}

// UnreadCount handles GET /api/notifications/unread-count.
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	count, err := h.notificationService.CountUnread(c.Context(), claims.UserID, claims.Role)
	if err != nil {
		return response.ServerError(c, "Failed to count notifications")
	}
	return response.Success(c, "Unread count", fiber.Map{"unread": count})
}

// MarkRead handles PUT /api/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid notification id")
	}

	err = h.notificationService.MarkRead(c.Context(), id, claims.UserID)
	switch {
	case err == nil:
		return response.Success(c, "Notification marked as read", nil)
	case errors.Is(err, notification.ErrNotRecipient):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, repositories.ErrNotificationNotFound):
		return response.NotFound(c, err.Error())
	default:
		return response.ServerError(c, "Failed to mark notification as read")
	}
}

// MarkAllRead handles PUT /api/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	count, err := h.notificationService.MarkAllRead(c.Context(), claims.UserID, claims.Role)
	if err != nil {
		return response.ServerError(c, "Failed to mark notifications as read")
	}
	return response.Success(c, "Notifications marked as read", fiber.Map{"updated": count})
}
