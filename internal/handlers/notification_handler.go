package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/lordbinary11/e-career-mobile/internal/models"
	"github.com/lordbinary11/e-career-mobile/internal/repository"
)

type NotificationHandler struct {
	notifications notificationStore
}

type notificationStore interface {
	ListForUser(ctx context.Context, userID int64, limit int, offset int) ([]models.Notification, error)
	CountForUser(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, notificationID int64, userID int64) (bool, error)
}

func NewNotificationHandler(notifications *repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	if authRole(c) != RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Forbidden"})
	}
	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}

	page, limit := parsePagination(c)

	notifications, err := h.notifications.ListForUser(c.Context(), userID, limit, (page-1)*limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to fetch notifications"})
	}
	total, err := h.notifications.CountForUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to fetch notifications"})
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"notifications": notifications,
		"pagination":    buildPaginationMeta(page, limit, total),
	})
}

func (h *NotificationHandler) MarkNotificationRead(c *fiber.Ctx) error {
	if authRole(c) != RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Forbidden"})
	}
	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}

	notificationID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || notificationID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid notification id"})
	}

	updated, err := h.notifications.MarkRead(c.Context(), notificationID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to update notification"})
	}
	if !updated {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Notification not found"})
	}
	return c.JSON(fiber.Map{"success": true})
}
