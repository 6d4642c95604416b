package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/lordbinary11/e-career-mobile/internal/models"
	"github.com/lordbinary11/e-career-mobile/internal/services"
)

type MessageHandler struct {
	service messagingService
}

type messagingService interface {
	SendStudentMessage(ctx context.Context, userID int64, counselorID int64, text string) (*models.Message, error)
	SendCounselorReply(ctx context.Context, counselorID int64, userID int64, text string) (*models.Message, error)
	ListThread(ctx context.Context, actorID int64, role string, userID int64, counselorID int64) ([]models.Message, error)
}

func NewMessageHandler(service *services.MessagingService) *MessageHandler {
	return &MessageHandler{service: service}
}

type sendMessageRequest struct {
	CounselorID int64  `json:"counselor_id"`
	Message     string `json:"message"`
}

type sendReplyRequest struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

func (h *MessageHandler) ListMessages(c *fiber.Ctx) error {
	role := authRole(c)
	if role != RoleStudent && role != RoleCounselor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Forbidden"})
	}
	actorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}

	userID, counselorID := actorID, actorID
	if role == RoleStudent {
		counselorID, err = strconv.ParseInt(c.Query("counselor_id"), 10, 64)
		if err != nil || counselorID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "counselor_id is required"})
		}
	} else {
		userID, err = strconv.ParseInt(c.Query("user_id"), 10, 64)
		if err != nil || userID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "user_id is required"})
		}
	}

	messages, err := h.service.ListThread(c.Context(), actorID, role, userID, counselorID)
	if err != nil {
		return mapMessageError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "messages": messages})
}

func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	if authRole(c) != RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Forbidden"})
	}
	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	message, err := h.service.SendStudentMessage(c.Context(), userID, req.CounselorID, req.Message)
	if err != nil {
		return mapMessageError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": message})
}

func (h *MessageHandler) SendReply(c *fiber.Ctx) error {
	if authRole(c) != RoleCounselor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Forbidden"})
	}
	counselorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}

	var req sendReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	message, err := h.service.SendCounselorReply(c.Context(), counselorID, req.UserID, req.Message)
	if err != nil {
		return mapMessageError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": message})
}

func mapMessageError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Message text is required"})
	case errors.Is(err, services.ErrCounselorNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Counselor not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Forbidden"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Thread not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to process message"})
	}
}
