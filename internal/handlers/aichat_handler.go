package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lordbinary11/e-career-mobile/internal/services"
)

type AIChatHandler struct {
	service aiChatService
}

type aiChatService interface {
	Chat(ctx context.Context, prompt string) (*services.AIChatResult, error)
}

func NewAIChatHandler(service *services.AIChatService) *AIChatHandler {
	return &AIChatHandler{service: service}
}

type aiChatRequest struct {
	Message string `json:"message"`
}

func (h *AIChatHandler) Chat(c *fiber.Ctx) error {
	var req aiChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	result, err := h.service.Chat(c.Context(), req.Message)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Message is required"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to process chat"})
	}
	return c.JSON(fiber.Map{"success": true, "reply": result.Reply, "fallback": result.Fallback})
}
