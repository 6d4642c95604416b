package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/lordbinary11/e-career-mobile/internal/models"
	"github.com/lordbinary11/e-career-mobile/internal/repository"
	"github.com/lordbinary11/e-career-mobile/internal/services"
)

type DirectoryHandler struct {
	service directoryService
}

type directoryService interface {
	ListCounselors(ctx context.Context, filter repository.CounselorListFilter) ([]models.Counselor, error)
	GetCounselorDetail(ctx context.Context, counselorID int64) (*models.CounselorDetail, error)
}

func NewDirectoryHandler(service *services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

func (h *DirectoryHandler) ListCounselors(c *fiber.Ctx) error {
	counselors, err := h.service.ListCounselors(c.Context(), repository.CounselorListFilter{
		Search:    c.Query("search"),
		Specialty: c.Query("specialty"),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to fetch counselors"})
	}
	return c.JSON(fiber.Map{"success": true, "counselors": counselors})
}

func (h *DirectoryHandler) GetCounselor(c *fiber.Ctx) error {
	counselorID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || counselorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid counselor id"})
	}

	detail, err := h.service.GetCounselorDetail(c.Context(), counselorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Counselor not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to fetch counselor"})
	}
	return c.JSON(fiber.Map{"success": true, "counselor": detail})
}
