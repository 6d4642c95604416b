package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/lordbinary11/e-career-mobile/internal/models"
	"github.com/lordbinary11/e-career-mobile/internal/repository"
	"github.com/lordbinary11/e-career-mobile/internal/services"
)

type ProfileHandler struct {
	service profileService
}

type profileService interface {
	GetUserProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateUserProfile(ctx context.Context, userID int64, input repository.UpdateUserProfileInput) (*models.User, error)
	GetCounselorProfile(ctx context.Context, counselorID int64) (*models.CounselorDetail, error)
	UpdateCounselorProfile(ctx context.Context, counselorID int64, input services.UpdateCounselorProfileInput) (*models.CounselorDetail, error)
}

func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type updateUserProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
}

type availabilitySlotRequest struct {
	Day       string `json:"day"`
	StartTime string `json:"start"`
	EndTime   string `json:"end"`
}

type updateCounselorProfileRequest struct {
	Name           *string                    `json:"name"`
	Phone          *string                    `json:"phone"`
	Specialization *string                    `json:"specialization"`
	Experience     *int                       `json:"experience"`
	Bio            *string                    `json:"bio"`
	Availability   *[]availabilitySlotRequest `json:"availability"`
}

func (h *ProfileHandler) GetUserProfile(c *fiber.Ctx) error {
	if authRole(c) != RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Forbidden"})
	}
	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}

	user, err := h.service.GetUserProfile(c.Context(), userID)
	if err != nil {
		return mapProfileError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

func (h *ProfileHandler) UpdateUserProfile(c *fiber.Ctx) error {
	if authRole(c) != RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Forbidden"})
	}
	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}

	var req updateUserProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	user, err := h.service.UpdateUserProfile(c.Context(), userID, repository.UpdateUserProfileInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Location: req.Location,
	})
	if err != nil {
		return mapProfileError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

func (h *ProfileHandler) GetCounselorProfile(c *fiber.Ctx) error {
	if authRole(c) != RoleCounselor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Forbidden"})
	}
	counselorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}

	detail, err := h.service.GetCounselorProfile(c.Context(), counselorID)
	if err != nil {
		return mapProfileError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "counselor": detail})
}

func (h *ProfileHandler) UpdateCounselorProfile(c *fiber.Ctx) error {
	if authRole(c) != RoleCounselor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Forbidden"})
	}
	counselorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}

	var req updateCounselorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	input := services.UpdateCounselorProfileInput{
		Profile: repository.UpdateCounselorProfileInput{
			Name:           req.Name,
			Phone:          req.Phone,
			Specialization: req.Specialization,
			Experience:     req.Experience,
			Bio:            req.Bio,
		},
	}
	if req.Availability != nil {
		slots := make([]repository.AvailabilitySlotInput, 0, len(*req.Availability))
		for _, slot := range *req.Availability {
			slots = append(slots, repository.AvailabilitySlotInput{
				Day:       slot.Day,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
			})
		}
		input.Availability = slots
	}

	detail, err := h.service.UpdateCounselorProfile(c.Context(), counselorID, input)
	if err != nil {
		return mapProfileError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "counselor": detail})
}

func mapProfileError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid profile details"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Profile not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to process profile"})
	}
}
