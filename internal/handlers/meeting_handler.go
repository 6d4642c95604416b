package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/lordbinary11/e-career-mobile/internal/models"
	"github.com/lordbinary11/e-career-mobile/internal/services"
)

type MeetingHandler struct {
	service meetingService
}

type meetingService interface {
	Schedule(ctx context.Context, userID int64, input services.ScheduleMeetingInput) (*models.Meeting, error)
	List(ctx context.Context, actorID int64, role string, timeframe string) ([]models.Meeting, error)
	Act(ctx context.Context, counselorID int64, input services.MeetingActionInput) (*models.Meeting, error)
}

func NewMeetingHandler(service *services.MeetingService) *MeetingHandler {
	return &MeetingHandler{service: service}
}

type scheduleMeetingRequest struct {
	CounselorID     int64   `json:"counselor_id"`
	ScheduleDate    string  `json:"schedule_date"`
	Purpose         string  `json:"purpose"`
	IsVirtualMeet   bool    `json:"is_virtual_meet"`
	MeetingPlatform *string `json:"meeting_platform"`
	MeetingLink     *string `json:"meeting_link"`
}

type meetingActionRequest struct {
	MeetingID   int64  `json:"meeting_id"`
	Action      string `json:"action"`
	NewDatetime string `json:"new_datetime"`
	Reason      string `json:"reason"`
}

func (h *MeetingHandler) ScheduleMeeting(c *fiber.Ctx) error {
	if authRole(c) != RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Forbidden"})
	}
	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}

	var req scheduleMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	meeting, err := h.service.Schedule(c.Context(), userID, services.ScheduleMeetingInput{
		CounselorID:     req.CounselorID,
		ScheduleDate:    req.ScheduleDate,
		Purpose:         req.Purpose,
		IsVirtualMeet:   req.IsVirtualMeet,
		MeetingPlatform: req.MeetingPlatform,
		MeetingLink:     req.MeetingLink,
	})
	if err != nil {
		return mapMeetingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "meeting": meeting})
}

func (h *MeetingHandler) ListMeetings(c *fiber.Ctx) error {
	role := authRole(c)
	if role != RoleStudent && role != RoleCounselor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Forbidden"})
	}
	actorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}

	timeframe := c.Query("timeframe")
	switch timeframe {
	case "", services.TimeframeUpcoming, services.TimeframePast, services.TimeframeDeclined:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "timeframe must be upcoming, past or declined",
		})
	}

	meetings, err := h.service.List(c.Context(), actorID, role, timeframe)
	if err != nil {
		return mapMeetingError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "meetings": meetings})
}

func (h *MeetingHandler) MeetingAction(c *fiber.Ctx) error {
	if authRole(c) != RoleCounselor {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Forbidden"})
	}
	counselorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}

	var req meetingActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.MeetingID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "meeting_id is required"})
	}

	meeting, err := h.service.Act(c.Context(), counselorID, services.MeetingActionInput{
		MeetingID:   req.MeetingID,
		Action:      req.Action,
		NewDatetime: req.NewDatetime,
		Reason:      req.Reason,
	})
	if err != nil {
		return mapMeetingError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "meeting": meeting})
}

func mapMeetingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid meeting details"})
	case errors.Is(err, services.ErrInvalidDatetime):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Datetime must be formatted as YYYY-MM-DD HH:mm:ss"})
	case errors.Is(err, services.ErrInvalidAction):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Action must be accept, reschedule, cancel or decline"})
	case errors.Is(err, services.ErrCounselorNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Counselor not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Forbidden"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Meeting not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to process meeting"})
	}
}
