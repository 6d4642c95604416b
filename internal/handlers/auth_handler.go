package handlers

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lordbinary11/e-career-mobile/internal/models"
	"github.com/lordbinary11/e-career-mobile/internal/repository"
	"github.com/lordbinary11/e-career-mobile/pkg/utils"
)

const (
	RoleStudent   = "student"
	RoleCounselor = "counselor"
)

type userAccountStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type counselorAccountStore interface {
	Create(ctx context.Context, input repository.CreateCounselorInput) (*models.Counselor, error)
	GetByEmail(ctx context.Context, email string) (*models.Counselor, error)
	GetByID(ctx context.Context, id int64) (*models.Counselor, error)
}

type AuthHandler struct {
	userRepo      userAccountStore
	counselorRepo counselorAccountStore
	jwtSecret     string
}

func NewAuthHandler(
	userRepo *repository.UserRepository,
	counselorRepo *repository.CounselorRepository,
	jwtSecret string,
) *AuthHandler {
	return &AuthHandler{
		userRepo:      userRepo,
		counselorRepo: counselorRepo,
		jwtSecret:     jwtSecret,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=student counselor"`

	// Student fields
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`

	// Counselor fields
	Name           string  `json:"name"`
	Specialization string  `json:"specialization" validate:"omitempty,oneof=Technology Healthcare Business Education Arts Engineering Law Finance Science Other"`
	Experience     int     `json:"experience" validate:"gte=0"`
	Bio            *string `json:"bio"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	LoginAs  string `json:"loginAs" validate:"required,oneof=student counselor"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid registration details"})
	}

	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid email format"})
	}
	req.Email = strings.ToLower(parsedEmail.Address)

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to hash password"})
	}

	switch req.Role {
	case RoleStudent:
		user := &models.User{
			Email:        req.Email,
			PasswordHash: hashed,
			FullName:     req.FullName,
			Phone:        req.Phone,
			Location:     req.Location,
		}
		if err := h.userRepo.Create(c.Context(), user); err != nil {
			return mapRegisterError(c, err)
		}
		token, err := utils.GenerateToken(strconv.FormatInt(user.ID, 10), RoleStudent, h.jwtSecret)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to generate token"})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"token":   token,
			"role":    RoleStudent,
			"user":    user,
		})
	case RoleCounselor:
		if strings.TrimSpace(req.Name) == "" || req.Specialization == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Name and specialization are required"})
		}
		counselor, err := h.counselorRepo.Create(c.Context(), repository.CreateCounselorInput{
			Email:          req.Email,
			PasswordHash:   hashed,
			Name:           strings.TrimSpace(req.Name),
			Phone:          req.Phone,
			Specialization: req.Specialization,
			Experience:     req.Experience,
			Bio:            req.Bio,
		})
		if err != nil {
			return mapRegisterError(c, err)
		}
		token, err := utils.GenerateToken(strconv.FormatInt(counselor.ID, 10), RoleCounselor, h.jwtSecret)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to generate token"})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success":   true,
			"token":     token,
			"role":      RoleCounselor,
			"counselor": counselor,
		})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid role"})
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Email, password and loginAs are required"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if req.LoginAs == RoleCounselor {
		counselor, err := h.counselorRepo.GetByEmail(c.Context(), email)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return incorrectCredentials(c)
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to lookup counselor"})
		}
		if !utils.CheckPassword(req.Password, counselor.PasswordHash) {
			return incorrectCredentials(c)
		}
		token, err := utils.GenerateToken(strconv.FormatInt(counselor.ID, 10), RoleCounselor, h.jwtSecret)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to generate token"})
		}
		return c.JSON(fiber.Map{
			"success":   true,
			"token":     token,
			"role":      RoleCounselor,
			"counselor": counselor,
		})
	}

	user, err := h.userRepo.GetByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return incorrectCredentials(c)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to lookup user"})
	}
	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return incorrectCredentials(c)
	}
	token, err := utils.GenerateToken(strconv.FormatInt(user.ID, 10), RoleStudent, h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to generate token"})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"role":    RoleStudent,
		"user":    user,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}

	switch authRole(c) {
	case RoleStudent:
		user, err := h.userRepo.GetByID(c.Context(), actorID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "User not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to fetch user"})
		}
		return c.JSON(fiber.Map{"success": true, "role": RoleStudent, "user": user})
	case RoleCounselor:
		counselor, err := h.counselorRepo.GetByID(c.Context(), actorID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Counselor not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to fetch counselor"})
		}
		return c.JSON(fiber.Map{"success": true, "role": RoleCounselor, "counselor": counselor})
	default:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}
}

func incorrectCredentials(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"error":   "Incorrect email or password.",
	})
}

func mapRegisterError(c *fiber.Ctx, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": "Email already exists"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to create account"})
}
