package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lordbinary11/e-career-mobile/internal/models"
	"github.com/lordbinary11/e-career-mobile/internal/repository"
	"github.com/lordbinary11/e-career-mobile/pkg/utils"
)

type stubUserStore struct {
	createErr error
	user      *models.User
	getErr    error
	lastEmail string
}

func (s *stubUserStore) Create(_ context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	user.ID = 42
	return nil
}

func (s *stubUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.lastEmail = email
	return s.user, s.getErr
}

func (s *stubUserStore) GetByID(_ context.Context, _ int64) (*models.User, error) {
	return s.user, s.getErr
}

type stubCounselorStore struct {
	createErr error
	counselor *models.Counselor
	getErr    error
}

func (s *stubCounselorStore) Create(_ context.Context, _ repository.CreateCounselorInput) (*models.Counselor, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.counselor, nil
}

func (s *stubCounselorStore) GetByEmail(_ context.Context, _ string) (*models.Counselor, error) {
	return s.counselor, s.getErr
}

func (s *stubCounselorStore) GetByID(_ context.Context, _ int64) (*models.Counselor, error) {
	return s.counselor, s.getErr
}

func newAuthTestApp(users *stubUserStore, counselors *stubCounselorStore) *fiber.App {
	handler := &AuthHandler{
		userRepo:      users,
		counselorRepo: counselors,
		jwtSecret:     "test-secret",
	}
	app := fiber.New()
	app.Post("/api/auth/register", handler.Register)
	app.Post("/api/auth/login", handler.Login)
	return app
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body.Error
}

func TestLoginWrongPasswordMessage(t *testing.T) {
	hash, err := utils.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	users := &stubUserStore{user: &models.User{ID: 42, Email: "kofi@example.com", PasswordHash: hash}}
	app := newAuthTestApp(users, &stubCounselorStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{
		"email": "kofi@example.com",
		"password": "wrong-password",
		"loginAs": "student"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if got := decodeError(t, resp); got != "Incorrect email or password." {
		t.Fatalf("unexpected error message: %q", got)
	}
}

// Unknown accounts produce the same message as wrong passwords, so login
// responses do not reveal which emails exist.
func TestLoginUnknownEmailSameMessage(t *testing.T) {
	users := &stubUserStore{getErr: pgx.ErrNoRows}
	app := newAuthTestApp(users, &stubCounselorStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{
		"email": "nobody@example.com",
		"password": "whatever",
		"loginAs": "student"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if got := decodeError(t, resp); got != "Incorrect email or password." {
		t.Fatalf("unexpected error message: %q", got)
	}
}

func TestLoginAsCounselorUsesCounselorTable(t *testing.T) {
	hash, err := utils.HashPassword("sessions4all")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	counselors := &stubCounselorStore{
		counselor: &models.Counselor{ID: 7, Email: "ama@example.com", PasswordHash: hash, Name: "Ama"},
	}
	app := newAuthTestApp(&stubUserStore{getErr: pgx.ErrNoRows}, counselors)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{
		"email": "ama@example.com",
		"password": "sessions4all",
		"loginAs": "counselor"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		Role    string `json:"role"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Role != "counselor" || body.Token == "" {
		t.Fatalf("unexpected login body: %+v", body)
	}
}

func TestLoginRejectsUnknownLoginAs(t *testing.T) {
	app := newAuthTestApp(&stubUserStore{}, &stubCounselorStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{
		"email": "kofi@example.com",
		"password": "whatever",
		"loginAs": "admin"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	users := &stubUserStore{createErr: &pgconn.PgError{Code: "23505"}}
	app := newAuthTestApp(users, &stubCounselorStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{
		"email": "kofi@example.com",
		"password": "longenough",
		"role": "student"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestRegisterCounselorRequiresNameAndSpecialization(t *testing.T) {
	app := newAuthTestApp(&stubUserStore{}, &stubCounselorStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{
		"email": "ama@example.com",
		"password": "longenough",
		"role": "counselor"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	app := newAuthTestApp(&stubUserStore{}, &stubCounselorStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{
		"email": "kofi@example.com",
		"password": "short",
		"role": "student"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
