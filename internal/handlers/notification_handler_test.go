package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lordbinary11/e-career-mobile/internal/models"
)

type stubNotificationStore struct {
	listResult []models.Notification
	listErr    error
	markResult bool
	markErr    error
	lastUserID int64
	lastID     int64
	lastLimit  int
	lastOffset int
}

func (s *stubNotificationStore) ListForUser(_ context.Context, userID int64, limit, offset int) ([]models.Notification, error) {
	s.lastUserID = userID
	s.lastLimit = limit
	s.lastOffset = offset
	return s.listResult, s.listErr
}

func (s *stubNotificationStore) CountForUser(_ context.Context, userID int64) (int, error) {
	return len(s.listResult), nil
}

func (s *stubNotificationStore) MarkRead(_ context.Context, notificationID, userID int64) (bool, error) {
	s.lastID = notificationID
	s.lastUserID = userID
	return s.markResult, s.markErr
}

func newNotificationTestApp(store *stubNotificationStore, role, userID string) *fiber.App {
	handler := &NotificationHandler{notifications: store}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", userID)
		return c.Next()
	})
	app.Get("/api/v1/notifications", handler.ListNotifications)
	app.Put("/api/v1/notifications/:id/read", handler.MarkNotificationRead)
	return app
}

func TestListNotificationsScopesToOwner(t *testing.T) {
	store := &stubNotificationStore{
		listResult: []models.Notification{{ID: 1, UserID: 42, Message: "Your meeting request has been accepted by the counselor for 2026-07-01 14:30"}},
	}
	app := newNotificationTestApp(store, "student", "42")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.lastUserID != 42 {
		t.Fatalf("expected user 42, got %d", store.lastUserID)
	}
	if store.lastLimit != defaultPageLimit || store.lastOffset != 0 {
		t.Fatalf("unexpected pagination: limit=%d offset=%d", store.lastLimit, store.lastOffset)
	}
}

func TestListNotificationsForbiddenForCounselors(t *testing.T) {
	app := newNotificationTestApp(&stubNotificationStore{}, "counselor", "7")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

// Marking a foreign notification touches no rows, which surfaces as 404.
func TestMarkForeignNotificationNotFound(t *testing.T) {
	store := &stubNotificationStore{markResult: false}
	app := newNotificationTestApp(store, "student", "42")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/notifications/9/read", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if store.lastID != 9 || store.lastUserID != 42 {
		t.Fatalf("unexpected mark call: id=%d user=%d", store.lastID, store.lastUserID)
	}
}

func TestMarkNotificationRead(t *testing.T) {
	store := &stubNotificationStore{markResult: true}
	app := newNotificationTestApp(store, "student", "42")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/notifications/9/read", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
