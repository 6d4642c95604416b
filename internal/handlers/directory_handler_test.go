package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/lordbinary11/e-career-mobile/internal/models"
	"github.com/lordbinary11/e-career-mobile/internal/repository"
)

type stubDirectoryService struct {
	listResult   []models.Counselor
	listErr      error
	detailResult *models.CounselorDetail
	detailErr    error
	lastFilter   repository.CounselorListFilter
	lastID       int64
}

func (s *stubDirectoryService) ListCounselors(_ context.Context, filter repository.CounselorListFilter) ([]models.Counselor, error) {
	s.lastFilter = filter
	return s.listResult, s.listErr
}

func (s *stubDirectoryService) GetCounselorDetail(_ context.Context, counselorID int64) (*models.CounselorDetail, error) {
	s.lastID = counselorID
	return s.detailResult, s.detailErr
}

func newDirectoryTestApp(service *stubDirectoryService) *fiber.App {
	handler := &DirectoryHandler{service: service}
	app := fiber.New()
	app.Get("/api/v1/counselors", handler.ListCounselors)
	app.Get("/api/v1/counselors/:id", handler.GetCounselor)
	return app
}

func TestListCounselorsPassesFilters(t *testing.T) {
	service := &stubDirectoryService{
		listResult: []models.Counselor{{ID: 7, Name: "Ama", Specialization: "Technology"}},
	}
	app := newDirectoryTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/counselors?search=ama&specialty=Technology", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastFilter.Search != "ama" || service.lastFilter.Specialty != "Technology" {
		t.Fatalf("unexpected filter: %+v", service.lastFilter)
	}
}

func TestGetCounselorReturnsAvailabilityPreviews(t *testing.T) {
	service := &stubDirectoryService{
		detailResult: &models.CounselorDetail{
			Counselor: models.Counselor{ID: 7, Name: "Ama"},
			Availability: []models.AvailabilitySlot{
				{Day: "Monday", StartTime: "09:00", EndTime: "11:00"},
			},
			SlotPreviews: []string{"Mon 09:00-11:00"},
		},
	}
	app := newDirectoryTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/counselors/7", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastID != 7 {
		t.Fatalf("expected counselor id 7, got %d", service.lastID)
	}

	var body struct {
		Counselor struct {
			SlotPreviews []string `json:"slot_previews"`
		} `json:"counselor"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Counselor.SlotPreviews) != 1 || body.Counselor.SlotPreviews[0] != "Mon 09:00-11:00" {
		t.Fatalf("unexpected previews: %v", body.Counselor.SlotPreviews)
	}
}

func TestGetCounselorNotFound(t *testing.T) {
	service := &stubDirectoryService{detailErr: pgx.ErrNoRows}
	app := newDirectoryTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/counselors/999", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetCounselorRejectsBadID(t *testing.T) {
	app := newDirectoryTestApp(&stubDirectoryService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/counselors/abc", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
