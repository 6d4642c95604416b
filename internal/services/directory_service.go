package services

import (
	"context"
	"fmt"

	"github.com/lordbinary11/e-career-mobile/internal/models"
	"github.com/lordbinary11/e-career-mobile/internal/repository"
)

type counselorDirectory interface {
	GetByID(ctx context.Context, id int64) (*models.Counselor, error)
	List(ctx context.Context, filter repository.CounselorListFilter) ([]models.Counselor, error)
	ListAvailability(ctx context.Context, counselorID int64) ([]models.AvailabilitySlot, error)
}

type DirectoryService struct {
	counselorRepo counselorDirectory
}

func NewDirectoryService(counselorRepo counselorDirectory) *DirectoryService {
	return &DirectoryService{counselorRepo: counselorRepo}
}

// ListCounselors filters by free-text search (case-insensitive substring
// on name or specialization) and by exact specialty; "All" and the empty
// string disable the specialty filter.
func (s *DirectoryService) ListCounselors(
	ctx context.Context,
	filter repository.CounselorListFilter,
) ([]models.Counselor, error) {
	return s.counselorRepo.List(ctx, filter)
}

func (s *DirectoryService) GetCounselorDetail(ctx context.Context, counselorID int64) (*models.CounselorDetail, error) {
	counselor, err := s.counselorRepo.GetByID(ctx, counselorID)
	if err != nil {
		return nil, err
	}
	slots, err := s.counselorRepo.ListAvailability(ctx, counselorID)
	if err != nil {
		return nil, err
	}
	return &models.CounselorDetail{
		Counselor:    *counselor,
		Availability: slots,
		SlotPreviews: SlotPreviews(slots),
	}, nil
}

// SlotPreviews renders slots exactly as stored: no sorting, no merging of
// overlaps, duplicates included.
func SlotPreviews(slots []models.AvailabilitySlot) []string {
	previews := make([]string, 0, len(slots))
	for _, slot := range slots {
		day := slot.Day
		if len(day) > 3 {
			day = day[:3]
		}
		previews = append(previews, fmt.Sprintf("%s %s-%s", day, slot.StartTime, slot.EndTime))
	}
	return previews
}
