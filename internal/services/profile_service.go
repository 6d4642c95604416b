package services

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lordbinary11/e-career-mobile/internal/models"
	"github.com/lordbinary11/e-career-mobile/internal/repository"
)

type ProfileService struct {
	db            *pgxpool.Pool
	userRepo      *repository.UserRepository
	counselorRepo *repository.CounselorRepository
}

func NewProfileService(
	db *pgxpool.Pool,
	userRepo *repository.UserRepository,
	counselorRepo *repository.CounselorRepository,
) *ProfileService {
	return &ProfileService{
		db:            db,
		userRepo:      userRepo,
		counselorRepo: counselorRepo,
	}
}

func (s *ProfileService) GetUserProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *ProfileService) UpdateUserProfile(
	ctx context.Context,
	userID int64,
	input repository.UpdateUserProfileInput,
) (*models.User, error) {
	return s.userRepo.UpdateProfile(ctx, userID, input)
}

func (s *ProfileService) GetCounselorProfile(ctx context.Context, counselorID int64) (*models.CounselorDetail, error) {
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

type UpdateCounselorProfileInput struct {
	Profile      repository.UpdateCounselorProfileInput
	Availability []repository.AvailabilitySlotInput
}

// UpdateCounselorProfile applies the field updates and, when an
// availability list is present, replaces the slot set in the same
// transaction. A nil Availability leaves the existing slots alone; an
// empty one clears them.
func (s *ProfileService) UpdateCounselorProfile(
	ctx context.Context,
	counselorID int64,
	input UpdateCounselorProfileInput,
) (*models.CounselorDetail, error) {
	if input.Availability != nil {
		for _, slot := range input.Availability {
			if strings.TrimSpace(slot.Day) == "" ||
				strings.TrimSpace(slot.StartTime) == "" ||
				strings.TrimSpace(slot.EndTime) == "" {
				return nil, ErrInvalidInput
			}
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txCounselorRepo := repository.NewCounselorRepository(tx)

	counselor, err := txCounselorRepo.UpdateProfile(ctx, counselorID, input.Profile)
	if err != nil {
		return nil, err
	}
	if input.Availability != nil {
		if err := txCounselorRepo.ReplaceAvailability(ctx, counselorID, input.Availability); err != nil {
			return nil, err
		}
	}
	slots, err := txCounselorRepo.ListAvailability(ctx, counselorID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &models.CounselorDetail{
		Counselor:    *counselor,
		Availability: slots,
		SlotPreviews: SlotPreviews(slots),
	}, nil
}
