package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lordbinary11/e-career-mobile/internal/models"
	"github.com/lordbinary11/e-career-mobile/internal/repository"
	chatws "github.com/lordbinary11/e-career-mobile/internal/websocket"
)

type messageStore interface {
	Create(ctx context.Context, userID int64, counselorID int64, text string) (*models.Message, error)
	GetLatestForPair(ctx context.Context, userID int64, counselorID int64) (*models.Message, error)
	SetReply(ctx context.Context, messageID int64, reply string) (*models.Message, error)
	ListForPair(ctx context.Context, userID int64, counselorID int64) ([]models.Message, error)
}

type MessagingService struct {
	messageRepo   messageStore
	counselorRepo counselorReader
	hub           eventSink
}

func NewMessagingService(
	messageRepo *repository.MessageRepository,
	counselorRepo counselorReader,
	hub eventSink,
) *MessagingService {
	return &MessagingService{
		messageRepo:   messageRepo,
		counselorRepo: counselorRepo,
		hub:           hub,
	}
}

// SendStudentMessage always appends a fresh row with no reply attached.
func (s *MessagingService) SendStudentMessage(
	ctx context.Context,
	userID int64,
	counselorID int64,
	text string,
) (*models.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || counselorID <= 0 {
		return nil, ErrInvalidInput
	}

	if _, err := s.counselorRepo.GetByID(ctx, counselorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCounselorNotFound
		}
		return nil, err
	}

	message, err := s.messageRepo.Create(ctx, userID, counselorID, trimmed)
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(chatws.Event{
		Type:     "message",
		Channels: []string{chatws.CounselorChannel(counselorID)},
		Data:     message,
	})
	return message, nil
}

// SendCounselorReply attaches the text as the reply on the most recent
// row for the pair, overwriting any reply already there. A second reply
// before the student writes again therefore replaces the first. When no
// row exists at all, a counselor-originated row is inserted with only the
// message column populated.
func (s *MessagingService) SendCounselorReply(
	ctx context.Context,
	counselorID int64,
	userID int64,
	text string,
) (*models.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || userID <= 0 {
		return nil, ErrInvalidInput
	}

	latest, err := s.messageRepo.GetLatestForPair(ctx, userID, counselorID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var message *models.Message
	if latest != nil {
		message, err = s.messageRepo.SetReply(ctx, latest.ID, trimmed)
	} else {
		message, err = s.messageRepo.Create(ctx, userID, counselorID, trimmed)
	}
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(chatws.Event{
		Type:     "message",
		Channels: []string{chatws.StudentChannel(userID)},
		Data:     message,
	})
	return message, nil
}

// ListThread returns the full ordered row set for a pair. Actors can only
// read threads they are part of; anything else reports not found rather
// than forbidden so thread existence does not leak.
func (s *MessagingService) ListThread(
	ctx context.Context,
	actorID int64,
	role string,
	userID int64,
	counselorID int64,
) ([]models.Message, error) {
	switch role {
	case "student":
		if userID != actorID {
			return nil, pgx.ErrNoRows
		}
	case "counselor":
		if counselorID != actorID {
			return nil, pgx.ErrNoRows
		}
	default:
		return nil, ErrForbidden
	}
	return s.messageRepo.ListForPair(ctx, userID, counselorID)
}
