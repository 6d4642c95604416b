package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lordbinary11/e-career-mobile/internal/models"
	"github.com/lordbinary11/e-career-mobile/internal/repository"
	chatws "github.com/lordbinary11/e-career-mobile/internal/websocket"
)

const (
	ActionAccept     = "accept"
	ActionReschedule = "reschedule"
	ActionCancel     = "cancel"
	ActionDecline    = "decline"
)

type counselorReader interface {
	GetByID(ctx context.Context, id int64) (*models.Counselor, error)
}

type userByEmailReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type eventSink interface {
	Broadcast(event chatws.Event)
}

type meetingStore interface {
	Create(ctx context.Context, input repository.CreateMeetingInput) (*models.Meeting, error)
	GetByIDForCounselor(ctx context.Context, meetingID int64, counselorEmail string) (*models.Meeting, error)
	ListForUser(ctx context.Context, userEmail string) ([]models.Meeting, error)
	ListForCounselor(ctx context.Context, counselorEmail string) ([]models.Meeting, error)
}

type meetingMutator interface {
	UpdateStatus(ctx context.Context, meetingID int64, status string) (*models.Meeting, error)
	Reschedule(ctx context.Context, meetingID int64, newDate string, newTime string) (*models.Meeting, error)
}

type notificationCreator interface {
	Create(ctx context.Context, input repository.CreateNotificationInput) (*models.Notification, error)
}

// meetingActionTx groups a status transition with its notification insert
// so both land or neither does.
type meetingActionTx interface {
	Meetings() meetingMutator
	Notifications() notificationCreator
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type pgxMeetingTx struct {
	tx pgx.Tx
}

func (t *pgxMeetingTx) Meetings() meetingMutator {
	return repository.NewMeetingRepository(t.tx)
}

func (t *pgxMeetingTx) Notifications() notificationCreator {
	return repository.NewNotificationRepository(t.tx)
}

func (t *pgxMeetingTx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *pgxMeetingTx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

type MeetingService struct {
	beginTx       func(ctx context.Context) (meetingActionTx, error)
	meetingRepo   meetingStore
	userRepo      userByEmailReader
	counselorRepo counselorReader
	hub           eventSink
	now           func() time.Time
}

func NewMeetingService(
	db *pgxpool.Pool,
	meetingRepo *repository.MeetingRepository,
	userRepo userByEmailReader,
	counselorRepo counselorReader,
	hub eventSink,
) *MeetingService {
	return &MeetingService{
		beginTx: func(ctx context.Context) (meetingActionTx, error) {
			tx, err := db.Begin(ctx)
			if err != nil {
				return nil, err
			}
			return &pgxMeetingTx{tx: tx}, nil
		},
		meetingRepo:   meetingRepo,
		userRepo:      userRepo,
		counselorRepo: counselorRepo,
		hub:           hub,
		now:           time.Now,
	}
}

type ScheduleMeetingInput struct {
	CounselorID     int64
	ScheduleDate    string
	Purpose         string
	IsVirtualMeet   bool
	MeetingPlatform *string
	MeetingLink     *string
}

// Schedule creates a meeting request in the scheduled state. Meetings are
// keyed by both parties' emails, matching the schema this service
// replaced.
func (s *MeetingService) Schedule(
	ctx context.Context,
	userID int64,
	input ScheduleMeetingInput,
) (*models.Meeting, error) {
	if input.CounselorID <= 0 || strings.TrimSpace(input.Purpose) == "" {
		return nil, ErrInvalidInput
	}

	scheduleDate, scheduleTime, err := splitDatetime(input.ScheduleDate)
	if err != nil {
		return nil, ErrInvalidDatetime
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	counselor, err := s.counselorRepo.GetByID(ctx, input.CounselorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCounselorNotFound
		}
		return nil, err
	}

	meetingLink := input.MeetingLink
	if input.IsVirtualMeet && (meetingLink == nil || strings.TrimSpace(*meetingLink) == "") {
		generated := "https://meet.ecareerguide.app/room/" + uuid.NewString()
		meetingLink = &generated
	}

	var meetingPlatform *string
	if input.IsVirtualMeet {
		meetingPlatform = input.MeetingPlatform
	}

	meeting, err := s.meetingRepo.Create(ctx, repository.CreateMeetingInput{
		UserEmail:       user.Email,
		CounselorEmail:  counselor.Email,
		ScheduleDate:    scheduleDate,
		ScheduleTime:    scheduleTime,
		Purpose:         strings.TrimSpace(input.Purpose),
		IsVirtualMeet:   input.IsVirtualMeet,
		MeetingPlatform: meetingPlatform,
		MeetingLink:     meetingLink,
	})
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(chatws.Event{
		Type:     "meeting_scheduled",
		Channels: []string{chatws.CounselorChannel(counselor.ID)},
		Data:     meeting,
	})
	return meeting, nil
}

// List returns the actor's meetings, optionally narrowed to one of the
// upcoming/past/declined buckets computed by MatchesTimeframe.
func (s *MeetingService) List(
	ctx context.Context,
	actorID int64,
	role string,
	timeframe string,
) ([]models.Meeting, error) {
	var meetings []models.Meeting
	switch role {
	case "student":
		user, err := s.userRepo.GetByID(ctx, actorID)
		if err != nil {
			return nil, err
		}
		meetings, err = s.meetingRepo.ListForUser(ctx, user.Email)
		if err != nil {
			return nil, err
		}
	case "counselor":
		counselor, err := s.counselorRepo.GetByID(ctx, actorID)
		if err != nil {
			return nil, err
		}
		meetings, err = s.meetingRepo.ListForCounselor(ctx, counselor.Email)
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrForbidden
	}

	return FilterByTimeframe(meetings, timeframe, s.now()), nil
}

type MeetingActionInput struct {
	MeetingID   int64
	Action      string
	NewDatetime string
	Reason      string
}

// Act applies a counselor decision to a meeting. Ownership is an email
// equality match: a meeting belonging to another counselor reports no
// rows, the same as one that does not exist.
//
// No transition guards are enforced beyond what the original API did:
// accepting an already accepted meeting succeeds silently, and decline is
// legal from any state.
func (s *MeetingService) Act(
	ctx context.Context,
	counselorID int64,
	input MeetingActionInput,
) (*models.Meeting, error) {
	switch input.Action {
	case ActionAccept, ActionReschedule, ActionCancel, ActionDecline:
	default:
		return nil, ErrInvalidAction
	}

	var newDate, newTime string
	if input.Action == ActionReschedule {
		var err error
		newDate, newTime, err = splitDatetime(input.NewDatetime)
		if err != nil {
			return nil, ErrInvalidDatetime
		}
	}

	counselor, err := s.counselorRepo.GetByID(ctx, counselorID)
	if err != nil {
		return nil, err
	}

	meeting, err := s.meetingRepo.GetByIDForCounselor(ctx, input.MeetingID, counselor.Email)
	if err != nil {
		return nil, err
	}

	// The student side of the email key may not resolve to an account;
	// the transition still goes through, just without a notification.
	student, err := s.userRepo.GetByEmail(ctx, meeting.UserEmail)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var updated *models.Meeting
	var notificationText string

	switch input.Action {
	case ActionAccept:
		updated, err = tx.Meetings().UpdateStatus(ctx, meeting.ID, models.MeetingStatusAccepted)
		if err != nil {
			return nil, err
		}
		notificationText = fmt.Sprintf(
			"Your meeting request has been accepted by the counselor for %s %s",
			meeting.ScheduleDate, shortTime(meeting.ScheduleTime),
		)
	case ActionReschedule:
		updated, err = tx.Meetings().Reschedule(ctx, meeting.ID, newDate, newTime)
		if err != nil {
			return nil, err
		}
		notificationText = fmt.Sprintf(
			"Your meeting has been rescheduled to %s %s", newDate, shortTime(newTime),
		)
		notificationText = appendReason(notificationText, input.Reason)
	case ActionCancel:
		updated, err = tx.Meetings().UpdateStatus(ctx, meeting.ID, models.MeetingStatusCancelled)
		if err != nil {
			return nil, err
		}
		notificationText = appendReason("Your meeting has been cancelled by the counselor.", input.Reason)
	case ActionDecline:
		updated, err = tx.Meetings().UpdateStatus(ctx, meeting.ID, models.MeetingStatusDeclined)
		if err != nil {
			return nil, err
		}
		notificationText = appendReason("Your meeting request has been declined by the counselor.", input.Reason)
	}

	var notification *models.Notification
	if student != nil {
		meetingID := meeting.ID
		notification, err = tx.Notifications().Create(ctx, repository.CreateNotificationInput{
			UserID:    student.ID,
			SenderID:  counselorID,
			Type:      "meeting_" + input.Action,
			Message:   notificationText,
			RelatedID: &meetingID,
		})
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if student != nil {
		s.hub.Broadcast(chatws.Event{
			Type:     "notification",
			Channels: []string{chatws.StudentChannel(student.ID)},
			Data:     notification,
		})
	}
	return updated, nil
}

// splitDatetime accepts "YYYY-MM-DD HH:mm:ss" and returns the date and
// time halves after validating both parse.
func splitDatetime(value string) (string, string, error) {
	trimmed := strings.TrimSpace(value)
	if _, err := time.Parse(scheduleLayout, trimmed); err != nil {
		return "", "", err
	}
	parts := strings.SplitN(trimmed, " ", 2)
	return parts[0], parts[1], nil
}

func shortTime(value string) string {
	if len(value) >= 5 {
		return value[:5]
	}
	return value
}

func appendReason(message, reason string) string {
	if strings.TrimSpace(reason) == "" {
		return message
	}
	return message + " Reason: " + reason
}
