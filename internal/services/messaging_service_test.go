package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lordbinary11/e-career-mobile/internal/models"
	chatws "github.com/lordbinary11/e-career-mobile/internal/websocket"
)

type fakeMessageStore struct {
	rows   []models.Message
	nextID int64
}

func (f *fakeMessageStore) Create(_ context.Context, userID, counselorID int64, text string) (*models.Message, error) {
	f.nextID++
	row := models.Message{
		ID:          f.nextID,
		UserID:      userID,
		CounselorID: counselorID,
		Message:     text,
		Status:      models.MessageStatusSent,
		CreatedAt:   time.Now(),
	}
	f.rows = append(f.rows, row)
	return &row, nil
}

func (f *fakeMessageStore) GetLatestForPair(_ context.Context, userID, counselorID int64) (*models.Message, error) {
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].UserID == userID && f.rows[i].CounselorID == counselorID {
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMessageStore) SetReply(_ context.Context, messageID int64, reply string) (*models.Message, error) {
	for i := range f.rows {
		if f.rows[i].ID == messageID {
			now := time.Now()
			f.rows[i].Reply = &reply
			f.rows[i].Status = models.MessageStatusReplied
			f.rows[i].RepliedAt = &now
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMessageStore) ListForPair(_ context.Context, userID, counselorID int64) ([]models.Message, error) {
	out := make([]models.Message, 0)
	for _, row := range f.rows {
		if row.UserID == userID && row.CounselorID == counselorID {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeCounselorReader struct {
	counselor *models.Counselor
	err       error
}

func (f *fakeCounselorReader) GetByID(_ context.Context, _ int64) (*models.Counselor, error) {
	return f.counselor, f.err
}

type recordingSink struct {
	events []chatws.Event
}

func (r *recordingSink) Broadcast(event chatws.Event) {
	r.events = append(r.events, event)
}

func newTestMessagingService(store *fakeMessageStore) (*MessagingService, *recordingSink) {
	sink := &recordingSink{}
	svc := &MessagingService{
		messageRepo:   store,
		counselorRepo: &fakeCounselorReader{counselor: &models.Counselor{ID: 7, Email: "c@example.com"}},
		hub:           sink,
	}
	return svc, sink
}

func TestStudentMessagesAlwaysAppend(t *testing.T) {
	store := &fakeMessageStore{}
	svc, sink := newTestMessagingService(store)

	if _, err := svc.SendStudentMessage(context.Background(), 42, 7, "first"); err != nil {
		t.Fatalf("SendStudentMessage: %v", err)
	}
	if _, err := svc.SendStudentMessage(context.Background(), 42, 7, "second"); err != nil {
		t.Fatalf("SendStudentMessage: %v", err)
	}

	if len(store.rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(store.rows))
	}
	if len(sink.events) != 2 || sink.events[0].Type != "message" {
		t.Fatalf("unexpected events: %+v", sink.events)
	}
	if sink.events[0].Channels[0] != chatws.CounselorChannel(7) {
		t.Fatalf("expected counselor channel, got %q", sink.events[0].Channels[0])
	}
}

// A second counselor reply before the student writes again lands on the
// same row and replaces the first reply.
func TestSecondReplyOverwritesFirst(t *testing.T) {
	store := &fakeMessageStore{}
	svc, _ := newTestMessagingService(store)

	if _, err := svc.SendStudentMessage(context.Background(), 42, 7, "can we talk about internships?"); err != nil {
		t.Fatalf("SendStudentMessage: %v", err)
	}
	if _, err := svc.SendCounselorReply(context.Background(), 7, 42, "sure, tomorrow works"); err != nil {
		t.Fatalf("SendCounselorReply: %v", err)
	}
	updated, err := svc.SendCounselorReply(context.Background(), 7, 42, "actually, make it friday")
	if err != nil {
		t.Fatalf("SendCounselorReply: %v", err)
	}

	if len(store.rows) != 1 {
		t.Fatalf("expected reply to reuse the row, got %d rows", len(store.rows))
	}
	if updated.Reply == nil || *updated.Reply != "actually, make it friday" {
		t.Fatalf("expected overwritten reply, got %+v", updated.Reply)
	}
	if updated.Status != models.MessageStatusReplied {
		t.Fatalf("expected replied status, got %q", updated.Status)
	}
}

func TestReplyWithoutThreadCreatesCounselorRow(t *testing.T) {
	store := &fakeMessageStore{}
	svc, sink := newTestMessagingService(store)

	message, err := svc.SendCounselorReply(context.Background(), 7, 42, "checking in before exams")
	if err != nil {
		t.Fatalf("SendCounselorReply: %v", err)
	}

	if len(store.rows) != 1 || message.Reply != nil {
		t.Fatalf("expected a fresh row with no reply, got %+v", message)
	}
	if sink.events[0].Channels[0] != chatws.StudentChannel(42) {
		t.Fatalf("expected student channel, got %q", sink.events[0].Channels[0])
	}
}

func TestListThreadHidesForeignThreads(t *testing.T) {
	store := &fakeMessageStore{}
	svc, _ := newTestMessagingService(store)

	if _, err := svc.SendStudentMessage(context.Background(), 42, 7, "hello"); err != nil {
		t.Fatalf("SendStudentMessage: %v", err)
	}

	if _, err := svc.ListThread(context.Background(), 99, "student", 42, 7); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected no rows for foreign student, got %v", err)
	}
	if _, err := svc.ListThread(context.Background(), 8, "counselor", 42, 7); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected no rows for foreign counselor, got %v", err)
	}

	messages, err := svc.ListThread(context.Background(), 42, "student", 42, 7)
	if err != nil {
		t.Fatalf("ListThread: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
}

func TestSendStudentMessageRejectsBlankText(t *testing.T) {
	store := &fakeMessageStore{}
	svc, _ := newTestMessagingService(store)

	if _, err := svc.SendStudentMessage(context.Background(), 42, 7, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
