package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/lordbinary11/e-career-mobile/internal/models"
)

type MeetingRepository struct {
	db DBTX
}

func NewMeetingRepository(db DBTX) *MeetingRepository {
	return &MeetingRepository{db: db}
}

type CreateMeetingInput struct {
	UserEmail       string
	CounselorEmail  string
	ScheduleDate    string
	ScheduleTime    string
	Purpose         string
	IsVirtualMeet   bool
	MeetingPlatform *string
	MeetingLink     *string
}

const meetingColumns = `id, user_email, counselor_email, schedule_date::text, schedule_time::text, purpose, status, is_virtual_meet, meeting_platform, meeting_link, created_at`

func scanMeeting(row pgx.Row) (*models.Meeting, error) {
	var meeting models.Meeting
	err := row.Scan(
		&meeting.ID,
		&meeting.UserEmail,
		&meeting.CounselorEmail,
		&meeting.ScheduleDate,
		&meeting.ScheduleTime,
		&meeting.Purpose,
		&meeting.Status,
		&meeting.IsVirtualMeet,
		&meeting.MeetingPlatform,
		&meeting.MeetingLink,
		&meeting.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *MeetingRepository) Create(ctx context.Context, input CreateMeetingInput) (*models.Meeting, error) {
	query := `
		INSERT INTO scheduled_meetings
			(user_email, counselor_email, schedule_date, schedule_time, purpose, status,
			 is_virtual_meet, meeting_platform, meeting_link)
		VALUES ($1, $2, $3, $4, $5, 'scheduled', $6, $7, $8)
		RETURNING ` + meetingColumns
	return scanMeeting(r.db.QueryRow(ctx, query,
		input.UserEmail,
		input.CounselorEmail,
		input.ScheduleDate,
		input.ScheduleTime,
		input.Purpose,
		input.IsVirtualMeet,
		input.MeetingPlatform,
		input.MeetingLink,
	))
}

// GetByIDForCounselor resolves ownership with an email equality match, so
// a meeting that exists but belongs to another counselor scans as no rows.
func (r *MeetingRepository) GetByIDForCounselor(
	ctx context.Context,
	meetingID int64,
	counselorEmail string,
) (*models.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + `
		FROM scheduled_meetings
		WHERE id = $1 AND counselor_email = $2
	`
	return scanMeeting(r.db.QueryRow(ctx, query, meetingID, counselorEmail))
}

func (r *MeetingRepository) listByEmail(ctx context.Context, column, email string) ([]models.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + `
		FROM scheduled_meetings
		WHERE ` + column + ` = $1
		ORDER BY schedule_date ASC, schedule_time ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meetings := make([]models.Meeting, 0)
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, *meeting)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *MeetingRepository) ListForCounselor(ctx context.Context, counselorEmail string) ([]models.Meeting, error) {
	return r.listByEmail(ctx, "counselor_email", counselorEmail)
}

func (r *MeetingRepository) ListForUser(ctx context.Context, userEmail string) ([]models.Meeting, error) {
	return r.listByEmail(ctx, "user_email", userEmail)
}

func (r *MeetingRepository) UpdateStatus(ctx context.Context, meetingID int64, status string) (*models.Meeting, error) {
	query := `
		UPDATE scheduled_meetings
		SET status = $2
		WHERE id = $1
		RETURNING ` + meetingColumns
	return scanMeeting(r.db.QueryRow(ctx, query, meetingID, status))
}

func (r *MeetingRepository) Reschedule(
	ctx context.Context,
	meetingID int64,
	newDate string,
	newTime string,
) (*models.Meeting, error) {
	query := `
		UPDATE scheduled_meetings
		SET schedule_date = $2, schedule_time = $3, status = 'rescheduled'
		WHERE id = $1
		RETURNING ` + meetingColumns
	return scanMeeting(r.db.QueryRow(ctx, query, meetingID, newDate, newTime))
}
