package models

import "time"

const (
	MeetingStatusScheduled   = "scheduled"
	MeetingStatusAccepted    = "accepted"
	MeetingStatusCompleted   = "completed"
	MeetingStatusCancelled   = "cancelled"
	MeetingStatusRescheduled = "rescheduled"
	MeetingStatusDeclined    = "declined"
)

// Meeting rows reference both parties by email rather than id, matching
// the schema this service replaced. Ownership checks compare the acting
// counselor's email against CounselorEmail.
type Meeting struct {
	ID              int64     `json:"id"`
	UserEmail       string    `json:"user_email"`
	CounselorEmail  string    `json:"counselor_email"`
	ScheduleDate    string    `json:"schedule_date"`
	ScheduleTime    string    `json:"schedule_time"`
	Purpose         string    `json:"purpose"`
	Status          string    `json:"status"`
	IsVirtualMeet   bool      `json:"is_virtual_meet"`
	MeetingPlatform *string   `json:"meeting_platform"`
	MeetingLink     *string   `json:"meeting_link"`
	CreatedAt       time.Time `json:"created_at"`
}
