package models

import "time"

const (
	MessageStatusSent    = "sent"
	MessageStatusReplied = "replied"
)

// Message holds one student message and at most one counselor reply in
// the same row. A counselor reply overwrites Reply on the most recent
// row for the (user, counselor) pair instead of appending a new row.
type Message struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	CounselorID int64      `json:"counselor_id"`
	Message     string     `json:"message"`
	Reply       *string    `json:"reply"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"timestamp"`
	RepliedAt   *time.Time `json:"replied_at"`
}
