package models

import "time"

// Counselor accounts live in their own table, separate from student users.
// Login requests carry a login_as discriminator to pick the table.
type Counselor struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Name           string    `json:"name"`
	Phone          *string   `json:"phone"`
	Specialization string    `json:"specialization"`
	Experience     int       `json:"experience"`
	Bio            *string   `json:"bio"`
	Rating         *float64  `json:"rating"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AvailabilitySlot rows are stored exactly as submitted: duplicates,
// overlaps and contradictory ranges are accepted as-is.
type AvailabilitySlot struct {
	ID          int64  `json:"id"`
	CounselorID int64  `json:"counselor_id"`
	Day         string `json:"day"`
	StartTime   string `json:"start"`
	EndTime     string `json:"end"`
	Position    int    `json:"position"`
}

type CounselorDetail struct {
	Counselor
	Availability []AvailabilitySlot `json:"availability"`
	SlotPreviews []string           `json:"slot_previews"`
}
