package services

import (
	"time"

	"github.com/lordbinary11/e-career-mobile/internal/models"
)

const (
	TimeframeUpcoming = "upcoming"
	TimeframePast     = "past"
	TimeframeDeclined = "declined"
)

const scheduleLayout = "2006-01-02 15:04:05"

// MeetingTime combines the stored date and time columns into a wall-clock
// instant. Rows with unparseable values sort as the zero time.
func MeetingTime(meeting models.Meeting) time.Time {
	t, err := time.Parse(scheduleLayout, meeting.ScheduleDate+" "+meeting.ScheduleTime)
	if err != nil {
		return time.Time{}
	}
	return t
}

// MatchesTimeframe is the single source of truth for the Upcoming, Past
// and Declined buckets. The rules intentionally reproduce the behavior the
// mobile client shipped with:
//
//	upcoming: future time AND status in {scheduled, accepted, rescheduled}
//	past:     (elapsed time AND status not in {declined, rescheduled})
//	          OR status in {completed, cancelled}
//	declined: status == declined
//
// Known defect, kept for compatibility: a rescheduled meeting whose new
// time has already elapsed matches no bucket at all.
func MatchesTimeframe(meeting models.Meeting, timeframe string, now time.Time) bool {
	meetingTime := MeetingTime(meeting)

	switch timeframe {
	case TimeframeUpcoming:
		if !meetingTime.After(now) {
			return false
		}
		return meeting.Status == models.MeetingStatusScheduled ||
			meeting.Status == models.MeetingStatusAccepted ||
			meeting.Status == models.MeetingStatusRescheduled
	case TimeframePast:
		if !meetingTime.After(now) &&
			meeting.Status != models.MeetingStatusDeclined &&
			meeting.Status != models.MeetingStatusRescheduled {
			return true
		}
		return meeting.Status == models.MeetingStatusCompleted ||
			meeting.Status == models.MeetingStatusCancelled
	case TimeframeDeclined:
		return meeting.Status == models.MeetingStatusDeclined
	default:
		return false
	}
}

// FilterByTimeframe returns the meetings matching the given bucket, or the
// input unchanged when timeframe is empty.
func FilterByTimeframe(meetings []models.Meeting, timeframe string, now time.Time) []models.Meeting {
	if timeframe == "" {
		return meetings
	}
	filtered := make([]models.Meeting, 0, len(meetings))
	for _, meeting := range meetings {
		if MatchesTimeframe(meeting, timeframe, now) {
			filtered = append(filtered, meeting)
		}
	}
	return filtered
}
