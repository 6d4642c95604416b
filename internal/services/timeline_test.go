package services

import (
	"testing"
	"time"

	"github.com/lordbinary11/e-career-mobile/internal/models"
)

var timelineNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func timelineMeeting(date, clock, status string) models.Meeting {
	return models.Meeting{
		ID:             1,
		UserEmail:      "student@example.com",
		CounselorEmail: "counselor@example.com",
		ScheduleDate:   date,
		ScheduleTime:   clock,
		Status:         status,
	}
}

func TestMatchesTimeframeBuckets(t *testing.T) {
	cases := []struct {
		name      string
		meeting   models.Meeting
		timeframe string
		want      bool
	}{
		{"future scheduled is upcoming", timelineMeeting("2026-06-20", "10:00:00", models.MeetingStatusScheduled), TimeframeUpcoming, true},
		{"future accepted is upcoming", timelineMeeting("2026-06-20", "10:00:00", models.MeetingStatusAccepted), TimeframeUpcoming, true},
		{"future rescheduled is upcoming", timelineMeeting("2026-06-20", "10:00:00", models.MeetingStatusRescheduled), TimeframeUpcoming, true},
		{"future cancelled is not upcoming", timelineMeeting("2026-06-20", "10:00:00", models.MeetingStatusCancelled), TimeframeUpcoming, false},
		{"elapsed scheduled is past", timelineMeeting("2026-06-01", "10:00:00", models.MeetingStatusScheduled), TimeframePast, true},
		{"elapsed accepted is past", timelineMeeting("2026-06-01", "10:00:00", models.MeetingStatusAccepted), TimeframePast, true},
		{"future cancelled is past", timelineMeeting("2026-06-20", "10:00:00", models.MeetingStatusCancelled), TimeframePast, true},
		{"future completed is past", timelineMeeting("2026-06-20", "10:00:00", models.MeetingStatusCompleted), TimeframePast, true},
		{"elapsed declined is not past", timelineMeeting("2026-06-01", "10:00:00", models.MeetingStatusDeclined), TimeframePast, false},
		{"declined matches declined", timelineMeeting("2026-06-01", "10:00:00", models.MeetingStatusDeclined), TimeframeDeclined, true},
		{"accepted does not match declined", timelineMeeting("2026-06-01", "10:00:00", models.MeetingStatusAccepted), TimeframeDeclined, false},
		{"unknown timeframe matches nothing", timelineMeeting("2026-06-20", "10:00:00", models.MeetingStatusScheduled), "archived", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MatchesTimeframe(tc.meeting, tc.timeframe, timelineNow)
			if got != tc.want {
				t.Fatalf("MatchesTimeframe(%q) = %v, want %v", tc.timeframe, got, tc.want)
			}
		})
	}
}

// A rescheduled meeting whose new time has already elapsed matches none
// of the three buckets. Compatibility behavior; see MatchesTimeframe.
func TestElapsedRescheduledMeetingMatchesNoBucket(t *testing.T) {
	meeting := timelineMeeting("2026-06-01", "10:00:00", models.MeetingStatusRescheduled)

	for _, timeframe := range []string{TimeframeUpcoming, TimeframePast, TimeframeDeclined} {
		if MatchesTimeframe(meeting, timeframe, timelineNow) {
			t.Fatalf("elapsed rescheduled meeting unexpectedly matched %q", timeframe)
		}
	}
}

func TestMeetingTimeUnparseableSortsAsZero(t *testing.T) {
	meeting := timelineMeeting("not-a-date", "10:00:00", models.MeetingStatusScheduled)
	if !MeetingTime(meeting).IsZero() {
		t.Fatal("expected zero time for unparseable schedule")
	}
}

func TestFilterByTimeframeEmptyReturnsAll(t *testing.T) {
	meetings := []models.Meeting{
		timelineMeeting("2026-06-01", "10:00:00", models.MeetingStatusDeclined),
		timelineMeeting("2026-06-20", "10:00:00", models.MeetingStatusScheduled),
	}

	got := FilterByTimeframe(meetings, "", timelineNow)
	if len(got) != 2 {
		t.Fatalf("expected all meetings back, got %d", len(got))
	}

	upcoming := FilterByTimeframe(meetings, TimeframeUpcoming, timelineNow)
	if len(upcoming) != 1 || upcoming[0].Status != models.MeetingStatusScheduled {
		t.Fatalf("unexpected upcoming filter result: %+v", upcoming)
	}
}
