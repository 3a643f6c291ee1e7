// ABOUTME: Tests for weekly bucketing and reply attribution
package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/outreach/models"
)

// Monday, March 11 2024. Chicago is UTC-5 in March (CDT).
var monday = time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

func tp(personID uuid.UUID, at time.Time, direction, outcome, channel string) models.Touchpoint {
	return models.Touchpoint{
		PersonID:  personID,
		Date:      at,
		Direction: direction,
		Outcome:   outcome,
		Channel:   channel,
	}
}

func TestComputeWeeklyCounts(t *testing.T) {
	person := uuid.New()
	// 15:00 UTC on Mar 11 is 10:00 Chicago, squarely Monday.
	sentAt := time.Date(2024, 3, 11, 15, 0, 0, 0, time.UTC)

	report := ComputeWeekly(monday, []models.Touchpoint{
		tp(person, sentAt, "outbound", "sent", "LinkedIn DM"),
		tp(person, sentAt.Add(2*time.Hour), "inbound", "replied", "LinkedIn DM"),
		tp(person, sentAt.Add(3*time.Hour), "inbound", "", "LinkedIn InMail"),
	})

	require.Len(t, report.Days, 7)
	assert.Equal(t, "2024-03-11", report.WeekStart)

	day := report.Days[0]
	assert.Equal(t, "2024-03-11", day.Date)
	assert.Equal(t, 1, day.SentOutbound)
	assert.Equal(t, 1, day.RepliesInbound)
	assert.Equal(t, 1, day.RecruiterInmailInbound)
	assert.Equal(t, 1, day.RepliesAttributedToSentDay)
	assert.Equal(t, 1.0, day.ResponseRateBySentDay)
}

func TestAttributionPicksMostRecentPriorSend(t *testing.T) {
	person := uuid.New()
	mondaySend := time.Date(2024, 3, 11, 15, 0, 0, 0, time.UTC)
	wednesdaySend := time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)
	thursdayReply := time.Date(2024, 3, 14, 15, 0, 0, 0, time.UTC)

	report := ComputeWeekly(monday, []models.Touchpoint{
		tp(person, mondaySend, "outbound", "sent", "Email"),
		tp(person, wednesdaySend, "outbound", "sent", "Email"),
		tp(person, thursdayReply, "inbound", "replied", "Email"),
	})

	// Attribution lands on Wednesday, not Monday.
	assert.Equal(t, 0, report.Days[0].RepliesAttributedToSentDay)
	assert.Equal(t, 1, report.Days[2].RepliesAttributedToSentDay)
	assert.Equal(t, 1.0, report.Days[2].ResponseRateBySentDay)
}

func TestAttributionWindowExpires(t *testing.T) {
	person := uuid.New()
	// Send lands in-window; the reply comes more than 7 days later, so even
	// though both are in the report range nothing is attributed.
	send := time.Date(2024, 3, 11, 6, 0, 0, 0, time.UTC)
	lateReply := send.Add(8 * 24 * time.Hour)

	report := ComputeWeekly(monday, []models.Touchpoint{
		tp(person, send, "outbound", "sent", "Email"),
		tp(person, lateReply, "inbound", "replied", "Email"),
	})

	for _, day := range report.Days {
		assert.Zero(t, day.RepliesAttributedToSentDay, "day %s", day.Date)
	}
}

func TestRepliesFromStrangersNotAttributed(t *testing.T) {
	sender := uuid.New()
	other := uuid.New()
	sentAt := time.Date(2024, 3, 11, 15, 0, 0, 0, time.UTC)

	report := ComputeWeekly(monday, []models.Touchpoint{
		tp(sender, sentAt, "outbound", "sent", "Email"),
		tp(other, sentAt.Add(time.Hour), "inbound", "replied", "Email"),
	})

	assert.Equal(t, 1, report.Days[0].RepliesInbound)
	assert.Equal(t, 0, report.Days[0].RepliesAttributedToSentDay)
	assert.Equal(t, 0.0, report.Days[0].ResponseRateBySentDay)
}

func TestDirectionInferenceFeedsCounts(t *testing.T) {
	person := uuid.New()
	sentAt := time.Date(2024, 3, 12, 15, 0, 0, 0, time.UTC)

	// No explicit directions: "sent" implies outbound, "replied" inbound.
	report := ComputeWeekly(monday, []models.Touchpoint{
		tp(person, sentAt, "", "sent", "Email"),
		tp(person, sentAt.Add(time.Hour), "", "replied", "Email"),
	})

	day := report.Days[1]
	assert.Equal(t, 1, day.SentOutbound)
	assert.Equal(t, 1, day.RepliesInbound)
	assert.Equal(t, 1, day.RepliesAttributedToSentDay)
}

func TestTouchpointsOutsideWeekIgnored(t *testing.T) {
	person := uuid.New()
	before := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	report := ComputeWeekly(monday, []models.Touchpoint{
		tp(person, before, "outbound", "sent", "Email"),
	})

	for _, day := range report.Days {
		assert.Zero(t, day.SentOutbound)
	}
}
