// ABOUTME: Weekly outreach analytics computed over a touchpoint window
// ABOUTME: Buckets by display-timezone day and attributes replies to sent days
package analytics

import (
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/outreach/dates"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
)

// attributionWindow is how long after an outbound send a reply still counts
// as a response to it.
const attributionWindow = 7 * 24 * time.Hour

type Day struct {
	Date                       string  `json:"date"`
	SentOutbound               int     `json:"sent_outbound"`
	RepliesInbound             int     `json:"replies_inbound"`
	RecruiterInmailInbound     int     `json:"recruiter_inmail_inbound"`
	RepliesAttributedToSentDay int     `json:"replies_attributed_to_sent_day"`
	ResponseRateBySentDay      float64 `json:"response_rate_by_sent_day"`
}

type WeeklyReport struct {
	WeekStart string `json:"week_start"`
	Days      []Day  `json:"days"`
}

// WeekWindow snaps a date to the Monday of its week and returns the UTC
// instants bounding that display-timezone week, plus the Monday itself.
func WeekWindow(anchor time.Time) (monday, startUTC, endUTC time.Time) {
	loc := dates.Location()
	monday = dates.MondayOf(anchor.In(loc))
	start := time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, loc)
	return monday, start.UTC(), start.AddDate(0, 0, 7).UTC()
}

// Weekly loads the touchpoint window for a week and computes its report.
func Weekly(database *sql.DB, anchor time.Time) (*WeeklyReport, error) {
	monday, startUTC, endUTC := WeekWindow(anchor)
	touchpoints, err := db.TouchpointsBetween(database, startUTC, endUTC)
	if err != nil {
		return nil, err
	}
	return ComputeWeekly(monday, touchpoints), nil
}

// ComputeWeekly buckets touchpoints into the seven display-timezone days
// starting at monday. A reply is attributed to the most recent prior
// outbound send by the same person, provided it landed within the
// attribution window.
func ComputeWeekly(monday time.Time, touchpoints []models.Touchpoint) *WeeklyReport {
	loc := dates.Location()

	report := &WeeklyReport{WeekStart: monday.Format("2006-01-02")}
	dayIndex := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i).Format("2006-01-02")
		dayIndex[date] = i
		report.Days = append(report.Days, Day{Date: date})
	}

	type sentEvent struct {
		at  time.Time
		day string
	}
	sentByPerson := make(map[uuid.UUID][]sentEvent)

	for _, tp := range touchpoints {
		day := tp.Date.In(loc).Format("2006-01-02")
		i, inWeek := dayIndex[day]
		if !inWeek {
			continue
		}

		direction := models.InferDirection(tp.Direction, tp.Outcome)
		outcome := models.NormalizeToken(tp.Outcome)
		channel := models.NormalizeToken(tp.Channel)

		if direction == models.DirectionOutbound && outcome == models.OutcomeSent {
			report.Days[i].SentOutbound++
			sentByPerson[tp.PersonID] = append(sentByPerson[tp.PersonID], sentEvent{at: tp.Date, day: day})
		}
		if direction == models.DirectionInbound && outcome == models.OutcomeReplied {
			report.Days[i].RepliesInbound++
		}
		if direction == models.DirectionInbound && strings.Contains(channel, "inmail") {
			report.Days[i].RecruiterInmailInbound++
		}
	}

	for _, events := range sentByPerson {
		sort.Slice(events, func(i, j int) bool { return events[i].at.Before(events[j].at) })
	}

	for _, tp := range touchpoints {
		direction := models.InferDirection(tp.Direction, tp.Outcome)
		outcome := models.NormalizeToken(tp.Outcome)
		if direction != models.DirectionInbound || outcome != models.OutcomeReplied {
			continue
		}

		events := sentByPerson[tp.PersonID]
		// Rightmost send at or before the reply.
		idx := sort.Search(len(events), func(i int) bool { return events[i].at.After(tp.Date) }) - 1
		if idx < 0 {
			continue
		}
		if tp.Date.Sub(events[idx].at) > attributionWindow {
			continue
		}
		if i, ok := dayIndex[events[idx].day]; ok {
			report.Days[i].RepliesAttributedToSentDay++
		}
	}

	for i := range report.Days {
		if report.Days[i].SentOutbound > 0 {
			report.Days[i].ResponseRateBySentDay =
				float64(report.Days[i].RepliesAttributedToSentDay) / float64(report.Days[i].SentOutbound)
		}
	}

	return report
}
