// ABOUTME: Touchpoint database operations
// ABOUTME: ULID identifiers make insertion order and chronology agree
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/outreach/models"
)

const touchpointColumns = `
	id, person_id, date, channel, COALESCE(direction, ''), COALESCE(outcome, ''),
	COALESCE(message_preview, ''), COALESCE(next_step_action, '')
`

func CreateTouchpoint(db *sql.DB, tp *models.Touchpoint) error {
	if tp.ID.Compare(ulid.ULID{}) == 0 {
		tp.ID = ulid.Make()
	}
	if tp.Date.IsZero() {
		tp.Date = time.Now().UTC()
	}
	tp.Direction = models.InferDirection(tp.Direction, tp.Outcome)

	_, err := db.Exec(`
		INSERT INTO touchpoints (
			id, person_id, date, channel, direction, outcome,
			message_preview, next_step_action
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, tp.ID.String(), tp.PersonID.String(), tp.Date.UTC(), tp.Channel,
		tp.Direction, tp.Outcome, tp.MessagePreview, tp.NextStepAction)

	return err
}

func scanTouchpoint(scanner interface{ Scan(...any) error }) (*models.Touchpoint, error) {
	tp := &models.Touchpoint{}
	var idStr, personIDStr string

	err := scanner.Scan(&idStr, &personIDStr, &tp.Date, &tp.Channel,
		&tp.Direction, &tp.Outcome, &tp.MessagePreview, &tp.NextStepAction)
	if err != nil {
		return nil, err
	}

	if tp.ID, err = ulid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("failed to parse touchpoint ID: %w", err)
	}
	if tp.PersonID, err = uuid.Parse(personIDStr); err != nil {
		return nil, fmt.Errorf("failed to parse person ID: %w", err)
	}
	return tp, nil
}

// ListTouchpoints returns a person's touchpoints in chronological order.
// Date is the primary key of the sort; the ULID breaks same-instant ties in
// creation order, so "last element" is always the latest touch.
func ListTouchpoints(db *sql.DB, personID uuid.UUID) ([]models.Touchpoint, error) {
	rows, err := db.Query(`
		SELECT `+touchpointColumns+`
		FROM touchpoints WHERE person_id = ?
		ORDER BY date ASC, id ASC
	`, personID.String())
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	touchpoints := []models.Touchpoint{}
	for rows.Next() {
		tp, err := scanTouchpoint(rows)
		if err != nil {
			return nil, err
		}
		touchpoints = append(touchpoints, *tp)
	}
	return touchpoints, rows.Err()
}

// TouchpointsBetween returns all touchpoints with date in [start, end),
// across all people, for analytics windows.
func TouchpointsBetween(db *sql.DB, start, end time.Time) ([]models.Touchpoint, error) {
	rows, err := db.Query(`
		SELECT `+touchpointColumns+`
		FROM touchpoints WHERE date >= ? AND date < ?
		ORDER BY date ASC, id ASC
	`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var touchpoints []models.Touchpoint
	for rows.Next() {
		tp, err := scanTouchpoint(rows)
		if err != nil {
			return nil, err
		}
		touchpoints = append(touchpoints, *tp)
	}
	return touchpoints, rows.Err()
}

func attachTouchpoints(db *sql.DB, people []models.Person, index map[uuid.UUID]int) error {
	rows, err := db.Query(`SELECT ` + touchpointColumns + ` FROM touchpoints ORDER BY date ASC, id ASC`)
	if err != nil {
		return err
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		tp, err := scanTouchpoint(rows)
		if err != nil {
			return err
		}
		if i, ok := index[tp.PersonID]; ok {
			people[i].Touchpoints = append(people[i].Touchpoints, *tp)
		}
	}
	return rows.Err()
}
