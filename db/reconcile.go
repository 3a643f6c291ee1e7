// ABOUTME: Consistency passes over historical data
// ABOUTME: Closes people with closed-outcome touchpoints and backfills directions
package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/outreach/models"
)

// ReconcileStatuses is a best-effort consistency pass: any person with a
// touchpoint whose outcome means closed gets status closed, and every closed
// person has their open follow-ups closed. Returns how many people changed
// status.
func ReconcileStatuses(db *sql.DB) (int, error) {
	rows, err := db.Query(`
		SELECT DISTINCT person_id FROM touchpoints
		WHERE LOWER(COALESCE(outcome, '')) = 'closed'
		   OR LOWER(COALESCE(outcome, '')) = 'not_interested'
		   OR LOWER(COALESCE(outcome, '')) LIKE 'closed%'
		   OR LOWER(COALESCE(outcome, '')) LIKE '%not interested%'
	`)
	if err != nil {
		return 0, err
	}

	shouldBeClosed := make(map[uuid.UUID]bool)
	for rows.Next() {
		var idStr string
		if err := rows.Scan(&idStr); err != nil {
			_ = rows.Close()
			return 0, err
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("failed to parse person ID: %w", err)
		}
		shouldBeClosed[id] = true
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, err
	}
	_ = rows.Close()

	people, err := ListPeople(db)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, person := range people {
		isClosed := models.NormalizeToken(person.Status) == models.StatusClosed

		if shouldBeClosed[person.ID] && !isClosed {
			if err := ClosePerson(db, person.ID); err != nil {
				return updated, err
			}
			updated++
			continue
		}

		// Already-closed people still get their open follow-ups swept.
		if isClosed {
			if err := ClosePerson(db, person.ID); err != nil {
				return updated, err
			}
		}
	}

	return updated, nil
}

// BackfillDirections rewrites any touchpoint whose stored direction differs
// from what the direction-inference rules produce. Returns the number of
// rows changed.
func BackfillDirections(db *sql.DB) (int, error) {
	rows, err := db.Query(`SELECT id, COALESCE(direction, ''), COALESCE(outcome, '') FROM touchpoints`)
	if err != nil {
		return 0, err
	}

	type fix struct {
		id        ulid.ULID
		direction string
	}
	var fixes []fix
	for rows.Next() {
		var idStr, direction, outcome string
		if err := rows.Scan(&idStr, &direction, &outcome); err != nil {
			_ = rows.Close()
			return 0, err
		}
		id, err := ulid.Parse(idStr)
		if err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("failed to parse touchpoint ID: %w", err)
		}
		desired := models.InferDirection(direction, outcome)
		if models.NormalizeDirection(direction) != desired {
			fixes = append(fixes, fix{id: id, direction: desired})
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, err
	}
	_ = rows.Close()

	for _, f := range fixes {
		if _, err := db.Exec(`UPDATE touchpoints SET direction = ? WHERE id = ?`, f.direction, f.id.String()); err != nil {
			return 0, err
		}
	}
	return len(fixes), nil
}
