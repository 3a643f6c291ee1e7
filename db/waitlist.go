// ABOUTME: Waitlist database operations
// ABOUTME: Deferred leads that can later be promoted to active contacts
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/models"
)

const waitlistColumns = `
	id, company, COALESCE(name, ''), priority, COALESCE(reason, ''),
	COALESCE(planned_action_date, ''), status, COALESCE(outreach_channels, ''),
	COALESCE(links, ''), created_at
`

func CreateWaitlistItem(db *sql.DB, item *models.WaitlistItem) error {
	item.ID = uuid.New()
	item.CreatedAt = time.Now().UTC()
	if item.Priority == "" {
		item.Priority = models.PriorityB
	}
	if item.Status == "" {
		item.Status = models.WaitlistActive
	}

	_, err := db.Exec(`
		INSERT INTO waitlist (
			id, company, name, priority, reason, planned_action_date,
			status, outreach_channels, links, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID.String(), item.Company, item.Name, item.Priority, item.Reason,
		item.PlannedActionDate, item.Status, item.OutreachChannels, item.Links,
		item.CreatedAt)

	return err
}

func scanWaitlistItem(scanner interface{ Scan(...any) error }) (*models.WaitlistItem, error) {
	item := &models.WaitlistItem{}
	var idStr string

	err := scanner.Scan(&idStr, &item.Company, &item.Name, &item.Priority,
		&item.Reason, &item.PlannedActionDate, &item.Status,
		&item.OutreachChannels, &item.Links, &item.CreatedAt)
	if err != nil {
		return nil, err
	}

	if item.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("failed to parse waitlist ID: %w", err)
	}
	return item, nil
}

func GetWaitlistItem(db *sql.DB, id uuid.UUID) (*models.WaitlistItem, error) {
	row := db.QueryRow(`SELECT `+waitlistColumns+` FROM waitlist WHERE id = ?`, id.String())
	item, err := scanWaitlistItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListWaitlist returns active items, highest priority first, oldest first
// within a priority.
func ListWaitlist(db *sql.DB) ([]models.WaitlistItem, error) {
	rows, err := db.Query(`
		SELECT `+waitlistColumns+`
		FROM waitlist WHERE status = ?
		ORDER BY priority ASC, created_at ASC
	`, models.WaitlistActive)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	items := []models.WaitlistItem{}
	for rows.Next() {
		item, err := scanWaitlistItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// ConvertWaitlistItem marks an item converted. The person record itself is
// created separately through the normal person-creation path; conversion
// only retires the lead.
func ConvertWaitlistItem(db *sql.DB, id uuid.UUID) error {
	result, err := db.Exec(`UPDATE waitlist SET status = ? WHERE id = ?`,
		models.WaitlistConverted, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("waitlist item %s not found", id)
	}
	return nil
}
