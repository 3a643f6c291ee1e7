// ABOUTME: Person database operations
// ABOUTME: Handles CRUD plus batch loading of touchpoints and follow-ups
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/models"
)

const personColumns = `
	id, company_id, name, COALESCE(title, ''), COALESCE(linkedin_url, ''),
	relationship, why_reached_out, sponsor_confidence, status,
	COALESCE(outreach_channels, ''), COALESCE(links, ''), created_at, updated_at
`

func CreatePerson(db *sql.DB, person *models.Person) error {
	person.ID = uuid.New()
	now := time.Now().UTC()
	person.CreatedAt = now
	person.UpdatedAt = now
	if person.Relationship == "" {
		person.Relationship = models.RelationshipCold
	}
	if person.SponsorConfidence == "" {
		person.SponsorConfidence = models.SponsorUnknown
	}
	if person.Status == "" {
		person.Status = models.StatusOpen
	}

	_, err := db.Exec(`
		INSERT INTO people (
			id, company_id, name, title, linkedin_url, relationship,
			why_reached_out, sponsor_confidence, status, outreach_channels,
			links, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, person.ID.String(), person.CompanyID.String(), person.Name, person.Title,
		person.LinkedInURL, person.Relationship, person.WhyReachedOut,
		person.SponsorConfidence, person.Status, person.OutreachChannels,
		person.Links, person.CreatedAt, person.UpdatedAt)

	return err
}

func scanPerson(scanner interface{ Scan(...any) error }) (*models.Person, error) {
	p := &models.Person{}
	var idStr, companyIDStr string

	err := scanner.Scan(
		&idStr, &companyIDStr, &p.Name, &p.Title, &p.LinkedInURL,
		&p.Relationship, &p.WhyReachedOut, &p.SponsorConfidence, &p.Status,
		&p.OutreachChannels, &p.Links, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if p.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("failed to parse person ID: %w", err)
	}
	if p.CompanyID, err = uuid.Parse(companyIDStr); err != nil {
		return nil, fmt.Errorf("failed to parse company ID: %w", err)
	}
	p.Touchpoints = []models.Touchpoint{}
	p.FollowUps = []models.FollowUp{}
	return p, nil
}

// GetPerson loads a person with their company, touchpoints (chronological),
// and follow-ups. Returns nil without error when not found.
func GetPerson(db *sql.DB, id uuid.UUID) (*models.Person, error) {
	row := db.QueryRow(`SELECT `+personColumns+` FROM people WHERE id = ?`, id.String())
	person, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	person.Company, err = GetCompany(db, person.CompanyID)
	if err != nil {
		return nil, err
	}

	person.Touchpoints, err = ListTouchpoints(db, person.ID)
	if err != nil {
		return nil, err
	}

	person.FollowUps, err = ListFollowUps(db, person.ID)
	if err != nil {
		return nil, err
	}

	return person, nil
}

// ListPeople returns every person with company, touchpoints, and follow-ups
// attached. Children are batch-loaded with one query per table rather than
// per person.
func ListPeople(db *sql.DB) ([]models.Person, error) {
	rows, err := db.Query(`SELECT ` + personColumns + ` FROM people ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var people []models.Person
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		index[p.ID] = len(people)
		people = append(people, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	companies, err := companiesByID(db)
	if err != nil {
		return nil, err
	}
	for i := range people {
		if c, ok := companies[people[i].CompanyID]; ok {
			company := c
			people[i].Company = &company
		}
	}

	if err := attachTouchpoints(db, people, index); err != nil {
		return nil, err
	}
	if err := attachFollowUps(db, people, index); err != nil {
		return nil, err
	}

	return people, nil
}

func companiesByID(db *sql.DB) (map[uuid.UUID]models.Company, error) {
	rows, err := db.Query(`
		SELECT id, name, sponsor_status, COALESCE(notes, ''), created_at, updated_at
		FROM companies
	`)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	companies := make(map[uuid.UUID]models.Company)
	for rows.Next() {
		var c models.Company
		var idStr string
		if err := rows.Scan(&idStr, &c.Name, &c.SponsorStatus, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if c.ID, err = uuid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("failed to parse company ID: %w", err)
		}
		companies[c.ID] = c
	}
	return companies, rows.Err()
}

func UpdatePerson(db *sql.DB, id uuid.UUID, updates *models.Person) error {
	updates.UpdatedAt = time.Now().UTC()

	_, err := db.Exec(`
		UPDATE people
		SET company_id = ?, name = ?, title = ?, linkedin_url = ?,
		    relationship = ?, why_reached_out = ?, sponsor_confidence = ?,
		    status = ?, outreach_channels = ?, links = ?, updated_at = ?
		WHERE id = ?
	`, updates.CompanyID.String(), updates.Name, updates.Title, updates.LinkedInURL,
		updates.Relationship, updates.WhyReachedOut, updates.SponsorConfidence,
		updates.Status, updates.OutreachChannels, updates.Links, updates.UpdatedAt,
		id.String())

	return err
}

func DeletePerson(db *sql.DB, id uuid.UUID) error {
	// ON DELETE CASCADE removes touchpoints and follow-ups
	_, err := db.Exec(`DELETE FROM people WHERE id = ?`, id.String())
	return err
}

// ClosePerson marks a person closed and closes any of their open follow-ups.
func ClosePerson(db *sql.DB, id uuid.UUID) error {
	now := time.Now().UTC()
	if _, err := db.Exec(`UPDATE people SET status = ?, updated_at = ? WHERE id = ?`,
		models.StatusClosed, now, id.String()); err != nil {
		return err
	}
	_, err := db.Exec(`UPDATE follow_ups SET status = ? WHERE person_id = ? AND status = ?`,
		models.FollowUpClosed, id.String(), models.FollowUpOpen)
	return err
}
