// ABOUTME: Company database operations
// ABOUTME: Handles CRUD, name lookup, and the aggregated company summary view
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/models"
)

func CreateCompany(db *sql.DB, company *models.Company) error {
	company.ID = uuid.New()
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now
	if company.SponsorStatus == "" {
		company.SponsorStatus = models.SponsorUnknown
	}

	_, err := db.Exec(`
		INSERT INTO companies (id, name, sponsor_status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, company.ID.String(), company.Name, company.SponsorStatus, company.Notes, company.CreatedAt, company.UpdatedAt)

	return err
}

func GetCompany(db *sql.DB, id uuid.UUID) (*models.Company, error) {
	company := &models.Company{}
	var idStr string

	err := db.QueryRow(`
		SELECT id, name, sponsor_status, COALESCE(notes, ''), created_at, updated_at
		FROM companies WHERE id = ?
	`, id.String()).Scan(&idStr, &company.Name, &company.SponsorStatus, &company.Notes, &company.CreatedAt, &company.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	company.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse company ID: %w", err)
	}
	return company, nil
}

// FindCompanyByName matches on the trimmed name, case-insensitively.
func FindCompanyByName(db *sql.DB, name string) (*models.Company, error) {
	company := &models.Company{}
	var idStr string

	err := db.QueryRow(`
		SELECT id, name, sponsor_status, COALESCE(notes, ''), created_at, updated_at
		FROM companies WHERE LOWER(name) = LOWER(?)
	`, strings.TrimSpace(name)).Scan(&idStr, &company.Name, &company.SponsorStatus, &company.Notes, &company.CreatedAt, &company.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	company.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse company ID: %w", err)
	}
	return company, nil
}

// FindOrCreateCompany resolves a company by its trimmed name, creating it
// with an unknown sponsor status when absent.
func FindOrCreateCompany(db *sql.DB, name string) (*models.Company, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("company name is required")
	}

	company, err := FindCompanyByName(db, trimmed)
	if err != nil {
		return nil, err
	}
	if company != nil {
		return company, nil
	}

	company = &models.Company{Name: trimmed, SponsorStatus: models.SponsorUnknown}
	if err := CreateCompany(db, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

func UpdateCompany(db *sql.DB, id uuid.UUID, updates *models.Company) error {
	updates.UpdatedAt = time.Now().UTC()

	_, err := db.Exec(`
		UPDATE companies
		SET name = ?, sponsor_status = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, updates.Name, updates.SponsorStatus, updates.Notes, updates.UpdatedAt, id.String())

	return err
}

// ListCompanySummaries builds the aggregate companies view: contact counts,
// the latest touchpoint across all contacts, and the earliest open follow-up
// due date. Companies with no contacts are omitted.
func ListCompanySummaries(db *sql.DB) ([]models.CompanySummary, error) {
	people, err := ListPeople(db)
	if err != nil {
		return nil, err
	}

	byCompany := make(map[uuid.UUID][]models.Person)
	for _, p := range people {
		byCompany[p.CompanyID] = append(byCompany[p.CompanyID], p)
	}

	rows, err := db.Query(`
		SELECT id, name, sponsor_status, COALESCE(notes, ''), created_at, updated_at
		FROM companies ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var summaries []models.CompanySummary
	for rows.Next() {
		var c models.Company
		var idStr string
		if err := rows.Scan(&idStr, &c.Name, &c.SponsorStatus, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse company ID: %w", err)
		}

		contacts := byCompany[c.ID]
		if len(contacts) == 0 {
			continue
		}

		summary := models.CompanySummary{Company: c, ContactCount: len(contacts)}
		for _, p := range contacts {
			summary.Contacts = append(summary.Contacts, models.PersonSummary{
				ID:    p.ID,
				Name:  p.Name,
				Title: p.Title,
			})
			for _, tp := range p.Touchpoints {
				if summary.LastTouchDate == nil || tp.Date.After(*summary.LastTouchDate) {
					d := tp.Date
					summary.LastTouchDate = &d
				}
			}
			for _, f := range p.FollowUps {
				if f.Status != models.FollowUpOpen {
					continue
				}
				if summary.NextFollowUpDate == nil || f.DueDate < *summary.NextFollowUpDate {
					due := f.DueDate
					summary.NextFollowUpDate = &due
				}
			}
		}
		sort.Slice(summary.Contacts, func(i, j int) bool {
			return summary.Contacts[i].Name < summary.Contacts[j].Name
		})

		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}
