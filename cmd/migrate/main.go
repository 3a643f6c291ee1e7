// ABOUTME: Import utility for legacy outreach databases with integer IDs.
// ABOUTME: Provides dry-run and backup capabilities for safe one-way imports.

package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harperreed/outreach/dates"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
)

func main() {
	sourcePath := flag.String("source", "", "Path to the legacy database file (required)")
	destPath := flag.String("dest", "", "Path to the destination database file (required)")
	dryRun := flag.Bool("dry-run", false, "Show what would happen without making changes")
	backup := flag.Bool("backup", true, "Create a destination backup before importing")
	flag.Parse()

	if *sourcePath == "" || *destPath == "" {
		log.Fatal("Error: -source and -dest flags are required")
	}

	if err := migrate(*sourcePath, *destPath, *dryRun, *backup); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Println("Import completed successfully")
}

func migrate(sourcePath, destPath string, dryRun, createBackup bool) error {
	if _, err := os.Stat(sourcePath); os.IsNotExist(err) {
		return fmt.Errorf("source database does not exist: %s", sourcePath)
	}

	if createBackup && !dryRun {
		if _, err := os.Stat(destPath); err == nil {
			backupPath := fmt.Sprintf("%s.backup.%s", destPath, time.Now().Format("20060102-150405"))
			log.Printf("Creating backup: %s", backupPath)

			input, err := os.ReadFile(destPath)
			if err != nil {
				return fmt.Errorf("failed to read destination database: %w", err)
			}
			if err := os.WriteFile(backupPath, input, 0644); err != nil {
				return fmt.Errorf("failed to create backup: %w", err)
			}
		}
	}

	source, err := sql.Open("sqlite3", sourcePath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer func() { _ = source.Close() }()

	var dest *sql.DB
	if !dryRun {
		dest, err = db.OpenDatabase(destPath)
		if err != nil {
			return fmt.Errorf("failed to open destination database: %w", err)
		}
		defer func() { _ = dest.Close() }()
	}

	// Legacy rows carry integer primary keys. Each row gets a fresh ID on
	// import; the old keys only live in these maps for joining.
	companyIDs := make(map[int64]uuid.UUID)
	personIDs := make(map[int64]uuid.UUID)

	counts := map[string]int{}

	if err := importCompanies(source, dest, dryRun, companyIDs, counts); err != nil {
		return fmt.Errorf("companies: %w", err)
	}
	if err := importPeople(source, dest, dryRun, companyIDs, personIDs, counts); err != nil {
		return fmt.Errorf("people: %w", err)
	}
	if err := importTouchpoints(source, dest, dryRun, personIDs, counts); err != nil {
		return fmt.Errorf("touchpoints: %w", err)
	}
	if err := importFollowUps(source, dest, dryRun, personIDs, counts); err != nil {
		return fmt.Errorf("follow-ups: %w", err)
	}
	if err := importWaitlist(source, dest, dryRun, counts); err != nil {
		return fmt.Errorf("waitlist: %w", err)
	}

	prefix := ""
	if dryRun {
		prefix = "[dry-run] "
	}
	log.Printf("%scompanies=%d people=%d touchpoints=%d follow_ups=%d waitlist=%d",
		prefix, counts["companies"], counts["people"], counts["touchpoints"],
		counts["follow_ups"], counts["waitlist"])

	if !dryRun {
		// Legacy databases predate direction tracking and closing-outcome
		// reconciliation, so repair both after the rows land.
		if n, err := db.BackfillDirections(dest); err != nil {
			return fmt.Errorf("backfill directions: %w", err)
		} else if n > 0 {
			log.Printf("Backfilled %d touchpoint directions", n)
		}
		if n, err := db.ReconcileStatuses(dest); err != nil {
			return fmt.Errorf("reconcile statuses: %w", err)
		} else if n > 0 {
			log.Printf("Closed %d people with closing outcomes", n)
		}
	}
	return nil
}

func importCompanies(source, dest *sql.DB, dryRun bool, companyIDs map[int64]uuid.UUID, counts map[string]int) error {
	rows, err := source.Query(`SELECT id, name, COALESCE(sponsor_status, 'unknown'), COALESCE(notes, '') FROM companies`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var legacyID int64
		company := &models.Company{}
		if err := rows.Scan(&legacyID, &company.Name, &company.SponsorStatus, &company.Notes); err != nil {
			return err
		}
		if dryRun {
			company.ID = uuid.New()
		} else if err := db.CreateCompany(dest, company); err != nil {
			return err
		}
		companyIDs[legacyID] = company.ID
		counts["companies"]++
	}
	return rows.Err()
}

func importPeople(source, dest *sql.DB, dryRun bool, companyIDs, personIDs map[int64]uuid.UUID, counts map[string]int) error {
	rows, err := source.Query(`
		SELECT id, company_id, name, COALESCE(title, ''), COALESCE(status, 'open'),
		       COALESCE(relationship, 'cold'), COALESCE(why_reached_out, ''),
		       COALESCE(sponsor_confidence, 'unknown'), COALESCE(linkedin_url, ''),
		       COALESCE(links, ''), COALESCE(outreach_channels, '')
		FROM people`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var legacyID, legacyCompanyID int64
		person := &models.Person{}
		err := rows.Scan(&legacyID, &legacyCompanyID, &person.Name, &person.Title,
			&person.Status, &person.Relationship, &person.WhyReachedOut,
			&person.SponsorConfidence, &person.LinkedInURL,
			&person.Links, &person.OutreachChannels)
		if err != nil {
			return err
		}

		companyID, ok := companyIDs[legacyCompanyID]
		if !ok {
			return fmt.Errorf("person %d references unknown company %d", legacyID, legacyCompanyID)
		}
		person.CompanyID = companyID

		if dryRun {
			person.ID = uuid.New()
		} else if err := db.CreatePerson(dest, person); err != nil {
			return err
		}
		personIDs[legacyID] = person.ID
		counts["people"]++
	}
	return rows.Err()
}

func importTouchpoints(source, dest *sql.DB, dryRun bool, personIDs map[int64]uuid.UUID, counts map[string]int) error {
	rows, err := source.Query(`
		SELECT person_id, COALESCE(date, ''), COALESCE(channel, ''), COALESCE(direction, ''),
		       COALESCE(outcome, ''), COALESCE(message_preview, ''), COALESCE(next_step_action, '')
		FROM touchpoints ORDER BY date ASC, id ASC`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var legacyPersonID int64
		var rawDate string
		tp := &models.Touchpoint{}
		err := rows.Scan(&legacyPersonID, &rawDate, &tp.Channel, &tp.Direction,
			&tp.Outcome, &tp.MessagePreview, &tp.NextStepAction)
		if err != nil {
			return err
		}

		personID, ok := personIDs[legacyPersonID]
		if !ok {
			return fmt.Errorf("touchpoint references unknown person %d", legacyPersonID)
		}
		tp.PersonID = personID

		// Legacy timestamps are naive and mean UTC.
		if parsed, ok := dates.Normalize(rawDate); ok {
			tp.Date = parsed
		}

		if !dryRun {
			if err := db.CreateTouchpoint(dest, tp); err != nil {
				return err
			}
		}
		counts["touchpoints"]++
	}
	return rows.Err()
}

func importFollowUps(source, dest *sql.DB, dryRun bool, personIDs map[int64]uuid.UUID, counts map[string]int) error {
	rows, err := source.Query(`
		SELECT person_id, COALESCE(due_date, ''), COALESCE(action, 'Follow Up'), COALESCE(status, 'open')
		FROM follow_ups ORDER BY id ASC`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var legacyPersonID int64
		f := &models.FollowUp{}
		if err := rows.Scan(&legacyPersonID, &f.DueDate, &f.Action, &f.Status); err != nil {
			return err
		}

		personID, ok := personIDs[legacyPersonID]
		if !ok {
			return fmt.Errorf("follow-up references unknown person %d", legacyPersonID)
		}
		f.PersonID = personID

		if !dryRun {
			if err := db.CreateFollowUp(dest, f); err != nil {
				return err
			}
		}
		counts["follow_ups"]++
	}
	return rows.Err()
}

func importWaitlist(source, dest *sql.DB, dryRun bool, counts map[string]int) error {
	rows, err := source.Query(`
		SELECT company, COALESCE(name, ''), COALESCE(priority, 'B'), COALESCE(reason, ''),
		       COALESCE(planned_action_date, ''), COALESCE(status, 'active'),
		       COALESCE(links, ''), COALESCE(outreach_channels, '')
		FROM waitlist`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		item := &models.WaitlistItem{}
		err := rows.Scan(&item.Company, &item.Name, &item.Priority, &item.Reason,
			&item.PlannedActionDate, &item.Status, &item.Links, &item.OutreachChannels)
		if err != nil {
			return err
		}
		if !dryRun {
			if err := db.CreateWaitlistItem(dest, item); err != nil {
				return err
			}
		}
		counts["waitlist"]++
	}
	return rows.Err()
}
