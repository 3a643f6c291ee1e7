// ABOUTME: Waitlist CLI commands
// ABOUTME: Commands for parking leads, listing them, and promoting them to people
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
)

// AddWaitlistCommand parks a lead on the waitlist
func AddWaitlistCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-waitlist", flag.ExitOnError)
	company := fs.String("company", "", "Company name (required)")
	name := fs.String("name", "", "Target person name, if known")
	priority := fs.String("priority", models.PriorityB, "Priority (A/B/C)")
	reason := fs.String("reason", "", "Why this lead is parked")
	actionDate := fs.String("action-date", "", "When to act on it (YYYY-MM-DD)")
	_ = fs.Parse(args)

	if *company == "" {
		return fmt.Errorf("--company is required")
	}

	item := &models.WaitlistItem{
		Company:           *company,
		Name:              *name,
		Priority:          *priority,
		Reason:            *reason,
		PlannedActionDate: *actionDate,
	}
	if err := db.CreateWaitlistItem(database, item); err != nil {
		return fmt.Errorf("failed to create waitlist item: %w", err)
	}
	fmt.Printf("Parked %s (priority %s)\n", item.Company, item.Priority)
	return nil
}

// ListWaitlistCommand lists active waitlist items
func ListWaitlistCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-waitlist", flag.ExitOnError)
	_ = fs.Parse(args)

	items, err := db.ListWaitlist(database)
	if err != nil {
		return fmt.Errorf("failed to list waitlist: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tPRI\tCOMPANY\tNAME\tREASON\tACT ON")
	_, _ = fmt.Fprintln(w, "--\t---\t-------\t----\t------\t------")
	for _, item := range items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			item.ID, item.Priority, item.Company, item.Name, item.Reason, item.PlannedActionDate)
	}
	_ = w.Flush()
	return nil
}

// ConvertWaitlistCommand promotes a waitlist item to a person
func ConvertWaitlistCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("convert-waitlist", flag.ExitOnError)
	name := fs.String("name", "", "Person name override (defaults to the item's name)")
	title := fs.String("title", "", "Job title for the new person")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("waitlist item ID is required")
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid waitlist item ID: %w", err)
	}

	item, err := db.GetWaitlistItem(database, id)
	if err != nil {
		return fmt.Errorf("failed to load waitlist item: %w", err)
	}
	if item == nil {
		return fmt.Errorf("waitlist item not found: %s", id)
	}

	personName := *name
	if personName == "" {
		personName = item.Name
	}
	if personName == "" {
		return fmt.Errorf("--name is required when the item has no name")
	}

	company, err := db.FindOrCreateCompany(database, item.Company)
	if err != nil {
		return fmt.Errorf("failed to resolve company: %w", err)
	}

	person := &models.Person{
		CompanyID:        company.ID,
		Name:             personName,
		Title:            *title,
		WhyReachedOut:    item.Reason,
		OutreachChannels: item.OutreachChannels,
		Links:            item.Links,
	}
	if err := db.CreatePerson(database, person); err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}

	if err := db.ConvertWaitlistItem(database, id); err != nil {
		return fmt.Errorf("person created but conversion failed: %w", err)
	}

	fmt.Printf("Converted %s → %s (%s)\n", item.Company, person.Name, person.ID)
	return nil
}
