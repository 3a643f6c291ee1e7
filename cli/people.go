// ABOUTME: People CLI commands
// ABOUTME: Commands for adding, listing, showing, and deleting people and logging touchpoints
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/outreach/dates"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/query"
)

// AddPersonCommand adds a new person (and their company, if new)
func AddPersonCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-person", flag.ExitOnError)
	name := fs.String("name", "", "Person name (required)")
	company := fs.String("company", "", "Company name (required)")
	title := fs.String("title", "", "Job title")
	relationship := fs.String("relationship", models.RelationshipCold, "Relationship (cold/warm/recruiter/referral/alumni)")
	why := fs.String("why", "", "Why this person is worth contacting")
	linkedin := fs.String("linkedin", "", "LinkedIn profile URL")
	followUpDays := fs.Int("follow-up-in", 2, "Schedule initial follow-up this many days out (0 disables)")
	_ = fs.Parse(args)

	if *name == "" || *company == "" {
		return fmt.Errorf("--name and --company are required")
	}

	companyRec, err := db.FindOrCreateCompany(database, *company)
	if err != nil {
		return fmt.Errorf("failed to resolve company: %w", err)
	}

	person := &models.Person{
		CompanyID:     companyRec.ID,
		Name:          *name,
		Title:         *title,
		Relationship:  *relationship,
		WhyReachedOut: *why,
		LinkedInURL:   *linkedin,
	}
	if err := db.CreatePerson(database, person); err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}

	if *followUpDays > 0 {
		due := time.Now().In(dates.Location()).AddDate(0, 0, *followUpDays).Format("2006-01-02")
		followUp := &models.FollowUp{PersonID: person.ID, DueDate: due, Action: "Follow Up"}
		if err := db.CreateFollowUp(database, followUp); err != nil {
			return fmt.Errorf("failed to schedule follow-up: %w", err)
		}
		fmt.Printf("Added %s (%s), follow-up due %s\n", person.Name, companyRec.Name, due)
		return nil
	}

	fmt.Printf("Added %s (%s)\n", person.Name, companyRec.Name)
	return nil
}

// ListPeopleCommand lists people with the same filter/sort the TUI uses
func ListPeopleCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-people", flag.ExitOnError)
	queryText := fs.String("query", "", "Search by person or company name")
	status := fs.String("status", query.StatusAll, "Filter by status (all/open/waiting/closed)")
	sortKey := fs.String("sort", query.SortCreatedDesc, "Sort (created_desc/created_asc/name_asc)")
	limit := fs.Int("limit", 50, "Max results")
	_ = fs.Parse(args)

	people, err := db.ListPeople(database)
	if err != nil {
		return fmt.Errorf("failed to list people: %w", err)
	}

	result := query.Apply(people, query.Params{
		Query:   *queryText,
		Status:  *status,
		Sort:    *sortKey,
		PerPage: *limit,
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tSTATUS\tLAST TOUCH\tNEXT FOLLOW-UP")
	_, _ = fmt.Fprintln(w, "--\t----\t-------\t------\t----------\t--------------")

	for _, person := range result.Items {
		companyName := ""
		if person.Company != nil {
			companyName = person.Company.Name
		}
		lastTouch := "-"
		if touch := query.LastTouch(person); touch != nil {
			lastTouch = dates.FormatTime(touch.Date, dates.LayoutDate)
		}
		nextDue := "-"
		if next := query.NextFollowUp(person); next != nil {
			nextDue = next.DueDate
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			person.ID, person.Name, companyName, person.Status, lastTouch, nextDue)
	}
	_ = w.Flush()

	if result.Total > len(result.Items) {
		fmt.Printf("\nShowing %d of %d people\n", len(result.Items), result.Total)
	}
	return nil
}

// ShowPersonCommand prints a person's full history
func ShowPersonCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("show-person", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("person ID is required")
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid person ID: %w", err)
	}

	person, err := db.GetPerson(database, id)
	if err != nil {
		return fmt.Errorf("failed to load person: %w", err)
	}
	if person == nil {
		return fmt.Errorf("person not found: %s", id)
	}

	fmt.Printf("%s", person.Name)
	if person.Title != "" {
		fmt.Printf(" - %s", person.Title)
	}
	if person.Company != nil {
		fmt.Printf(" @ %s", person.Company.Name)
	}
	fmt.Printf("\nStatus: %s  Relationship: %s\n", person.Status, person.Relationship)
	if person.WhyReachedOut != "" {
		fmt.Printf("Why: %s\n", person.WhyReachedOut)
	}
	for _, link := range models.DecodeLinks(person.Links) {
		fmt.Printf("Link: %s\n", link)
	}

	if len(person.Touchpoints) > 0 {
		fmt.Println("\nTOUCHPOINTS")
		for _, tp := range person.Touchpoints {
			line := fmt.Sprintf("  %s  %s/%s", dates.FormatTime(tp.Date, dates.LayoutDate), tp.Channel, tp.Direction)
			if tp.Outcome != "" {
				line += "  " + tp.Outcome
			}
			fmt.Println(line)
			if tp.MessagePreview != "" {
				fmt.Printf("    %q\n", tp.MessagePreview)
			}
		}
	}

	if len(person.FollowUps) > 0 {
		fmt.Println("\nFOLLOW-UPS")
		for _, f := range person.FollowUps {
			fmt.Printf("  %s  %s  [%s]  %s\n", f.DueDate, f.Action, f.Status, f.ID)
		}
	}
	return nil
}

// DeletePersonCommand deletes a person and their history
func DeletePersonCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-person", flag.ExitOnError)
	force := fs.Bool("force", false, "Skip confirmation")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("person ID is required")
	}
	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid person ID: %w", err)
	}

	person, err := db.GetPerson(database, id)
	if err != nil {
		return fmt.Errorf("failed to load person: %w", err)
	}
	if person == nil {
		return fmt.Errorf("person not found: %s", id)
	}

	if !*force {
		fmt.Printf("Delete %s and all their history? [y/N] ", person.Name)
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := db.DeletePerson(database, id); err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	fmt.Printf("Deleted %s\n", person.Name)
	return nil
}

// LogTouchpointCommand records an interaction with a person
func LogTouchpointCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("log-touchpoint", flag.ExitOnError)
	personID := fs.String("person", "", "Person ID (required)")
	channel := fs.String("channel", "", "Channel: email, linkedin, inmail, etc. (required)")
	outcome := fs.String("outcome", "", "Outcome (sent/replied/meeting_booked/ghosted/closed)")
	direction := fs.String("direction", "", "Direction (outbound/inbound; inferred from outcome when omitted)")
	preview := fs.String("preview", "", "Message preview")
	when := fs.String("date", "", "Touchpoint date (default: now)")
	nextDate := fs.String("next", "", "Schedule a follow-up on this date (YYYY-MM-DD)")
	nextAction := fs.String("next-action", "Follow Up", "What the follow-up should do")
	_ = fs.Parse(args)

	if *personID == "" || *channel == "" {
		return fmt.Errorf("--person and --channel are required")
	}
	id, err := uuid.Parse(*personID)
	if err != nil {
		return fmt.Errorf("invalid person ID: %w", err)
	}

	person, err := db.GetPerson(database, id)
	if err != nil {
		return fmt.Errorf("failed to load person: %w", err)
	}
	if person == nil {
		return fmt.Errorf("person not found: %s", id)
	}

	tp := &models.Touchpoint{
		PersonID:       id,
		Channel:        *channel,
		Direction:      *direction,
		Outcome:        *outcome,
		MessagePreview: *preview,
	}
	if *when != "" {
		parsed, ok := dates.Normalize(*when)
		if !ok {
			return fmt.Errorf("invalid date: %s", *when)
		}
		tp.Date = parsed
	}
	if err := db.CreateTouchpoint(database, tp); err != nil {
		return fmt.Errorf("failed to create touchpoint: %w", err)
	}

	if *nextDate != "" && !models.OutcomeIsClosed(*outcome) {
		followUp := &models.FollowUp{PersonID: id, DueDate: *nextDate, Action: *nextAction}
		if err := db.CreateFollowUp(database, followUp); err != nil {
			return fmt.Errorf("failed to schedule follow-up: %w", err)
		}
		fmt.Printf("Logged %s touchpoint for %s, follow-up due %s\n", tp.Channel, person.Name, *nextDate)
		return nil
	}

	fmt.Printf("Logged %s touchpoint for %s\n", tp.Channel, person.Name)
	return nil
}
