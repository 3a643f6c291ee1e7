// ABOUTME: Today board CLI commands
// ABOUTME: Commands for listing due tasks and acting on them (done, snooze, close, reconcile)
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/oklog/ulid/v2"

	"github.com/harperreed/outreach/dates"
	"github.com/harperreed/outreach/db"
)

// TodayCommand shows the follow-up board for today
func TodayCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("today", flag.ExitOnError)
	_ = fs.Parse(args)

	board, err := db.DashboardToday(database, dates.Today())
	if err != nil {
		return fmt.Errorf("failed to build today board: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	printBucket(w, "OVERDUE", board.Overdue)
	printBucket(w, "DUE TODAY", board.DueToday)
	printBucket(w, "UPCOMING", board.Upcoming)
	_ = w.Flush()

	if len(board.Overdue)+len(board.DueToday)+len(board.Upcoming) == 0 {
		fmt.Println("Nothing due. Go outside.")
	}
	return nil
}

func printBucket(w *tabwriter.Writer, label string, tasks []db.Task) {
	if len(tasks) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "%s\n", label)
	for _, task := range tasks {
		_, _ = fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
			task.DueDate, task.Person.Name, task.CompanyName, task.Action, task.ID)
	}
}

// DoneCommand marks a follow-up task done
func DoneCommand(database *sql.DB, args []string) error {
	id, err := taskIDArg("done", args)
	if err != nil {
		return err
	}
	if err := db.MarkFollowUpDone(database, id); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	fmt.Println("Done")
	return nil
}

// SnoozeCommand pushes a follow-up's due date out
func SnoozeCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("snooze", flag.ExitOnError)
	days := fs.Int("days", 2, "Days to push the due date out")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("task ID is required")
	}
	id, err := ulid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid task ID: %w", err)
	}
	if *days < 1 {
		return fmt.Errorf("--days must be at least 1")
	}

	newDate, err := db.SnoozeFollowUp(database, id, *days)
	if err != nil {
		return fmt.Errorf("failed to snooze task: %w", err)
	}
	fmt.Printf("Snoozed until %s\n", newDate)
	return nil
}

// CloseTaskCommand closes a follow-up without doing it
func CloseTaskCommand(database *sql.DB, args []string) error {
	id, err := taskIDArg("close-task", args)
	if err != nil {
		return err
	}
	if err := db.CloseFollowUp(database, id); err != nil {
		return fmt.Errorf("failed to close task: %w", err)
	}
	fmt.Println("Closed")
	return nil
}

func taskIDArg(name string, args []string) (ulid.ULID, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		return ulid.ULID{}, fmt.Errorf("task ID is required")
	}
	id, err := ulid.Parse(fs.Arg(0))
	if err != nil {
		return ulid.ULID{}, fmt.Errorf("invalid task ID: %w", err)
	}
	return id, nil
}

// ReconcileCommand repairs derived state after imports or manual edits
func ReconcileCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("reconcile", flag.ExitOnError)
	_ = fs.Parse(args)

	closed, err := db.ReconcileStatuses(database)
	if err != nil {
		return fmt.Errorf("failed to reconcile statuses: %w", err)
	}
	backfilled, err := db.BackfillDirections(database)
	if err != nil {
		return fmt.Errorf("failed to backfill directions: %w", err)
	}
	fmt.Printf("Closed %d people with closing outcomes, backfilled %d touchpoint directions\n", closed, backfilled)
	return nil
}
