// ABOUTME: Weekly analytics CLI command
// ABOUTME: Prints per-day outreach counts and reply attribution for a week
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/harperreed/outreach/analytics"
	"github.com/harperreed/outreach/dates"
)

// WeeklyCommand prints the weekly outreach report
func WeeklyCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("weekly", flag.ExitOnError)
	weekStart := fs.String("week", "", "Any date inside the week to report on (YYYY-MM-DD, default: this week)")
	_ = fs.Parse(args)

	anchor := time.Now().In(dates.Location())
	if *weekStart != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *weekStart, dates.Location())
		if err != nil {
			return fmt.Errorf("invalid --week date: %w", err)
		}
		anchor = parsed
	}

	report, err := analytics.Weekly(database, anchor)
	if err != nil {
		return fmt.Errorf("failed to compute weekly analytics: %w", err)
	}

	fmt.Printf("WEEK OF %s\n", report.WeekStart)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DAY\tSENT\tREPLIES\tINMAIL\tATTRIBUTED\tRESPONSE RATE")
	_, _ = fmt.Fprintln(w, "---\t----\t-------\t------\t----------\t-------------")

	var sent, replies int
	for _, day := range report.Days {
		sent += day.SentOutbound
		replies += day.RepliesInbound
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%.0f%%\n",
			day.Date, day.SentOutbound, day.RepliesInbound, day.RecruiterInmailInbound,
			day.RepliesAttributedToSentDay, day.ResponseRateBySentDay*100)
	}
	_ = w.Flush()

	fmt.Printf("\nTotals: %d sent, %d replies\n", sent, replies)
	return nil
}
