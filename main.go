// ABOUTME: Entry point for the outreach tracker
// ABOUTME: Routes to the API server, TUI, MCP server, or CLI commands
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/harperreed/outreach/cli"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/radar"
)

const version = "0.1.0"

func main() {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/outreach/outreach.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("outreach version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	finalDBPath := getDatabasePath(*dbPath)
	database, err := db.OpenDatabase(finalDBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = database.Close() }()

	if *initOnly {
		log.Printf("Database initialized at %s", finalDBPath)
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "serve":
		service, cleanup := newRadarService()
		defer cleanup()
		if err := cli.ServeCommand(database, service, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "tui":
		service, cleanup := newRadarService()
		defer cleanup()
		if err := cli.TUICommand(database, service, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "mcp":
		service, cleanup := newRadarService()
		defer cleanup()
		if err := cli.MCPCommand(database, service); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "crm":
		if len(commandArgs) == 0 {
			fmt.Println("Error: crm requires a subcommand")
			printUsage()
			os.Exit(1)
		}
		runCRMCommand(database, commandArgs[0], commandArgs[1:])

	case "today":
		if err := cli.TodayCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "weekly":
		if err := cli.WeeklyCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "radar":
		service, cleanup := newRadarService()
		defer cleanup()
		if err := cli.RadarCommand(service, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runCRMCommand(database *sql.DB, name string, args []string) {
	var err error
	switch name {
	case "add-person":
		err = cli.AddPersonCommand(database, args)
	case "list-people":
		err = cli.ListPeopleCommand(database, args)
	case "show-person":
		err = cli.ShowPersonCommand(database, args)
	case "delete-person":
		err = cli.DeletePersonCommand(database, args)
	case "log-touchpoint":
		err = cli.LogTouchpointCommand(database, args)
	case "add-waitlist":
		err = cli.AddWaitlistCommand(database, args)
	case "list-waitlist":
		err = cli.ListWaitlistCommand(database, args)
	case "convert-waitlist":
		err = cli.ConvertWaitlistCommand(database, args)
	case "done":
		err = cli.DoneCommand(database, args)
	case "snooze":
		err = cli.SnoozeCommand(database, args)
	case "close-task":
		err = cli.CloseTaskCommand(database, args)
	case "reconcile":
		err = cli.ReconcileCommand(database, args)
	default:
		fmt.Printf("Unknown crm command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func newRadarService() (*radar.Service, func()) {
	cachePath := filepath.Join(xdg.CacheHome, "outreach", "radar")
	cache, err := radar.OpenCache(cachePath)
	if err != nil {
		log.Printf("warning: radar cache unavailable: %v", err)
		cache = nil
	}
	service := radar.NewService(radar.NewFetcher(), cache)
	cleanup := func() {
		if cache != nil {
			_ = cache.Close()
		}
	}
	return service, cleanup
}

func getDatabasePath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("OUTREACH_DB_PATH"); env != "" {
		return env
	}
	return filepath.Join(xdg.DataHome, "outreach", "outreach.db")
}

func printUsage() {
	fmt.Printf(`outreach v%s - Job-search outreach tracker

USAGE:
  outreach [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/outreach/outreach.db)
  --init                 Initialize database and exit

COMMANDS:
  serve                  Start the REST API server
    --port <n>             Port to listen on (default: 8080)

  tui                    Start the terminal interface
    --api <url>            Connect to a running API server instead of serving in-process

  mcp                    Start MCP server for Claude Desktop

  today                  Show the follow-up board for today
  weekly                 Weekly outreach report
    --week <date>          Any date inside the week to report on

  radar                  Search sponsor hiring news
    --query <text>         News search query

  crm                    Data management commands

CRM COMMANDS:
  outreach crm add-person      Add a person to reach out to
    --name <name>                Person name (required)
    --company <company>          Company name (required)
    --title <title>              Job title
    --relationship <r>           cold/warm/recruiter/referral/alumni
    --why <text>                 Why this person is worth contacting
    --follow-up-in <days>        Initial follow-up in N days (default: 2, 0 disables)

  outreach crm list-people     List people
    --query <text>               Search by person or company name
    --status <s>                 all/open/waiting/closed
    --sort <key>                 created_desc/created_asc/name_asc

  outreach crm show-person <id>    Show a person's full history
  outreach crm delete-person <id>  Delete a person

  outreach crm log-touchpoint  Record an interaction
    --person <id>                Person ID (required)
    --channel <channel>          email/linkedin/inmail/... (required)
    --outcome <outcome>          sent/replied/meeting_booked/ghosted/closed
    --next <date>                Schedule a follow-up (YYYY-MM-DD)

  outreach crm add-waitlist    Park a lead for later
    --company <company>          Company name (required)
    --priority <p>               A/B/C (default: B)

  outreach crm list-waitlist           List parked leads
  outreach crm convert-waitlist <id>   Promote a parked lead to a person

  outreach crm done <task-id>          Mark a follow-up done
  outreach crm snooze <task-id>        Push a follow-up out
    --days <n>                           Days to push (default: 2)
  outreach crm close-task <task-id>    Close a follow-up without doing it
  outreach crm reconcile               Repair statuses and directions after imports

EXAMPLES:
  # Interactive terminal interface
  outreach tui

  # Add a person and log the first touch
  outreach crm add-person --name "Jane Doe" --company "Acme" --relationship warm
  outreach crm log-touchpoint --person <id> --channel email --outcome sent --next 2026-09-02

  # What's due today
  outreach today
`, version)
}
