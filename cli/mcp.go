// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server for Claude Desktop integration
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/outreach/handlers"
	"github.com/harperreed/outreach/radar"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(db *sql.DB, radarService *radar.Service) error {
	log.Println("Starting outreach MCP server...")

	peopleHandlers := handlers.NewPeopleHandlers(db)
	taskHandlers := handlers.NewTaskHandlers(db)
	waitlistHandlers := handlers.NewWaitlistHandlers(db)
	analyticsHandlers := handlers.NewAnalyticsHandlers(db)
	radarHandlers := handlers.NewRadarHandlers(radarService)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "outreach",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_person",
		Description: "Add a person to reach out to, creating their company if needed",
	}, peopleHandlers.AddPerson)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_people",
		Description: "Search people by name or company, optionally filtered by status",
	}, peopleHandlers.FindPeople)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_touchpoint",
		Description: "Record an interaction with a person and optionally schedule the next follow-up",
	}, peopleHandlers.LogTouchpoint)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_today",
		Description: "List follow-up tasks that are overdue, due today, or coming up",
	}, taskHandlers.ListToday)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_task",
		Description: "Mark a follow-up task as done",
	}, taskHandlers.CompleteTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "snooze_task",
		Description: "Push a follow-up task's due date out by a number of days",
	}, taskHandlers.SnoozeTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "close_task",
		Description: "Close a follow-up task without doing it",
	}, taskHandlers.CloseTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_waitlist_item",
		Description: "Park a company or lead on the waitlist for later outreach",
	}, waitlistHandlers.AddWaitlistItem)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_waitlist",
		Description: "List parked leads on the waitlist by priority",
	}, waitlistHandlers.ListWaitlist)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert_waitlist_item",
		Description: "Promote a waitlist item to an active person",
	}, waitlistHandlers.ConvertWaitlistItem)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "weekly_analytics",
		Description: "Per-day outreach counts and reply attribution for a week",
	}, analyticsHandlers.WeeklyAnalytics)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_radar",
		Description: "Search news for visa-sponsor hiring signals",
	}, radarHandlers.SearchRadar)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
