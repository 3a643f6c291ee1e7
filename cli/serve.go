// ABOUTME: API server subcommand
// ABOUTME: Starts the REST server backing the TUI and any other clients
package cli

import (
	"database/sql"
	"flag"
	"fmt"

	"github.com/harperreed/outreach/radar"
	"github.com/harperreed/outreach/web"
)

// ServeCommand starts the HTTP API server
func ServeCommand(database *sql.DB, service *radar.Service, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", 8080, "Port to listen on")
	_ = fs.Parse(args)

	server := web.NewServer(database, service)
	if err := server.Start(*port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
