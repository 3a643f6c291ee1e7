// ABOUTME: TUI subcommand
// ABOUTME: Starts the terminal interface, serving the API in-process unless one is given
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/harperreed/outreach/client"
	"github.com/harperreed/outreach/radar"
	"github.com/harperreed/outreach/tui"
	"github.com/harperreed/outreach/web"
)

// TUICommand starts the terminal interface. Without --api it spins up
// the REST server on a loopback port and talks to itself.
func TUICommand(database *sql.DB, service *radar.Service, args []string) error {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	apiURL := fs.String("api", os.Getenv("OUTREACH_API_URL"), "Connect to a running API server instead of serving in-process")
	_ = fs.Parse(args)

	baseURL := *apiURL
	if baseURL == "" {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to start in-process API: %w", err)
		}
		server := web.NewServer(database, service)
		go func() {
			_ = http.Serve(ln, server.Handler())
		}()
		baseURL = "http://" + ln.Addr().String()
	}

	store := client.NewStore(client.NewClient(baseURL))
	return tui.Run(store)
}
