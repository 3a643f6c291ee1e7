// ABOUTME: Radar CLI command
// ABOUTME: Searches sponsor hiring news and prints the results
package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/harperreed/outreach/dates"
	"github.com/harperreed/outreach/radar"
)

// RadarCommand searches news for sponsor hiring signals
func RadarCommand(service *radar.Service, args []string) error {
	fs := flag.NewFlagSet("radar", flag.ExitOnError)
	queryFlag := fs.String("query", "", "News search query (default: sponsor hiring news)")
	_ = fs.Parse(args)

	items, err := service.Search(context.Background(), *queryFlag)
	if err != nil {
		return fmt.Errorf("failed to search news: %w", err)
	}
	if len(items) == 0 {
		fmt.Println("No news found")
		return nil
	}

	for _, item := range items {
		published := ""
		if item.Published != "" {
			// Falls back to the feed's own date string when unparseable.
			published = dates.Format(item.Published, dates.LayoutDate) + "  "
		}
		fmt.Printf("%s%s\n", published, item.Title)
		if item.Source != "" {
			fmt.Printf("  %s\n", item.Source)
		}
		fmt.Printf("  %s\n", item.Link)
		if snippet := strings.TrimSpace(item.Snippet); snippet != "" {
			fmt.Printf("  %s\n", snippet)
		}
		fmt.Println()
	}
	return nil
}
