package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find new source documents and register them as Pending",
	Long: `Enumerates every configured source (Google Drive, Notion), registers
each item not yet known to the store as a new Pending record, and reports
what was found. Re-running with unchanged sources registers nothing.`,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := ensureServices(ctx); err != nil {
		return err
	}

	report, err := discoveryService.Discover(ctx)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	for _, doc := range report.Discovered {
		cmd.Printf("  %s  %-8s %s\n", doc.DocumentID, doc.SourceSystem, doc.OriginalFilename)
	}

	for system, sourceErr := range report.SourceErrors {
		cmd.Printf("  warning: %s enumeration failed: %v\n", system, sourceErr)
	}

	if len(report.Discovered) == 0 {
		cmd.Println("No new items.")
	} else {
		cmd.Printf("Discovered %d new item(s).\n", len(report.Discovered))
	}

	if len(report.SourceErrors) > 0 {
		return fmt.Errorf("%d source(s) failed to enumerate", len(report.SourceErrors))
	}
	return nil
}
