package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run every Pending record through the processing pipeline",
	Long: `For each Pending record: re-fetches the source bytes, extracts text,
summarises it, embeds the summary and indexes the vector. Records whose
extraction yields no text are marked "Needs OCR"; per-record failures are
recorded as an Error status without stopping the run.`,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := ensureServices(ctx); err != nil {
		return err
	}

	report, err := processingService.ProcessPending(ctx)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	cmd.Printf("Scanned:   %d\n", report.Scanned)
	cmd.Printf("Processed: %d\n", report.Processed)
	cmd.Printf("Needs OCR: %d\n", report.NeedsOCR)
	cmd.Printf("Failed:    %d\n", report.Failed)
	return nil
}
