package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Inspect known documents",
	Long:  `List known documents, show a document's source URL, or download its original bytes.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all known documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentURLCmd = &cobra.Command{
	Use:   "url [doc-id]",
	Short: "Show a document's source URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentURL,
}

var documentDownloadCmd = &cobra.Command{
	Use:   "download [doc-id]",
	Short: "Download a document's original bytes",
	Long:  `Re-resolves the document through its source connector and writes the bytes to a local file.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDownload,
}

// downloadOutput is the -o flag for the download command.
var downloadOutput string

func init() {
	documentDownloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "Output path (default: the original filename)")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentURLCmd)
	documentCmd.AddCommand(documentDownloadCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := ensureServices(ctx); err != nil {
		return err
	}

	records, err := documentService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	for _, rec := range records {
		cmd.Printf("  %s  %-8s %-12s %s\n",
			rec.DocumentID, rec.SourceSystem, rec.Status, rec.OriginalFilename)
	}
	cmd.Printf("Total: %d document(s)\n", len(records))
	return nil
}

func runDocumentURL(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureServices(ctx); err != nil {
		return err
	}

	url, err := documentService.URL(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get URL: %w", err)
	}

	cmd.Println(url)
	return nil
}

func runDocumentDownload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureServices(ctx); err != nil {
		return err
	}

	data, filename, err := documentService.Download(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}

	path := downloadOutput
	if path == "" {
		path = filename
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	cmd.Printf("Wrote %d bytes to %s\n", len(data), path)
	return nil
}
