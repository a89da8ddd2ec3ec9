// Command docpipe is the document ingestion pipeline CLI.
package main

import (
	"os"

	"github.com/divami-labs/docpipe-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
