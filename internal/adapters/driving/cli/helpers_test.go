package cli

import (
	"bytes"
	"context"

	"github.com/divami-labs/docpipe-cli/internal/core/domain"
	"github.com/divami-labs/docpipe-cli/internal/core/ports/driving"
)

// fakeDiscovery returns a canned report.
type fakeDiscovery struct {
	report *driving.DiscoveryReport
	err    error
}

func (f *fakeDiscovery) Discover(context.Context) (*driving.DiscoveryReport, error) {
	return f.report, f.err
}

// fakeProcessing returns a canned report.
type fakeProcessing struct {
	report *driving.ProcessingReport
	err    error
}

func (f *fakeProcessing) ProcessPending(context.Context) (*driving.ProcessingReport, error) {
	return f.report, f.err
}

// fakeDocuments serves a canned record set.
type fakeDocuments struct {
	records  []domain.DocumentRecord
	url      string
	urlErr   error
	data     []byte
	filename string
	dlErr    error
}

func (f *fakeDocuments) List(context.Context) ([]domain.DocumentRecord, error) {
	return f.records, nil
}

func (f *fakeDocuments) URL(context.Context, string) (string, error) {
	return f.url, f.urlErr
}

func (f *fakeDocuments) Download(context.Context, string) ([]byte, string, error) {
	return f.data, f.filename, f.dlErr
}

// setupTestServices installs fakes into the package-level service slots
// so ensureServices skips config-driven wiring. The returned cleanup
// restores the empty state.
func setupTestServices(discovery driving.DiscoveryController, processing driving.ProcessingController, documents driving.DocumentReader) func() {
	discoveryService = discovery
	processingService = processing
	documentService = documents
	return func() {
		discoveryService = nil
		processingService = nil
		documentService = nil
	}
}

// defaultTestServices installs benign fakes for all three services.
func defaultTestServices() func() {
	return setupTestServices(
		&fakeDiscovery{report: &driving.DiscoveryReport{RunID: "run-1"}},
		&fakeProcessing{report: &driving.ProcessingReport{}},
		&fakeDocuments{},
	)
}

// executeCommand runs the root command with args, capturing output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
