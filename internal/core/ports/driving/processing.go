package driving

import "context"

// ProcessingController advances every Pending record through extraction,
// summarisation, embedding and indexing. Records already Processed,
// Needs OCR or Error are skipped; the status check is the only gate, so
// running two processing passes concurrently is unsafe and unsupported.
type ProcessingController interface {
	ProcessPending(ctx context.Context) (*ProcessingReport, error)
}

// ProcessingReport summarises one processing run.
type ProcessingReport struct {
	// Scanned is the number of records examined.
	Scanned int

	// Processed is the number of records that reached Processed.
	Processed int

	// NeedsOCR is the number of records whose extraction yielded no text.
	NeedsOCR int

	// Failed is the number of records that ended in an Error status.
	Failed int
}
