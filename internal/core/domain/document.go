package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SourceSystem identifies the external service a document originated from.
type SourceSystem string

const (
	// SourceDrive is the cloud file-storage source (Google Drive).
	SourceDrive SourceSystem = "DRIVE"

	// SourceNotes is the workspace-notes source (Notion).
	SourceNotes SourceSystem = "NOTES"
)

// ParseSourceSystem converts a stored string into a SourceSystem.
func ParseSourceSystem(s string) (SourceSystem, error) {
	switch SourceSystem(s) {
	case SourceDrive, SourceNotes:
		return SourceSystem(s), nil
	default:
		return "", fmt.Errorf("%w: unknown source system %q", ErrInvalidInput, s)
	}
}

// StatusCode is the lifecycle stage of a document record.
type StatusCode int

const (
	// StatusPending marks a freshly discovered record awaiting processing.
	StatusPending StatusCode = iota

	// StatusProcessed marks a record that completed the full pipeline.
	StatusProcessed

	// StatusNeedsOCR marks a record whose extraction produced no text.
	// This is a recognised terminal state awaiting manual handling, not an error.
	StatusNeedsOCR

	// StatusError marks a record that failed processing; the Status carries a reason.
	StatusError
)

// Persisted status strings. The Error variant is stored as "Error: <reason>".
const (
	statusPendingText   = "Pending"
	statusProcessedText = "Processed"
	statusNeedsOCRText  = "Needs OCR"
	statusErrorPrefix   = "Error: "
)

// Status is a tagged lifecycle variant. The Reason field is only
// meaningful for StatusError.
type Status struct {
	Code   StatusCode
	Reason string
}

// Pending returns the initial status of a discovered record.
func Pending() Status { return Status{Code: StatusPending} }

// Processed returns the terminal success status.
func Processed() Status { return Status{Code: StatusProcessed} }

// NeedsOCR returns the no-text-extracted status.
func NeedsOCR() Status { return Status{Code: StatusNeedsOCR} }

// Errorf returns an error status carrying a formatted reason.
func Errorf(format string, args ...any) Status {
	return Status{Code: StatusError, Reason: fmt.Sprintf(format, args...)}
}

// IsPending reports whether the record still awaits processing.
func (s Status) IsPending() bool { return s.Code == StatusPending }

// IsTerminal reports whether the processing controller will skip this record.
// Everything except Pending is terminal for normal operation; Error records
// may be retried by an operator resetting them to Pending.
func (s Status) IsTerminal() bool { return s.Code != StatusPending }

// String returns the persisted representation.
func (s Status) String() string {
	switch s.Code {
	case StatusPending:
		return statusPendingText
	case StatusProcessed:
		return statusProcessedText
	case StatusNeedsOCR:
		return statusNeedsOCRText
	case StatusError:
		return statusErrorPrefix + s.Reason
	default:
		return fmt.Sprintf("unknown(%d)", int(s.Code))
	}
}

// ParseStatus converts a persisted status string back into a Status.
func ParseStatus(text string) (Status, error) {
	switch text {
	case statusPendingText:
		return Pending(), nil
	case statusProcessedText:
		return Processed(), nil
	case statusNeedsOCRText:
		return NeedsOCR(), nil
	}
	if reason, ok := strings.CutPrefix(text, statusErrorPrefix); ok {
		return Status{Code: StatusError, Reason: reason}, nil
	}
	return Status{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, text)
}

// MarshalJSON encodes the status as its persisted string form.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the persisted string form.
func (s *Status) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	parsed, err := ParseStatus(text)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DocumentRecord is the per-document metadata persisted as one JSON file.
// DocumentID is assigned once at discovery and never changes; SourceID is
// the connector-native identifier used for discovery dedup. All timestamps
// are UTC RFC3339 strings; IngestedAt stays empty until processing succeeds.
type DocumentRecord struct {
	DocumentID         string       `json:"document_id"`
	SourceID           string       `json:"source_id"`
	SourceSystem       SourceSystem `json:"source_system"`
	OriginalFilename   string       `json:"original_filename"`
	Format             string       `json:"format"`
	DateCreated        string       `json:"date_created"`
	LastModified       string       `json:"last_modified"`
	DateReceived       string       `json:"date_received"`
	IngestedAt         string       `json:"ingested_at"`
	Status             Status       `json:"status"`
	Summary            string       `json:"summary"`
	EmbeddingReference string       `json:"embedding_reference"`
	FileURL            string       `json:"file_url"`
	MIMEType           string       `json:"mime_type"`
}

// FormatFromFilename derives the upper-cased extension ("PDF", "DOCX", …).
// Filenames without an extension yield an empty format.
func FormatFromFilename(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToUpper(name[idx+1:])
}
