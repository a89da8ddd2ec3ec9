package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   string
	}{
		{"pending", Pending(), "Pending"},
		{"processed", Processed(), "Processed"},
		{"needs ocr", NeedsOCR(), "Needs OCR"},
		{"error with reason", Errorf("cannot fetch bytes"), "Error: cannot fetch bytes"},
		{"error formatted", Errorf("summarise: %s", "boom"), "Error: summarise: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    Status
		wantErr bool
	}{
		{"pending", "Pending", Pending(), false},
		{"processed", "Processed", Processed(), false},
		{"needs ocr", "Needs OCR", NeedsOCR(), false},
		{"error", "Error: cannot fetch bytes", Errorf("cannot fetch bytes"), false},
		{"error empty reason", "Error: ", Status{Code: StatusError}, false},
		{"unknown", "Done", Status{}, true},
		{"empty", "", Status{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatus(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_JSONRoundTrip(t *testing.T) {
	statuses := []Status{
		Pending(),
		Processed(),
		NeedsOCR(),
		Errorf("cannot fetch bytes"),
	}

	for _, s := range statuses {
		data, err := json.Marshal(s)
		require.NoError(t, err)

		var back Status
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, s, back)
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, Pending().IsTerminal())
	assert.True(t, Processed().IsTerminal())
	assert.True(t, NeedsOCR().IsTerminal())
	assert.True(t, Errorf("x").IsTerminal())
}

func TestDocumentRecord_JSONFieldNames(t *testing.T) {
	rec := DocumentRecord{
		DocumentID:       "DIVAMI_001",
		SourceID:         "drive-file-1",
		SourceSystem:     SourceDrive,
		OriginalFilename: "report.pdf",
		Format:           "PDF",
		Status:           Pending(),
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "DIVAMI_001", raw["document_id"])
	assert.Equal(t, "drive-file-1", raw["source_id"])
	assert.Equal(t, "DRIVE", raw["source_system"])
	assert.Equal(t, "report.pdf", raw["original_filename"])
	assert.Equal(t, "Pending", raw["status"])
	assert.Contains(t, raw, "ingested_at")
	assert.Contains(t, raw, "embedding_reference")
}

func TestParseSourceSystem(t *testing.T) {
	got, err := ParseSourceSystem("DRIVE")
	require.NoError(t, err)
	assert.Equal(t, SourceDrive, got)

	got, err = ParseSourceSystem("NOTES")
	require.NoError(t, err)
	assert.Equal(t, SourceNotes, got)

	_, err = ParseSourceSystem("Dropbox")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"report.pdf", "PDF"},
		{"notes.txt", "TXT"},
		{"deck.v2.pptx", "PPTX"},
		{"README", ""},
		{"archive.", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFromFilename(tt.filename), tt.filename)
	}
}
