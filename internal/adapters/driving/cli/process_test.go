package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/divami-labs/docpipe-cli/internal/core/ports/driving"
)

func TestProcessCmd_Use(t *testing.T) {
	assert.Equal(t, "process", processCmd.Use)
}

func TestProcessCmd_PrintsReport(t *testing.T) {
	cleanup := setupTestServices(&fakeDiscovery{}, &fakeProcessing{
		report: &driving.ProcessingReport{Scanned: 5, Processed: 3, NeedsOCR: 1, Failed: 1},
	}, &fakeDocuments{})
	defer cleanup()

	out, err := executeCommand("process")

	assert.NoError(t, err)
	assert.Contains(t, out, "Scanned:   5")
	assert.Contains(t, out, "Processed: 3")
	assert.Contains(t, out, "Needs OCR: 1")
	assert.Contains(t, out, "Failed:    1")
}

func TestProcessCmd_PropagatesFailure(t *testing.T) {
	cleanup := setupTestServices(&fakeDiscovery{}, &fakeProcessing{
		err: errors.New("store unreadable"),
	}, &fakeDocuments{})
	defer cleanup()

	_, err := executeCommand("process")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store unreadable")
}
