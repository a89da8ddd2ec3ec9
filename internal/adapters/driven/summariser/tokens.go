package summariser

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/divami-labs/docpipe-cli/internal/core/ports/driven"
)

// Ensure TiktokenCounter implements the interface.
var _ driven.TokenCounter = (*TiktokenCounter)(nil)

// DefaultTokenModel is the encoding model used when none is configured.
const DefaultTokenModel = "text-embedding-ada-002"

// TiktokenCounter counts tokens with the tiktoken encoding of a model.
type TiktokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktokenCounter creates a counter for the given model's encoding.
func NewTiktokenCounter(model string) (*TiktokenCounter, error) {
	if model == "" {
		model = DefaultTokenModel
	}
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("load encoding for %s: %w", model, err)
	}
	return &TiktokenCounter{encoding: encoding}, nil
}

// CountTokens returns the number of tokens in text.
func (c *TiktokenCounter) CountTokens(text string) (int, error) {
	return len(c.encoding.Encode(text, nil, nil)), nil
}
