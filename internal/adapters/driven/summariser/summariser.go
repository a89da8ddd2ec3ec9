// Package summariser produces bounded-length document summaries using a
// three-tier strategy keyed on document word count, with a final absolute
// token ceiling.
package summariser

import (
	"context"
	"fmt"
	"strings"

	"github.com/divami-labs/docpipe-cli/internal/core/ports/driven"
	"github.com/divami-labs/docpipe-cli/internal/logger"
)

// Ensure Summariser implements the interface.
var _ driven.Summariser = (*Summariser)(nil)

// Tier thresholds and bounds.
const (
	shortDocWords  = 800  // below: extract 5 sentences
	mediumDocWords = 2000 // below: extract 8 sentences; above: chunked extraction
	chunkWords     = 500  // window size for long documents

	extractMaxTokens  = 512
	chunkMaxTokens    = 128
	compressMaxTokens = 300

	shortCompressAt  = 300 // words
	mediumCompressAt = 250
	longCompressAt   = 300
)

// DefaultTokenLimit is the absolute summary token ceiling when none is configured.
const DefaultTokenLimit = 550

// Config holds summariser configuration.
type Config struct {
	// TokenLimit is the absolute token ceiling (default 550).
	TokenLimit int
}

// Summariser drives an LLM through the tiered extraction strategy.
type Summariser struct {
	llm        driven.LLMService
	tokens     driven.TokenCounter
	tokenLimit int
}

// New creates a summariser on the given LLM and token counter.
func New(llm driven.LLMService, tokens driven.TokenCounter, cfg Config) *Summariser {
	limit := cfg.TokenLimit
	if limit <= 0 {
		limit = DefaultTokenLimit
	}
	return &Summariser{llm: llm, tokens: tokens, tokenLimit: limit}
}

// Summarise produces a bounded-length summary:
//   - under 800 words: extract the 5 most important sentences, compress if
//     the result exceeds 300 words
//   - 800 to 2000 words: extract 8 sentences, compress if over 250 words
//   - over 2000 words: 500-word windows, 2 sentences each, concatenated,
//     compressed if over 300 words
//
// A final pass re-summarises whenever the token count exceeds the ceiling.
func (s *Summariser) Summarise(ctx context.Context, text string) (string, error) {
	words := strings.Fields(text)
	n := len(words)

	var summary string
	var err error
	switch {
	case n < shortDocWords:
		summary, err = s.extractAndCompress(ctx, text, 5, shortCompressAt, compressShortPrompt)
	case n <= mediumDocWords:
		summary, err = s.extractAndCompress(ctx, text, 8, mediumCompressAt, compressPrompt)
	default:
		summary, err = s.summariseLong(ctx, words)
	}
	if err != nil {
		return "", err
	}

	return s.enforceTokenLimit(ctx, summary)
}

// Compression prompts. The short tier compresses the original extraction;
// the medium and long tiers rewrite an already-assembled summary.
const (
	compressShortPrompt = "Compress the following text into a concise 200–250 word summary:\n\n%s"
	compressPrompt      = "Rewrite the following into a concise 200–250 word summary:\n\n%s"
)

// extractAndCompress runs a single sentence-extraction pass and compresses
// the result if it exceeds maxWords.
func (s *Summariser) extractAndCompress(ctx context.Context, text string, sentences, maxWords int, prompt string) (string, error) {
	summary, err := s.generate(ctx, fmt.Sprintf(
		"Extract the %d most important sentences from the following text:\n\n%s",
		sentences, text,
	), extractMaxTokens)
	if err != nil {
		return "", err
	}

	if len(strings.Fields(summary)) > maxWords {
		return s.compress(ctx, summary, prompt)
	}
	return summary, nil
}

// summariseLong chunks the document into ~500-word windows, extracts two
// sentences per chunk and concatenates the results.
func (s *Summariser) summariseLong(ctx context.Context, words []string) (string, error) {
	var extracted []string
	for i := 0; i < len(words); i += chunkWords {
		end := i + chunkWords
		if end > len(words) {
			end = len(words)
		}
		chunk := strings.Join(words[i:end], " ")

		part, err := s.generate(ctx, fmt.Sprintf(
			"Extract the 2 most important sentences from the following text:\n\n%s",
			chunk,
		), chunkMaxTokens)
		if err != nil {
			return "", err
		}
		extracted = append(extracted, part)
	}

	summary := strings.Join(extracted, " ")
	if len(strings.Fields(summary)) > longCompressAt {
		return s.compress(ctx, summary, compressPrompt)
	}
	return summary, nil
}

func (s *Summariser) compress(ctx context.Context, summary, prompt string) (string, error) {
	return s.generate(ctx, fmt.Sprintf(prompt, summary), compressMaxTokens)
}

// enforceTokenLimit re-summarises once when the summary exceeds the ceiling.
func (s *Summariser) enforceTokenLimit(ctx context.Context, summary string) (string, error) {
	count, err := s.tokens.CountTokens(summary)
	if err != nil {
		// A counting failure must not discard an otherwise good summary.
		logger.Warn("token counting failed, skipping ceiling check: %v", err)
		return summary, nil
	}
	if count <= s.tokenLimit {
		return summary, nil
	}

	logger.Debug("summary at %d tokens exceeds limit %d, re-summarising", count, s.tokenLimit)
	return s.generate(ctx, fmt.Sprintf(
		"Reduce the following summary to under %d tokens. Keep it coherent and informative:\n\n%s",
		s.tokenLimit, summary,
	), s.tokenLimit)
}

func (s *Summariser) generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	out, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{MaxTokens: maxTokens})
	if err != nil {
		return "", fmt.Errorf("summarise: %w", err)
	}
	return strings.TrimSpace(out), nil
}
