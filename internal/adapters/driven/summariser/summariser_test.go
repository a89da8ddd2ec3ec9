package summariser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divami-labs/docpipe-cli/internal/core/ports/driven"
)

// fakeLLM records each prompt and replies from a scripted queue.
type fakeLLM struct {
	prompts []string
	replies []string
	err     error
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "a short summary.", nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

func (f *fakeLLM) ModelName() string { return "fake" }
func (f *fakeLLM) Close() error      { return nil }

// fixedCounter counts whitespace-separated words as tokens.
type fixedCounter struct{}

func (fixedCounter) CountTokens(text string) (int, error) {
	return len(strings.Fields(text)), nil
}

func repeatWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "word"
	}
	return strings.Join(words, " ")
}

func TestSummarise_ShortDocumentUsesFiveSentences(t *testing.T) {
	llm := &fakeLLM{}
	s := New(llm, fixedCounter{}, Config{TokenLimit: 550})

	summary, err := s.Summarise(context.Background(), repeatWords(500))
	require.NoError(t, err)
	assert.Equal(t, "a short summary.", summary)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Extract the 5 most important sentences")
}

func TestSummarise_MediumDocumentUsesEightSentences(t *testing.T) {
	llm := &fakeLLM{}
	s := New(llm, fixedCounter{}, Config{TokenLimit: 550})

	_, err := s.Summarise(context.Background(), repeatWords(1500))
	require.NoError(t, err)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Extract the 8 most important sentences")
}

func TestSummarise_LongDocumentChunks(t *testing.T) {
	llm := &fakeLLM{}
	s := New(llm, fixedCounter{}, Config{TokenLimit: 550})

	// 2300 words -> five 500-word windows (last one partial).
	_, err := s.Summarise(context.Background(), repeatWords(2300))
	require.NoError(t, err)

	require.Len(t, llm.prompts, 5)
	for _, prompt := range llm.prompts {
		assert.Contains(t, prompt, "Extract the 2 most important sentences")
	}
}

func TestSummarise_CompressesVerboseShortSummary(t *testing.T) {
	llm := &fakeLLM{replies: []string{repeatWords(350), "compressed."}}
	s := New(llm, fixedCounter{}, Config{TokenLimit: 550})

	summary, err := s.Summarise(context.Background(), repeatWords(500))
	require.NoError(t, err)
	assert.Equal(t, "compressed.", summary)

	require.Len(t, llm.prompts, 2)
	assert.Contains(t, llm.prompts[1], "Compress the following text into a concise 200–250 word summary")
}

func TestSummarise_CompressesVerboseMediumSummary(t *testing.T) {
	llm := &fakeLLM{replies: []string{repeatWords(300), "rewritten."}}
	s := New(llm, fixedCounter{}, Config{TokenLimit: 550})

	summary, err := s.Summarise(context.Background(), repeatWords(1500))
	require.NoError(t, err)
	assert.Equal(t, "rewritten.", summary)

	require.Len(t, llm.prompts, 2)
	assert.Contains(t, llm.prompts[1], "Rewrite the following into a concise 200–250 word summary")
}

func TestSummarise_EnforcesTokenCeiling(t *testing.T) {
	// First reply is under the compress threshold but over the token limit.
	llm := &fakeLLM{replies: []string{repeatWords(200), "reduced."}}
	s := New(llm, fixedCounter{}, Config{TokenLimit: 100})

	summary, err := s.Summarise(context.Background(), repeatWords(500))
	require.NoError(t, err)
	assert.Equal(t, "reduced.", summary)

	require.Len(t, llm.prompts, 2)
	assert.Contains(t, llm.prompts[1], "Reduce the following summary to under 100 tokens")
}

func TestSummarise_LLMFailurePropagates(t *testing.T) {
	llm := &fakeLLM{err: errors.New("model unavailable")}
	s := New(llm, fixedCounter{}, Config{})

	_, err := s.Summarise(context.Background(), repeatWords(100))
	assert.ErrorContains(t, err, "model unavailable")
}
