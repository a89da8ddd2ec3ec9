package driven

import "context"

// LLMService provides text generation for summarisation.
//
// Implementations may include:
//   - Gemini (google.golang.org/genai)
//   - any OpenAI-compatible chat endpoint
type LLMService interface {
	// Generate produces a completion for the prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

// Summariser produces a bounded-length summary of extracted document text.
// The summariser owns its length contract (word targets and an absolute
// token ceiling); callers do not re-validate the result.
type Summariser interface {
	Summarise(ctx context.Context, text string) (string, error)
}

// TokenCounter counts model tokens in a text, used to enforce the
// summariser's absolute token ceiling.
type TokenCounter interface {
	CountTokens(text string) (int, error)
}
