package providers

import (
	"context"
	"time"
)

// Embedder produces a fixed-length vector embedding for a piece of text.
// The embedding model is fixed at construction time and must match the
// model the vector index was built with.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Completer produces the text of a single-turn completion for a prompt.
// No conversation history is carried between calls.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds common configuration for provider adapters
type Config struct {
	// APIKey for authentication
	APIKey string

	// BaseURL for the API (optional override)
	BaseURL string

	// Timeout for requests
	Timeout time.Duration

	// EmbedModel is the embedding model identifier
	EmbedModel string

	// GenModel is the completion model identifier
	GenModel string

	// Temperature for completions
	Temperature float32
}
