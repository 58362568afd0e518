package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/upb/rag-gateway/services/providers"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Adapter implements the Embedder and Completer interfaces on top of the
// OpenAI API. The same adapter serves both capabilities since they share
// one credential and transport.
type Adapter struct {
	config providers.Config
	client *goopenai.Client
}

// NewAdapter creates a new OpenAI adapter
func NewAdapter(config providers.Config) *Adapter {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	clientConfig := goopenai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = config.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: config.Timeout,
	}

	return &Adapter{
		config: config,
		client: goopenai.NewClientWithConfig(clientConfig),
	}
}

// Name returns the provider name
func (a *Adapter) Name() string {
	return "openai"
}

// Embed returns the embedding vector for the given text using the
// configured embedding model.
func (a *Adapter) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := a.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Input: []string{text},
		Model: goopenai.EmbeddingModel(a.config.EmbedModel),
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("embeddings response contained no data")
	}
	return resp.Data[0].Embedding, nil
}

// Complete sends the prompt as a single user message to the configured
// generation model and returns the raw reply content.
func (a *Adapter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: a.config.GenModel,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: a.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
