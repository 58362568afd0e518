package generation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/upb/rag-gateway/config"
	"github.com/upb/rag-gateway/models"
	"github.com/upb/rag-gateway/services"
	"github.com/upb/rag-gateway/services/providers"
	"go.uber.org/zap"
)

// divider visually separates context blocks inside the grounding prompt.
const divider = "\n\n---\n\n"

// Service builds a grounding prompt from retrieved chunks and asks the
// completion provider to answer from it, applying a bounded retry policy.
type Service struct {
	completer providers.Completer
	config    config.GenerationConfig
	logger    *zap.Logger
}

// NewService creates a new generation service
func NewService(completer providers.Completer, cfg config.GenerationConfig, logger *zap.Logger) *Service {
	return &Service{
		completer: completer,
		config:    cfg,
		logger:    logger,
	}
}

// GenerateAnswer invokes the completion provider with the grounding
// prompt built from query and contexts, retrying any failure up to the
// configured attempt bound with exponential backoff. Every failure kind
// is retried identically; after the last attempt the error propagates.
func (s *Service) GenerateAnswer(ctx context.Context, query string, contexts []models.RetrievedChunk) (string, error) {
	prompt := BuildPrompt(query, contexts)

	var answer string
	attempts := 0
	operation := func() error {
		attempts++
		text, err := s.completer.Complete(ctx, prompt)
		if err != nil {
			s.logger.Warn("completion attempt failed",
				zap.Int("attempt", attempts),
				zap.Error(err))
			return err
		}
		answer = text
		return nil
	}

	if err := backoff.Retry(operation, s.newBackOff(ctx)); err != nil {
		return "", services.NewDomainError(services.ErrorTypeExternal, "completion failed", err).
			WithDetail("attempts", attempts)
	}

	return strings.TrimSpace(answer), nil
}

// newBackOff builds the retry schedule: MaxAttempts total attempts, wait
// starting at RetryInitialWait, doubling, capped at RetryMaxWait.
func (s *Service) newBackOff(ctx context.Context) backoff.BackOffContext {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.config.RetryInitialWait
	bo.RandomizationFactor = 0
	bo.Multiplier = 2
	bo.MaxInterval = s.config.RetryMaxWait
	bo.MaxElapsedTime = 0

	maxRetries := s.config.MaxAttempts - 1
	if maxRetries < 0 {
		maxRetries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(bo, uint64(maxRetries)), ctx)
}

// BuildPrompt assembles the grounding prompt: contexts numbered from 1
// and tagged with their doc id and page, separated by a divider, followed
// by the question and the grounding instructions.
func BuildPrompt(query string, contexts []models.RetrievedChunk) string {
	blocks := make([]string, len(contexts))
	for i, c := range contexts {
		blocks[i] = fmt.Sprintf("[%d] (doc:%s p:%s)\n%s", i+1, docLabel(c), pageLabel(c), c.Text)
	}

	return fmt.Sprintf(`You are a helpful assistant. Use only the CONTEXT to answer.

QUESTION:
%s

CONTEXT:
%s

If the answer isn't in the context, say you don't know. End with short bullet citations like [1], [2].`,
		query, strings.Join(blocks, divider))
}

func docLabel(c models.RetrievedChunk) string {
	if c.DocID != nil {
		return *c.DocID
	}
	return "unknown"
}

func pageLabel(c models.RetrievedChunk) string {
	if c.Page != nil {
		return strconv.Itoa(*c.Page)
	}
	return "-"
}
