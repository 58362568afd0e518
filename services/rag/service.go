package rag

import (
	"context"

	"github.com/google/uuid"
	"github.com/upb/rag-gateway/models"
	"go.uber.org/zap"
)

// Retriever fetches relevant chunks for a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]models.RetrievedChunk, error)
}

// Generator produces an answer grounded in the supplied chunks.
type Generator interface {
	GenerateAnswer(ctx context.Context, query string, contexts []models.RetrievedChunk) (string, error)
}

// Service composes retrieval and answer generation into the full RAG
// round trip.
type Service struct {
	retriever Retriever
	generator Generator
	logger    *zap.Logger
}

// NewService creates a new RAG orchestrator
func NewService(retriever Retriever, generator Generator, logger *zap.Logger) *Service {
	return &Service{
		retriever: retriever,
		generator: generator,
		logger:    logger,
	}
}

// Search performs retrieval only.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]models.RetrievedChunk, error) {
	return s.retriever.Retrieve(ctx, query, topK)
}

// Ask retrieves contexts for the query and then generates a grounded
// answer from them, in strict sequence. When generation fails the
// already-retrieved contexts are discarded and the error propagates;
// callers that want contexts on generation failure must call Search
// separately.
func (s *Service) Ask(ctx context.Context, query string, topK int) (*models.AnswerResult, error) {
	askID := uuid.New()

	s.logger.Info("processing ask",
		zap.String("ask_id", askID.String()),
		zap.Int("top_k", topK))

	contexts, err := s.retriever.Retrieve(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	answer, err := s.generator.GenerateAnswer(ctx, query, contexts)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ask complete",
		zap.String("ask_id", askID.String()),
		zap.Int("contexts", len(contexts)))

	return &models.AnswerResult{Answer: answer, Contexts: contexts}, nil
}
