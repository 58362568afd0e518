package app

import (
	"github.com/upb/rag-gateway/config"
	"github.com/upb/rag-gateway/services/generation"
	"github.com/upb/rag-gateway/services/providers"
	"github.com/upb/rag-gateway/services/providers/openai"
	"github.com/upb/rag-gateway/services/rag"
	"github.com/upb/rag-gateway/services/retrieval"
	"github.com/upb/rag-gateway/services/vectorstore/weaviate"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies. This is the central
// wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	Logger *zap.Logger

	// Provider adapter (embedding + completion capabilities)
	Provider *openai.Adapter

	// Vector store
	Searcher *weaviate.Client

	// Services
	Retrieval  *retrieval.Service
	Generation *generation.Service
	RAG        *rag.Service
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(cfg *config.Config, logger *zap.Logger) *Dependencies {
	provider := openai.NewAdapter(providers.Config{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		Timeout:     cfg.OpenAI.Timeout,
		EmbedModel:  cfg.Retrieval.EmbedModel,
		GenModel:    cfg.Generation.Model,
		Temperature: cfg.Generation.Temperature,
	})

	searcher := weaviate.NewClient(weaviate.Config{
		URL:            cfg.Weaviate.URL,
		Collection:     cfg.Weaviate.Collection,
		ConnectTimeout: cfg.Weaviate.ConnectTimeout,
		ReadTimeout:    cfg.Weaviate.ReadTimeout,
	})

	retrievalService := retrieval.NewService(provider, searcher, cfg.Retrieval.DefaultTopK, logger)
	generationService := generation.NewService(provider, cfg.Generation, logger)
	ragService := rag.NewService(retrievalService, generationService, logger)

	return &Dependencies{
		Config:     cfg,
		Logger:     logger,
		Provider:   provider,
		Searcher:   searcher,
		Retrieval:  retrievalService,
		Generation: generationService,
		RAG:        ragService,
	}
}
