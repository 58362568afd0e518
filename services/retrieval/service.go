package retrieval

import (
	"context"

	"github.com/upb/rag-gateway/models"
	"github.com/upb/rag-gateway/services"
	"github.com/upb/rag-gateway/services/providers"
	"github.com/upb/rag-gateway/services/vectorstore"
	"go.uber.org/zap"
)

// Service turns a query string into an ordered list of retrieved chunks:
// it embeds the query, runs a nearest-neighbor search, and normalizes
// whatever the store returned.
type Service struct {
	embedder    providers.Embedder
	searcher    vectorstore.Searcher
	defaultTopK int
	logger      *zap.Logger
}

// NewService creates a new retrieval service
func NewService(embedder providers.Embedder, searcher vectorstore.Searcher, defaultTopK int, logger *zap.Logger) *Service {
	return &Service{
		embedder:    embedder,
		searcher:    searcher,
		defaultTopK: defaultTopK,
		logger:      logger,
	}
}

// Retrieve returns at most topK chunks relevant to the query, in the
// relevance order chosen by the vector store. topK <= 0 selects the
// configured default. Embedding and store failures propagate; no retry
// happens at this layer.
func (s *Service) Retrieve(ctx context.Context, query string, topK int) ([]models.RetrievedChunk, error) {
	if topK <= 0 {
		topK = s.defaultTopK
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, services.NewDomainError(services.ErrorTypeExternal, "embedding query failed", err)
	}

	s.logger.Debug("querying vector store",
		zap.Int("top_k", topK),
		zap.Int("vector_dim", len(vector)))

	objects, err := s.searcher.NearVector(ctx, vector, topK)
	if err != nil {
		return nil, services.NewDomainError(services.ErrorTypeExternal, "vector search failed", err)
	}

	chunks := make([]models.RetrievedChunk, 0, len(objects))
	for _, obj := range objects {
		chunks = append(chunks, normalizeObject(obj))
	}
	return chunks, nil
}

// normalizeObject maps a raw store object onto a RetrievedChunk. Text
// prefers the "text" property, falls back to the legacy "pageContent"
// name, and defaults to the empty string. Missing optional properties
// become nil; a missing distance becomes a nil score.
func normalizeObject(obj vectorstore.Object) models.RetrievedChunk {
	chunk := models.RetrievedChunk{Score: obj.Distance}

	if text := stringProperty(obj.Properties, "text"); text != nil && *text != "" {
		chunk.Text = *text
	} else if legacy := stringProperty(obj.Properties, "pageContent"); legacy != nil {
		chunk.Text = *legacy
	}

	chunk.DocID = stringProperty(obj.Properties, "doc_id")
	chunk.ChunkID = stringProperty(obj.Properties, "chunk_id")
	chunk.Source = stringProperty(obj.Properties, "source")
	chunk.MimeType = stringProperty(obj.Properties, "mime_type")
	chunk.Page = intProperty(obj.Properties, "page")

	return chunk
}

func stringProperty(props map[string]interface{}, key string) *string {
	if v, ok := props[key].(string); ok {
		return &v
	}
	return nil
}

func intProperty(props map[string]interface{}, key string) *int {
	switch v := props[key].(type) {
	case float64:
		page := int(v)
		return &page
	case int:
		page := v
		return &page
	}
	return nil
}
