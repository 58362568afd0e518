package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/upb/rag-gateway/models"
	"github.com/upb/rag-gateway/utils"
	"go.uber.org/zap"
)

// RAGService defines the interface for retrieval and question answering
type RAGService interface {
	// Search performs retrieval only
	Search(ctx context.Context, query string, topK int) ([]models.RetrievedChunk, error)

	// Ask performs the full RAG round trip
	Ask(ctx context.Context, query string, topK int) (*models.AnswerResult, error)
}

// QueryRequest is the request body shared by /search and /ask. TopK
// absent or null selects the configured default result count.
type QueryRequest struct {
	Query string `json:"query" validate:"required"`
	TopK  *int   `json:"top_k" validate:"omitempty,gt=0"`
}

// SearchResponse is the response body for /search
type SearchResponse struct {
	Results []models.RetrievedChunk `json:"results"`
}

// QueryHandler handles the /search and /ask endpoints
type QueryHandler struct {
	service RAGService
	logger  *zap.Logger
}

// NewQueryHandler creates a new QueryHandler
func NewQueryHandler(service RAGService, logger *zap.Logger) *QueryHandler {
	return &QueryHandler{
		service: service,
		logger:  logger,
	}
}

// HandleSearch handles POST /search
func (h *QueryHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	results, err := h.service.Search(r.Context(), req.Query, req.topK())
	if err != nil {
		h.logger.Error("search failed", zap.Error(err))
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusOK, SearchResponse{Results: results}); err != nil {
		h.logger.Error("failed to write search response", zap.Error(err))
	}
}

// HandleAsk handles POST /ask
func (h *QueryHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	result, err := h.service.Ask(r.Context(), req.Query, req.topK())
	if err != nil {
		h.logger.Error("ask failed", zap.Error(err))
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("failed to write ask response", zap.Error(err))
	}
}

// parseQuery decodes and validates the shared request body. It writes the
// bad-request response itself and reports success via the second return.
func (h *QueryHandler) parseQuery(w http.ResponseWriter, r *http.Request) (*QueryRequest, bool) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body", zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return nil, false
	}

	if err := utils.ValidateStruct(&req); err != nil {
		h.logger.Warn("request validation failed", zap.Error(err))
		HandleValidationError(w, err, h.logger)
		return nil, false
	}

	return &req, true
}

func (r *QueryRequest) topK() int {
	if r.TopK == nil {
		return 0
	}
	return *r.TopK
}
