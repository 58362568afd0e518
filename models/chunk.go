package models

// RetrievedChunk is a single normalized result from a nearest-neighbor
// lookup. Text is never null; it defaults to the empty string when the
// stored object carries no text. All other fields are optional and
// serialize as JSON null when absent.
type RetrievedChunk struct {
	Text     string   `json:"text"`
	DocID    *string  `json:"doc_id"`
	ChunkID  *string  `json:"chunk_id"`
	Source   *string  `json:"source"`
	Page     *int     `json:"page"`
	MimeType *string  `json:"mime_type"`
	// Score is the raw distance metadata returned by the vector store.
	// Its direction depends on the store's distance metric, so it is
	// passed through untouched.
	Score *float64 `json:"score"`
}

// AnswerResult is the outcome of a full RAG round trip: the generated
// answer plus the chunks it was grounded on, in relevance order.
type AnswerResult struct {
	Answer   string           `json:"answer"`
	Contexts []RetrievedChunk `json:"contexts"`
}
