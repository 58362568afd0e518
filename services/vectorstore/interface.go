package vectorstore

import "context"

// Object is a single raw nearest-neighbor result as returned by the
// store: the stored properties plus the distance metadata, when the
// store supplied it.
type Object struct {
	Properties map[string]interface{}
	Distance   *float64
}

// Searcher performs nearest-neighbor lookups against a vector index.
// Results are returned in the relevance order chosen by the store.
type Searcher interface {
	NearVector(ctx context.Context, vector []float32, limit int) ([]Object, error)
}
