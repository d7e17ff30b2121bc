package domain

import (
	"context"
	"time"
)

// CatalogRepository defines read access to the immutable product catalog.
type CatalogRepository interface {
	All() []Product
	ByID(id string) (*Product, bool)
	Len() int
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// DescriptionGenerator produces marketing copy for a recommended product.
// Implementations are best-effort: callers fall back to a template
// description when an error is returned.
type DescriptionGenerator interface {
	GenerateDescription(ctx context.Context, product *Product) (string, error)
}

// QueryEmbedder converts a free-text query into an embedding vector for
// semantic similarity scoring.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float64, error)
}

// VectorIndex scores a query vector against the precomputed product
// embeddings and returns the top-K product IDs with cosine similarities.
type VectorIndex interface {
	Search(queryVector []float64, topK int) ([]VectorMatch, error)
	Len() int
}

// VectorMatch pairs a product ID with its cosine similarity to the query.
type VectorMatch struct {
	ProductID string
	Score     float64
}
