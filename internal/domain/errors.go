package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product ID is not in the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCatalogEmpty is returned when the catalog has no products loaded
	ErrCatalogEmpty = errors.New("product catalog is empty")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrGenAIUnavailable is returned when the OpenAI API cannot be reached
	ErrGenAIUnavailable = errors.New("generative AI service unavailable")

	// ErrEmbeddingsUnavailable is returned when semantic scoring cannot run
	ErrEmbeddingsUnavailable = errors.New("embeddings index unavailable")
)
