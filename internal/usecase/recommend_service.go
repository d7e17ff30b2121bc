package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/furnishly/backend/internal/domain"
)

// descriptionExcerptLen caps the raw-description excerpt used in the
// template fallback when AI generation is unavailable.
const descriptionExcerptLen = 100

// RecommendServiceConfig holds configuration for the recommendation service
type RecommendServiceConfig struct {
	DefaultResults     int
	MaxResults         int
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// RecommendService turns a free-text query into ranked, enriched product
// recommendations. Semantic scoring and description generation are
// optional; when their dependencies are absent or failing, the service
// degrades to keyword scoring and template descriptions.
type RecommendService struct {
	catalog      domain.CatalogRepository
	preprocessor *QueryPreprocessor
	matcher      *KeywordMatcher
	embedder     domain.QueryEmbedder
	vectors      domain.VectorIndex
	generator    domain.DescriptionGenerator
	cache        domain.CacheRepository

	defaultResults     int
	maxResults         int
	cacheTTL           time.Duration
	enableDebugLogging bool
}

// NewRecommendService creates a recommendation service. embedder, vectors,
// and generator may be nil to disable the corresponding AI features.
func NewRecommendService(
	catalog domain.CatalogRepository,
	embedder domain.QueryEmbedder,
	vectors domain.VectorIndex,
	generator domain.DescriptionGenerator,
	cache domain.CacheRepository,
	config RecommendServiceConfig,
) *RecommendService {
	defaultResults := config.DefaultResults
	if defaultResults <= 0 {
		defaultResults = 5
	}

	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &RecommendService{
		catalog:            catalog,
		preprocessor:       NewQueryPreprocessor(),
		matcher:            NewKeywordMatcher(),
		embedder:           embedder,
		vectors:            vectors,
		generator:          generator,
		cache:              cache,
		defaultResults:     defaultResults,
		maxResults:         maxResults,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Recommend returns up to numResults recommendations for the query,
// ordered by descending score. An empty or all-stopword query returns an
// empty slice without error.
func (s *RecommendService) Recommend(ctx context.Context, query string, numResults int) ([]domain.Recommendation, error) {
	if s.catalog.Len() == 0 {
		return nil, domain.ErrCatalogEmpty
	}

	topK := s.clampResultCount(numResults)

	tokens := s.preprocessor.Tokenize(query)
	if len(tokens) == 0 {
		if s.enableDebugLogging {
			log.Printf("[RECOMMEND] Query %q reduced to no tokens", query)
		}
		return []domain.Recommendation{}, nil
	}

	results := s.semanticMatch(ctx, query, topK)
	if results == nil {
		results = s.matcher.Match(s.catalog.All(), tokens, topK)
	}

	if s.enableDebugLogging {
		log.Printf("[RECOMMEND] Query %q -> %d results (topK=%d)", query, len(results), topK)
	}

	for i := range results {
		results[i].GeneratedDescription = s.describe(ctx, &results[i].Product)
	}

	return results, nil
}

// clampResultCount bounds the requested result count to [1, maxResults],
// substituting the default for zero or negative requests.
func (s *RecommendService) clampResultCount(numResults int) int {
	if numResults <= 0 {
		return s.defaultResults
	}
	if numResults > s.maxResults {
		return s.maxResults
	}
	return numResults
}

// semanticMatch scores the query against precomputed embeddings. Returns
// nil when semantic scoring is unavailable or fails, signalling the caller
// to fall back to keyword scoring.
func (s *RecommendService) semanticMatch(ctx context.Context, query string, topK int) []domain.Recommendation {
	if s.embedder == nil || s.vectors == nil || s.vectors.Len() == 0 {
		return nil
	}

	queryVector, err := s.embedder.EmbedQuery(ctx, s.preprocessor.Normalize(query))
	if err != nil {
		log.Printf("[RECOMMEND] Query embedding failed, falling back to keyword scoring: %v", err)
		return nil
	}

	matches, err := s.vectors.Search(queryVector, topK)
	if err != nil {
		log.Printf("[RECOMMEND] Vector search failed, falling back to keyword scoring: %v", err)
		return nil
	}

	results := make([]domain.Recommendation, 0, len(matches))
	for _, match := range matches {
		product, ok := s.catalog.ByID(match.ProductID)
		if !ok {
			// Embeddings file and CSV can drift; skip unknown IDs
			continue
		}
		results = append(results, domain.Recommendation{
			Product:         *product,
			SimilarityScore: match.Score,
		})
	}

	return results
}

// describe returns a marketing description for the product, preferring
// the cached AI-generated text, then a fresh generation, then the
// deterministic template.
func (s *RecommendService) describe(ctx context.Context, product *domain.Product) string {
	cacheKey := "description:" + product.ID

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			if description, ok := cached.(string); ok && description != "" {
				return description
			}
		}
	}

	if s.generator != nil {
		description, err := s.generator.GenerateDescription(ctx, product)
		if err == nil && description != "" {
			if s.cache != nil {
				if cacheErr := s.cache.Set(ctx, cacheKey, description, s.cacheTTL); cacheErr != nil {
					log.Printf("[RECOMMEND] Failed to cache description for %s: %v", product.ID, cacheErr)
				}
			}
			return description
		}
		log.Printf("[RECOMMEND] Description generation failed for %s, using template: %v", product.ID, err)
	}

	return templateDescription(product)
}

// templateDescription is the deterministic fallback description
func templateDescription(product *domain.Product) string {
	excerpt := product.Description
	if len(excerpt) > descriptionExcerptLen {
		excerpt = excerpt[:descriptionExcerptLen]
	}
	if excerpt == "" {
		excerpt = "Quality furniture piece."
	}

	brand := product.Brand
	if brand == "" {
		brand = "quality"
	}

	return fmt.Sprintf("This %s product is perfect for your needs. %s", brand, excerpt)
}

// Product returns a single catalog product by ID.
func (s *RecommendService) Product(id string) (*domain.Product, error) {
	product, ok := s.catalog.ByID(id)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// CatalogSize returns the number of loaded products, for health reporting.
func (s *RecommendService) CatalogSize() int {
	return s.catalog.Len()
}
