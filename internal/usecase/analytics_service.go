package usecase

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/furnishly/backend/internal/domain"
)

// topNLimit caps the brand and category distributions returned to the
// dashboard.
const topNLimit = 10

const analyticsCacheKey = "analytics:snapshot"

// AnalyticsService computes aggregate statistics over the catalog. The
// catalog never changes after load, so the snapshot is cached purely to
// skip recomputation.
type AnalyticsService struct {
	catalog  domain.CatalogRepository
	cache    domain.CacheRepository
	cacheTTL time.Duration
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(catalog domain.CatalogRepository, cache domain.CacheRepository, cacheTTL time.Duration) *AnalyticsService {
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}
	return &AnalyticsService{
		catalog:  catalog,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Snapshot returns the aggregate statistics for the dashboard.
func (s *AnalyticsService) Snapshot(ctx context.Context) (*domain.AnalyticsSnapshot, error) {
	if s.catalog.Len() == 0 {
		return nil, domain.ErrCatalogEmpty
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, analyticsCacheKey); err == nil {
			if snapshot, ok := cached.(*domain.AnalyticsSnapshot); ok {
				return snapshot, nil
			}
		}
	}

	snapshot := s.compute()

	if s.cache != nil {
		if err := s.cache.Set(ctx, analyticsCacheKey, snapshot, s.cacheTTL); err != nil {
			log.Printf("[ANALYTICS] Failed to cache snapshot: %v", err)
		}
	}

	return snapshot, nil
}

// compute builds the snapshot in a single pass over the catalog.
func (s *AnalyticsService) compute() *domain.AnalyticsSnapshot {
	products := s.catalog.All()

	brandCounts := make(map[string]int)
	categoryCounts := make(map[string]int)
	var prices []float64

	for i := range products {
		product := &products[i]

		if product.Brand != "" {
			brandCounts[product.Brand]++
		}

		if len(product.Categories) > 0 {
			categoryCounts[product.MainCategory()]++
		}

		if product.Price != nil {
			prices = append(prices, *product.Price)
		}
	}

	return &domain.AnalyticsSnapshot{
		TotalProducts:          len(products),
		CategoriesDistribution: topN(categoryCounts, topNLimit),
		PriceStats:             priceStats(prices),
		TopBrands:              topN(brandCounts, topNLimit),
	}
}

// priceStats computes descriptive statistics over the priced subset.
// An empty input yields all zeros rather than NaN.
func priceStats(prices []float64) domain.PriceStats {
	if len(prices) == 0 {
		return domain.PriceStats{}
	}

	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	var sum float64
	for _, p := range sorted {
		sum += p
	}

	return domain.PriceStats{
		Mean:              round2(sum / float64(len(sorted))),
		Median:            round2(median(sorted)),
		Min:               round2(sorted[0]),
		Max:               round2(sorted[len(sorted)-1]),
		ProductsWithPrice: len(prices),
	}
}

// median expects a sorted slice
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// round2 rounds to two decimal places for dollar amounts
func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

// topN returns the n highest counts. Ties break alphabetically so the
// snapshot is deterministic.
func topN(counts map[string]int, n int) map[string]int {
	type kv struct {
		key   string
		count int
	}

	entries := make([]kv, 0, len(counts))
	for k, c := range counts {
		entries = append(entries, kv{key: k, count: c})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})

	if len(entries) > n {
		entries = entries[:n]
	}

	top := make(map[string]int, len(entries))
	for _, e := range entries {
		top[e.key] = e.count
	}

	return top
}
