package usecase

import (
	"sort"
	"strings"

	"github.com/furnishly/backend/internal/domain"
)

// Field weights for keyword scoring. Title hits matter most, then
// description and categories, then brand/material/color.
const (
	weightTitle       = 3.0
	weightDescription = 2.0
	weightCategories  = 2.0
	weightBrand       = 1.0
	weightMaterial    = 1.0
	weightColor       = 1.0
)

// scoreNormalizer divides the raw weighted hit count to map typical scores
// into [0, 1]; anything above is clamped to 1.
const scoreNormalizer = 10.0

// KeywordMatcher scores catalog products against query tokens by
// substring containment over the searchable fields.
type KeywordMatcher struct{}

// NewKeywordMatcher creates a new keyword matcher
func NewKeywordMatcher() *KeywordMatcher {
	return &KeywordMatcher{}
}

// scoredProduct pairs a catalog position with its match score so sorting
// can preserve catalog order on ties.
type scoredProduct struct {
	index int
	score float64
}

// Match scans every product and returns up to topK with a positive score,
// ordered by descending score. Ties keep catalog order.
func (m *KeywordMatcher) Match(products []domain.Product, tokens []string, topK int) []domain.Recommendation {
	if len(tokens) == 0 || topK <= 0 {
		return nil
	}

	var scored []scoredProduct
	for i := range products {
		score := m.Score(&products[i], tokens)
		if score > 0 {
			scored = append(scored, scoredProduct{index: i, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}

	results := make([]domain.Recommendation, 0, len(scored))
	for _, s := range scored {
		results = append(results, domain.Recommendation{
			Product:         products[s.index],
			SimilarityScore: normalizeScore(s.score),
		})
	}

	return results
}

// Score computes the raw weighted hit count for one product. Each query
// token contributes the field weight for every searchable field that
// contains it as a substring.
func (m *KeywordMatcher) Score(product *domain.Product, tokens []string) float64 {
	title := strings.ToLower(product.Title)
	description := strings.ToLower(product.Description)
	brand := strings.ToLower(product.Brand)
	material := strings.ToLower(product.Material)
	color := strings.ToLower(product.Color)
	categories := strings.ToLower(strings.Join(product.Categories, " "))

	var score float64
	for _, token := range tokens {
		if strings.Contains(title, token) {
			score += weightTitle
		}
		if description != "" && strings.Contains(description, token) {
			score += weightDescription
		}
		if categories != "" && strings.Contains(categories, token) {
			score += weightCategories
		}
		if brand != "" && strings.Contains(brand, token) {
			score += weightBrand
		}
		if material != "" && strings.Contains(material, token) {
			score += weightMaterial
		}
		if color != "" && strings.Contains(color, token) {
			score += weightColor
		}
	}

	return score
}

// normalizeScore maps a raw weighted score to a 0-1 similarity
func normalizeScore(raw float64) float64 {
	normalized := raw / scoreNormalizer
	if normalized > 1.0 {
		return 1.0
	}
	return normalized
}
