package usecase

import (
	"testing"

	"github.com/furnishly/backend/internal/domain"
)

func price(v float64) *float64 { return &v }

func testProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "p1",
			Title:       "Modern Leather Chair",
			Brand:       "StyleHome",
			Description: "Comfortable chair with ergonomic design",
			Price:       price(89.99),
			Categories:  []string{"Furniture", "Chairs"},
			Material:    "Leather",
			Color:       "Black",
		},
		{
			ID:          "p2",
			Title:       "Oak Dining Table",
			Brand:       "WoodWorks",
			Description: "Solid oak table for six",
			Price:       price(1299),
			Categories:  []string{"Furniture", "Tables"},
			Material:    "Oak",
			Color:       "Brown",
		},
		{
			ID:          "p3",
			Title:       "Velvet Sofa",
			Brand:       "StyleHome",
			Description: "Plush velvet sofa in deep blue",
			Price:       nil,
			Categories:  []string{"Furniture", "Sofas"},
			Material:    "Velvet",
			Color:       "Blue",
		},
		{
			ID:          "p4",
			Title:       "Leather Ottoman",
			Brand:       "StyleHome",
			Description: "Compact leather ottoman",
			Price:       price(45),
			Categories:  []string{"Furniture", "Ottomans"},
			Material:    "Leather",
			Color:       "Black",
		},
	}
}

func TestMatch(t *testing.T) {
	m := NewKeywordMatcher()
	products := testProducts()

	t.Run("returns at most topK results", func(t *testing.T) {
		for _, topK := range []int{0, 1, 2, 10} {
			results := m.Match(products, []string{"leather", "chair", "table", "sofa"}, topK)
			if len(results) > topK {
				t.Errorf("topK=%d: got %d results", topK, len(results))
			}
		}
	})

	t.Run("scores sorted non-increasing", func(t *testing.T) {
		results := m.Match(products, []string{"leather", "chair"}, 10)
		for i := 1; i < len(results); i++ {
			if results[i].SimilarityScore > results[i-1].SimilarityScore {
				t.Errorf("results[%d].score=%v > results[%d].score=%v",
					i, results[i].SimilarityScore, i-1, results[i-1].SimilarityScore)
			}
		}
	})

	t.Run("title match outranks weaker fields", func(t *testing.T) {
		results := m.Match(products, []string{"leather"}, 10)
		if len(results) < 2 {
			t.Fatalf("got %d results, want at least 2", len(results))
		}
		// p1 and p4 both have "leather" in title, description, and material
		if results[0].ID != "p1" && results[0].ID != "p4" {
			t.Errorf("results[0].ID = %s, want p1 or p4", results[0].ID)
		}
	})

	t.Run("ties keep catalog order", func(t *testing.T) {
		// "black" hits color for p1 and p4 identically
		results := m.Match(products, []string{"black"}, 10)
		if len(results) != 2 {
			t.Fatalf("got %d results, want 2", len(results))
		}
		if results[0].ID != "p1" || results[1].ID != "p4" {
			t.Errorf("tie order = [%s %s], want [p1 p4]", results[0].ID, results[1].ID)
		}
	})

	t.Run("no tokens yields no results", func(t *testing.T) {
		if results := m.Match(products, nil, 5); results != nil {
			t.Errorf("Match(nil tokens) = %v, want nil", results)
		}
	})

	t.Run("unmatched tokens yield no results", func(t *testing.T) {
		results := m.Match(products, []string{"spaceship"}, 5)
		if len(results) != 0 {
			t.Errorf("got %d results, want 0", len(results))
		}
	})

	t.Run("only positive scores included", func(t *testing.T) {
		results := m.Match(products, []string{"sofa"}, 10)
		for _, r := range results {
			if r.SimilarityScore <= 0 {
				t.Errorf("result %s has non-positive score %v", r.ID, r.SimilarityScore)
			}
		}
	})

	t.Run("scores clamped to one", func(t *testing.T) {
		results := m.Match(products, []string{"leather", "chair", "ergonomic", "black", "stylehome"}, 10)
		for _, r := range results {
			if r.SimilarityScore > 1.0 {
				t.Errorf("result %s score %v exceeds 1.0", r.ID, r.SimilarityScore)
			}
		}
	})
}

func TestScore(t *testing.T) {
	m := NewKeywordMatcher()
	products := testProducts()

	t.Run("field weights accumulate", func(t *testing.T) {
		// "oak" appears in p2's title (3), description (2), and material (1)
		got := m.Score(&products[1], []string{"oak"})
		if got != 6 {
			t.Errorf("Score = %v, want 6", got)
		}
	})

	t.Run("category hits weighted", func(t *testing.T) {
		// "sofas" appears only in p3's categories
		got := m.Score(&products[2], []string{"sofas"})
		if got != 2 {
			t.Errorf("Score = %v, want 2", got)
		}
	})

	t.Run("case insensitive over fields", func(t *testing.T) {
		// Matching is against lowercased fields; tokens arrive lowercased
		got := m.Score(&products[0], []string{"stylehome"})
		if got != 1 {
			t.Errorf("Score = %v, want 1 (brand hit)", got)
		}
	})
}
