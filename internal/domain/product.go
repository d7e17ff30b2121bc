package domain

// Product represents a single furniture catalog entry loaded from the CSV.
// The catalog is read-only after startup, so products are shared freely
// across requests without copying.
type Product struct {
	ID          string   `json:"uniq_id"`
	Title       string   `json:"title"`
	Brand       string   `json:"brand"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Categories  []string `json:"categories"`
	Images      []string `json:"images"`
	Material    string   `json:"material,omitempty"`
	Color       string   `json:"color,omitempty"`
}

// MainCategory returns the first category, used as the product's primary
// grouping for analytics and description prompts.
func (p *Product) MainCategory() string {
	if len(p.Categories) == 0 {
		return "Furniture"
	}
	return p.Categories[0]
}

// Recommendation is a product augmented with its match score and an
// optionally AI-generated description.
type Recommendation struct {
	Product
	GeneratedDescription string  `json:"generated_description"`
	SimilarityScore      float64 `json:"similarity_score"`
}

// RecommendRequest is the body of POST /api/recommend.
type RecommendRequest struct {
	Query              string `json:"query" binding:"required"`
	NumRecommendations int    `json:"num_recommendations"`
}
