package domain

// AnalyticsSnapshot holds aggregate statistics over the full catalog,
// consumed by the dashboard charts.
type AnalyticsSnapshot struct {
	TotalProducts          int            `json:"total_products"`
	CategoriesDistribution map[string]int `json:"categories_distribution"`
	PriceStats             PriceStats     `json:"price_stats"`
	TopBrands              map[string]int `json:"top_brands"`
}

// PriceStats are descriptive statistics over the priced subset of the
// catalog. All fields are zero when no product carries a parseable price.
type PriceStats struct {
	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	Min               float64 `json:"min"`
	Max               float64 `json:"max"`
	ProductsWithPrice int     `json:"products_with_price"`
}
