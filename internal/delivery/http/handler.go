package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/furnishly/backend/internal/domain"
	"github.com/furnishly/backend/internal/usecase"
)

const serviceVersion = "1.0.0"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommendService *usecase.RecommendService
	analyticsService *usecase.AnalyticsService
}

// NewHandler creates a new HTTP handler
func NewHandler(recommendService *usecase.RecommendService, analyticsService *usecase.AnalyticsService) *Handler {
	return &Handler{
		recommendService: recommendService,
		analyticsService: analyticsService,
	}
}

// Root returns the service banner with the available endpoints
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Furniture Recommendation API",
		"status":  "running",
		"version": serviceVersion,
		"endpoints": gin.H{
			"health":    "/api/health",
			"recommend": "/api/recommend (POST)",
			"analytics": "/api/analytics",
			"product":   "/api/products/:id",
		},
	})
}

// HealthCheck reports service health and how many products are loaded
func (h *Handler) HealthCheck(c *gin.Context) {
	productsLoaded := 0
	if h.recommendService != nil {
		productsLoaded = h.recommendService.CatalogSize()
	}

	status := "healthy"
	code := http.StatusOK
	if productsLoaded == 0 {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":          status,
		"products_loaded": productsLoaded,
	})
}

// Recommend handles product recommendation requests
func (h *Handler) Recommend(c *gin.Context) {
	if h.recommendService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recommendation service not available"})
		return
	}

	var req domain.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: query is required"})
		return
	}

	results, err := h.recommendService.Recommend(c.Request.Context(), req.Query, req.NumRecommendations)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogEmpty) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "products data not loaded"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "recommendation failed"})
		return
	}

	message := ""
	if len(results) == 0 {
		message = "No matches found for your query"
		results = []domain.Recommendation{}
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"message": message,
	})
}

// Analytics returns aggregate catalog statistics for the dashboard
func (h *Handler) Analytics(c *gin.Context) {
	if h.analyticsService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analytics service not available"})
		return
	}

	snapshot, err := h.analyticsService.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "products data not loaded"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// Product returns a single product by ID
func (h *Handler) Product(c *gin.Context) {
	if h.recommendService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recommendation service not available"})
		return
	}

	product, err := h.recommendService.Product(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "product lookup failed"})
		return
	}

	c.JSON(http.StatusOK, product)
}
