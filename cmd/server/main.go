package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/furnishly/backend/config"
	httpDelivery "github.com/furnishly/backend/internal/delivery/http"
	"github.com/furnishly/backend/internal/domain"
	"github.com/furnishly/backend/internal/infrastructure/cache"
	"github.com/furnishly/backend/internal/infrastructure/catalog"
	"github.com/furnishly/backend/internal/infrastructure/genai"
	"github.com/furnishly/backend/internal/infrastructure/vectorindex"
	"github.com/furnishly/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Furnishly Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Load the product catalog; the service cannot run without it
	productCatalog, err := catalog.Load(cfg.Catalog.CSVPath)
	if err != nil {
		log.Fatalf("Failed to load product catalog: %v", err)
	}

	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// OpenAI integrations are optional: without an API key the service
	// falls back to keyword scoring and template descriptions
	var generator domain.DescriptionGenerator
	var embedder domain.QueryEmbedder
	if cfg.OpenAI.APIKey != "" {
		client := genai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.ChatModel, cfg.OpenAI.EmbeddingModel)
		if cfg.Server.Environment == "development" {
			client.SetDebug(true)
			log.Printf("OpenAI client debug mode enabled")
		}
		generator = client
		embedder = client
		log.Printf("OpenAI configured: %s (chat: %s, embeddings: %s)",
			cfg.OpenAI.BaseURL, cfg.OpenAI.ChatModel, cfg.OpenAI.EmbeddingModel)
	} else {
		log.Printf("WARNING: OpenAI API key not configured - descriptions and semantic scoring disabled")
	}

	// Semantic scoring additionally needs the precomputed embeddings file
	var vectors domain.VectorIndex
	if cfg.Matching.EnableSemantic && embedder != nil && cfg.Catalog.EmbeddingsPath != "" {
		index, err := vectorindex.Load(cfg.Catalog.EmbeddingsPath)
		if err != nil {
			log.Printf("WARNING: Failed to load embeddings index, semantic scoring disabled: %v", err)
		} else {
			vectors = index
			log.Printf("Embeddings index loaded: %d vectors (dim=%d)", index.Len(), index.Dimension())
		}
	}

	// Initialize usecase layer
	recommendService := usecase.NewRecommendService(
		productCatalog,
		embedder,
		vectors,
		generator,
		memoryCache,
		usecase.RecommendServiceConfig{
			DefaultResults:     cfg.Matching.DefaultResults,
			MaxResults:         cfg.Matching.MaxResults,
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
	)

	analyticsService := usecase.NewAnalyticsService(productCatalog, memoryCache, cfg.Cache.TTL)

	log.Printf("Matching: default=%d, max=%d, semantic=%v, debug=%v",
		cfg.Matching.DefaultResults,
		cfg.Matching.MaxResults,
		vectors != nil,
		cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(recommendService, analyticsService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
