package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	OpenAI   OpenAIConfig
	Cache    CacheConfig
	Matching MatchingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds the catalog data file locations
type CatalogConfig struct {
	CSVPath        string `mapstructure:"csv_path"`
	EmbeddingsPath string `mapstructure:"embeddings_path"`
}

// OpenAIConfig holds OpenAI API configuration. An empty API key disables
// description enrichment and semantic scoring without failing startup.
type OpenAIConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	ChatModel      string `mapstructure:"chat_model"`
	EmbeddingModel string `mapstructure:"embedding_model"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// MatchingConfig holds recommendation matching configuration
type MatchingConfig struct {
	DefaultResults     int  `mapstructure:"default_results"`
	MaxResults         int  `mapstructure:"max_results"`
	EnableSemantic     bool `mapstructure:"enable_semantic"`
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/furnishly/")

	// Environment variable settings: FURNISHLY_SERVER_PORT overrides
	// server.port, and so on.
	v.SetEnvPrefix("FURNISHLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	// Catalog defaults
	v.SetDefault("catalog.csv_path", "data/products.csv")
	v.SetDefault("catalog.embeddings_path", "")

	// OpenAI defaults. The api_key default registers the key with viper so
	// the env override is picked up; empty means enrichment is disabled.
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.chat_model", "gpt-4o-mini")
	v.SetDefault("openai.embedding_model", "text-embedding-3-small")

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")

	// Matching defaults
	v.SetDefault("matching.default_results", 5)
	v.SetDefault("matching.max_results", 20)
	v.SetDefault("matching.enable_semantic", true)
	v.SetDefault("matching.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.CSVPath == "" {
		return fmt.Errorf("catalog CSV path is required (set FURNISHLY_CATALOG_CSV_PATH)")
	}

	if config.Matching.MaxResults <= 0 {
		return fmt.Errorf("matching max_results must be positive, got: %d", config.Matching.MaxResults)
	}

	if config.Matching.DefaultResults <= 0 || config.Matching.DefaultResults > config.Matching.MaxResults {
		return fmt.Errorf("matching default_results must be in 1..%d, got: %d",
			config.Matching.MaxResults, config.Matching.DefaultResults)
	}

	return nil
}
