package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration. It is loaded
// once at startup and never mutated afterwards; components receive it (or
// the slice of it they need) via constructor injection.
type Config struct {
	Environment string
	Server      ServerConfig
	Weaviate    WeaviateConfig
	OpenAI      OpenAIConfig
	Retrieval   RetrievalConfig
	Generation  GenerationConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

// WeaviateConfig holds vector store connection configuration.
// ConnectTimeout and ReadTimeout are the fixed timeout policy applied to
// every nearest-neighbor query.
type WeaviateConfig struct {
	URL            string
	Collection     string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
}

// OpenAIConfig holds OpenAI provider configuration.
// APIKey has no default and is deliberately not validated at startup; a
// missing credential surfaces as an authentication failure from the first
// upstream call that needs it.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// RetrievalConfig holds retrieval-side settings. EmbedModel must match the
// model the index was built with; there is no way to verify this, and a
// mismatch degrades retrieval quality silently.
type RetrievalConfig struct {
	EmbedModel  string
	DefaultTopK int
}

// GenerationConfig holds answer-generation settings, including the retry
// policy applied to completion calls.
type GenerationConfig struct {
	Model            string
	Temperature      float32
	MaxAttempts      int
	RetryInitialWait time.Duration
	RetryMaxWait     time.Duration
}

// New creates a new Config instance by loading environment variables
func New() (*Config, error) {
	// Load .env file if present
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getPort(),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Weaviate: WeaviateConfig{
			URL:            getEnv("WEAVIATE_URL", "http://localhost:8080"),
			Collection:     getEnv("WEAVIATE_COLLECTION", "DocChunk"),
			ConnectTimeout: getEnvAsDuration("WEAVIATE_CONNECT_TIMEOUT", 10*time.Second),
			ReadTimeout:    getEnvAsDuration("WEAVIATE_READ_TIMEOUT", 60*time.Second),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Timeout: getEnvAsDuration("OPENAI_TIMEOUT", 60*time.Second),
		},
		Retrieval: RetrievalConfig{
			EmbedModel:  getEnv("EMBED_MODEL", "text-embedding-3-small"),
			DefaultTopK: getEnvAsInt("TOP_K", 5),
		},
		Generation: GenerationConfig{
			Model:            getEnv("GEN_MODEL", "gpt-4o-mini"),
			Temperature:      getEnvAsFloat32("GEN_TEMPERATURE", 0.2),
			MaxAttempts:      getEnvAsInt("GEN_MAX_ATTEMPTS", 3),
			RetryInitialWait: getEnvAsDuration("GEN_RETRY_INITIAL_WAIT", 1*time.Second),
			RetryMaxWait:     getEnvAsDuration("GEN_RETRY_MAX_WAIT", 8*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the structural settings. The OpenAI credential is not
// checked here on purpose.
func (c *Config) Validate() error {
	if c.Weaviate.URL == "" {
		return fmt.Errorf("vector store URL is required")
	}
	if c.Weaviate.Collection == "" {
		return fmt.Errorf("vector store collection is required")
	}
	if c.Retrieval.DefaultTopK <= 0 {
		return fmt.Errorf("default top_k must be positive, got %d", c.Retrieval.DefaultTopK)
	}
	if c.Generation.MaxAttempts <= 0 {
		return fmt.Errorf("generation max attempts must be positive, got %d", c.Generation.MaxAttempts)
	}
	return nil
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

// getPort returns the server port from PORT or SERVER_PORT env vars (default: 8000)
func getPort() int {
	if value := os.Getenv("PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	if value := os.Getenv("SERVER_PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	return 8000
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 32)
	if err != nil {
		return defaultValue
	}
	return float32(value)
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
