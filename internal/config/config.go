package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Config holds minimal runtime configuration. Extend as needed.
type Config struct {
	// Server
	Port       int    `env:"PORT" envDefault:"8080"`
	HealthPort int    `env:"HEALTH_PORT" envDefault:"8090"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	// Upload limits
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB in bytes

	// Store
	StoreProvider string `env:"STORE_PROVIDER" envDefault:"postgres"` // "postgres" (production database)
	DBURL         string `env:"DB_URL"`

	// Queue
	QueueProvider string `env:"QUEUE_PROVIDER" envDefault:"nats"` // "nats" (required for inter-service communication)
	QueueURL      string `env:"QUEUE_URL"`

	// Cache
	CacheProvider string `env:"CACHE_PROVIDER" envDefault:"redis"` // "redis" or "noop"
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// LLM & Embeddings
	LLMProvider    string  `env:"LLM_PROVIDER" envDefault:"openai"` // "openai" (any OpenAI-compatible endpoint, including Ollama)
	OpenAIKey      string  `env:"OPENAI_API_KEY"`
	LLMBaseURL     string  `env:"LLM_BASE_URL"` // empty means api.openai.com
	LLMModel       string  `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	EmbeddingModel string  `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	Temperature    float64 `env:"LLM_TEMPERATURE" envDefault:"0.1"`

	// Segmentation
	MaxTopics   int `env:"MAX_TOPICS" envDefault:"7"`
	ContextSize int `env:"CONTEXT_SIZE" envDefault:"0"` // 0 means sized per transcript

	// Reports
	ReportDir string `env:"REPORT_DIR"` // empty disables file export

	// Gateway
	QueryServiceURL string `env:"QUERY_SERVICE_URL" envDefault:"http://query:8081/api/query"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
