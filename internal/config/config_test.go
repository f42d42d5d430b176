package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	originalEnv := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range originalEnv {
			for i, c := range env {
				if c == '=' {
					os.Setenv(env[:i], env[i+1:])
					break
				}
			}
		}
	}()

	os.Clearenv()

	cfg := Load()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Port", cfg.Port, 8080},
		{"HealthPort", cfg.HealthPort, 8090},
		{"LogLevel", cfg.LogLevel, "info"},
		{"StoreProvider", cfg.StoreProvider, "postgres"},
		{"QueueProvider", cfg.QueueProvider, "nats"},
		{"CacheProvider", cfg.CacheProvider, "redis"},
		{"LLMProvider", cfg.LLMProvider, "openai"},
		{"LLMModel", cfg.LLMModel, "gpt-4o-mini"},
		{"EmbeddingModel", cfg.EmbeddingModel, "text-embedding-3-small"},
		{"MaxTopics", cfg.MaxTopics, 7},
		{"ContextSize", cfg.ContextSize, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s=%v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	originalPort := os.Getenv("PORT")
	originalTopics := os.Getenv("MAX_TOPICS")
	defer func() {
		os.Setenv("PORT", originalPort)
		os.Setenv("MAX_TOPICS", originalTopics)
	}()

	os.Setenv("PORT", "9090")
	os.Setenv("MAX_TOPICS", "5")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.MaxTopics != 5 {
		t.Errorf("expected 5 max topics, got %d", cfg.MaxTopics)
	}
}

func TestLoadProviderOverrides(t *testing.T) {
	originalCache := os.Getenv("CACHE_PROVIDER")
	defer os.Setenv("CACHE_PROVIDER", originalCache)

	os.Setenv("CACHE_PROVIDER", "noop")

	cfg := Load()

	if cfg.CacheProvider != "noop" {
		t.Errorf("expected cache provider 'noop', got %s", cfg.CacheProvider)
	}
}
