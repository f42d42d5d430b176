package app

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/openai/openai-go/v3"

	"transcript-agents/internal/cache"
	"transcript-agents/internal/config"
	"transcript-agents/internal/embeddings"
	"transcript-agents/internal/llm"
	"transcript-agents/internal/logger"
	"transcript-agents/internal/queue"
	"transcript-agents/internal/store"
)

// Deps bundles runtime dependencies for the gateway service.
type Deps struct {
	Config config.Config
	Log    *slog.Logger
	Store  store.Store
	Queue  queue.Queue
}

// WorkerDeps bundles runtime dependencies for the segmenter and analysis
// workers.
type WorkerDeps struct {
	Config   config.Config
	Log      *slog.Logger
	Store    store.Store
	Queue    queue.Queue
	LLM      llm.Client
	Embedder embeddings.Embedder
}

// QueryDeps bundles runtime dependencies for the query service.
type QueryDeps struct {
	Config   config.Config
	Log      *slog.Logger
	Store    store.Store
	LLM      llm.Client
	Embedder embeddings.Embedder
	Cache    cache.Cache
}

func load() (config.Config, *slog.Logger) {
	// Missing .env is fine in containers where env comes from the runtime.
	_ = godotenv.Load()
	cfg := config.Load()
	return cfg, logger.New(cfg.LogLevel)
}

// Build loads env, config, and the gateway's shared components.
func Build() (Deps, error) {
	cfg, log := load()

	st, err := buildStore(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize store: %w", err)
	}
	q, err := buildQueue(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize queue: %w", err)
	}
	return Deps{Config: cfg, Log: log, Store: st, Queue: q}, nil
}

// BuildWorker wires the dependencies shared by the segmenter and analysis
// workers.
func BuildWorker() (WorkerDeps, error) {
	cfg, log := load()

	st, err := buildStore(cfg, log)
	if err != nil {
		return WorkerDeps{}, fmt.Errorf("failed to initialize store: %w", err)
	}
	q, err := buildQueue(cfg, log)
	if err != nil {
		return WorkerDeps{}, fmt.Errorf("failed to initialize queue: %w", err)
	}
	llmClient, err := buildLLM(cfg, log)
	if err != nil {
		return WorkerDeps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	embedder, err := buildEmbedder(cfg, log)
	if err != nil {
		return WorkerDeps{}, fmt.Errorf("failed to initialize embedder: %w", err)
	}
	return WorkerDeps{
		Config:   cfg,
		Log:      log,
		Store:    st,
		Queue:    q,
		LLM:      llmClient,
		Embedder: embedder,
	}, nil
}

// BuildQuery wires the query service's dependencies.
func BuildQuery() (QueryDeps, error) {
	cfg, log := load()

	st, err := buildStore(cfg, log)
	if err != nil {
		return QueryDeps{}, fmt.Errorf("failed to initialize store: %w", err)
	}
	llmClient, err := buildLLM(cfg, log)
	if err != nil {
		return QueryDeps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	embedder, err := buildEmbedder(cfg, log)
	if err != nil {
		return QueryDeps{}, fmt.Errorf("failed to initialize embedder: %w", err)
	}
	c, err := buildCache(cfg, log)
	if err != nil {
		return QueryDeps{}, fmt.Errorf("failed to initialize cache: %w", err)
	}
	return QueryDeps{
		Config:   cfg,
		Log:      log,
		Store:    st,
		LLM:      llmClient,
		Embedder: embedder,
		Cache:    c,
	}, nil
}

func buildStore(cfg config.Config, log *slog.Logger) (store.Store, error) {
	switch cfg.StoreProvider {
	case "postgres":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("DB_URL is required when STORE_PROVIDER=postgres")
		}
		db, err := store.NewPostgres(cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		log.Info("using Postgres store")
		return db, nil
	default:
		return nil, fmt.Errorf("invalid STORE_PROVIDER: %s (valid option: postgres)", cfg.StoreProvider)
	}
}

func buildQueue(cfg config.Config, log *slog.Logger) (queue.Queue, error) {
	switch cfg.QueueProvider {
	case "nats":
		if cfg.QueueURL == "" {
			return nil, fmt.Errorf("QUEUE_URL is required when QUEUE_PROVIDER=nats")
		}
		nc, err := nats.Connect(cfg.QueueURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		log.Info("using NATS queue")
		return queue.NewNATS(log, nc), nil
	default:
		return nil, fmt.Errorf("invalid QUEUE_PROVIDER: %s (valid option: nats)", cfg.QueueProvider)
	}
}

func buildLLM(cfg config.Config, log *slog.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
		client, err := llm.NewOpenAIClient(cfg.OpenAIKey, cfg.LLMBaseURL, openai.ChatModel(cfg.LLMModel))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		log.Info("using OpenAI-compatible LLM client", "model", cfg.LLMModel, "base_url", cfg.LLMBaseURL)
		return client, nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid option: openai)", cfg.LLMProvider)
	}
}

func buildEmbedder(cfg config.Config, log *slog.Logger) (embeddings.Embedder, error) {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
		embedder, err := embeddings.NewOpenAIEmbedder(cfg.OpenAIKey, cfg.LLMBaseURL, openai.EmbeddingModel(cfg.EmbeddingModel))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI embedder: %w", err)
		}
		log.Info("using OpenAI embedder", "model", cfg.EmbeddingModel)
		return embedder, nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid option: openai)", cfg.LLMProvider)
	}
}

func buildCache(cfg config.Config, log *slog.Logger) (cache.Cache, error) {
	switch cfg.CacheProvider {
	case "redis":
		c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("using Redis cache", "addr", cfg.RedisAddr)
		return c, nil
	case "noop":
		log.Info("query caching disabled")
		return cache.NewNoopCache(), nil
	default:
		return nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: redis, noop)", cfg.CacheProvider)
	}
}
