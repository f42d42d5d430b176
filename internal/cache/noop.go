package cache

import (
	"context"
	"time"
)

// NoopCache is a cache that does nothing, used when caching is disabled.
type NoopCache struct{}

func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (c *NoopCache) GetAnswer(ctx context.Context, key string) (*Answer, error) {
	return nil, nil // Always miss
}

func (c *NoopCache) SetAnswer(ctx context.Context, key string, answer *Answer, ttl time.Duration) error {
	return nil
}

func (c *NoopCache) InvalidateTranscript(ctx context.Context, transcriptID string) error {
	return nil
}

func (c *NoopCache) Close() error {
	return nil
}
