package cache

import (
	"context"
	"time"
)

// Cache provides query result caching
type Cache interface {
	// GetAnswer retrieves a cached answer by key.
	// Returns nil if not found
	GetAnswer(ctx context.Context, key string) (*Answer, error)

	// SetAnswer stores an answer with TTL
	SetAnswer(ctx context.Context, key string, answer *Answer, ttl time.Duration) error

	// InvalidateTranscript removes all cached queries for a transcript
	InvalidateTranscript(ctx context.Context, transcriptID string) error

	// Close closes the cache connection
	Close() error
}

// Answer represents a cached query response
type Answer struct {
	Answer     string   `json:"answer"`
	Confidence float32  `json:"confidence"`
	Sources    []Source `json:"sources"`
}

// Source represents a transcript segment source in query results
type Source struct {
	SegmentID string  `json:"segment_id"`
	Topic     string  `json:"topic"`
	Score     float32 `json:"score"`
	Preview   string  `json:"preview"` // Truncated content preview
}
