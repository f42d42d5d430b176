package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"transcript-agents/internal/embeddings"
	"transcript-agents/internal/report"
)

type TranscriptStatus string

const (
	StatusProcessing TranscriptStatus = "processing"
	StatusReady      TranscriptStatus = "ready"
	StatusFailed     TranscriptStatus = "failed"
)

var ErrReportNotFound = errors.New("report not found")

// Transcript is one submitted transcript moving through the pipeline.
type Transcript struct {
	ID        uuid.UUID
	VideoID   string
	Title     string
	Status    TranscriptStatus
	CreatedAt time.Time
}

// Segment is a persisted topic segment.
type Segment struct {
	ID           uuid.UUID
	TranscriptID uuid.UUID
	Index        int
	Topic        string
	Content      string
	WordCount    int
}

// Embedding pairs a segment with its vector.
type Embedding struct {
	SegmentID uuid.UUID
	Vector    embeddings.Vector
	Model     string
}

// SearchResult is one segment from a similarity search.
type SearchResult struct {
	Segment Segment
	Score   float32
}

// Store defines persistence contract; an external DB implementation can replace this.
type Store interface {
	CreateTranscript(ctx context.Context, videoID, title string) (Transcript, error)
	GetTranscript(ctx context.Context, id uuid.UUID) (Transcript, error)
	UpdateTranscriptStatus(ctx context.Context, id uuid.UUID, status TranscriptStatus) error
	SaveSegments(ctx context.Context, transcriptID uuid.UUID, segments []Segment) ([]Segment, error)
	ListSegments(ctx context.Context, transcriptID uuid.UUID) ([]Segment, error)
	SaveReport(ctx context.Context, transcriptID uuid.UUID, rep report.Report) error
	GetReport(ctx context.Context, transcriptID uuid.UUID) (report.Report, error)
	SaveEmbedding(ctx context.Context, emb Embedding) error
	TopK(ctx context.Context, transcriptIDs []uuid.UUID, vector embeddings.Vector, k int) ([]SearchResult, error)
}
