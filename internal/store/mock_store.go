package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"transcript-agents/internal/embeddings"
	"transcript-agents/internal/report"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateTranscript(ctx context.Context, videoID, title string) (Transcript, error) {
	args := m.Called(ctx, videoID, title)
	return args.Get(0).(Transcript), args.Error(1)
}

func (m *MockStore) GetTranscript(ctx context.Context, id uuid.UUID) (Transcript, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Transcript), args.Error(1)
}

func (m *MockStore) UpdateTranscriptStatus(ctx context.Context, id uuid.UUID, status TranscriptStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockStore) SaveSegments(ctx context.Context, transcriptID uuid.UUID, segments []Segment) ([]Segment, error) {
	args := m.Called(ctx, transcriptID, segments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Segment), args.Error(1)
}

func (m *MockStore) ListSegments(ctx context.Context, transcriptID uuid.UUID) ([]Segment, error) {
	args := m.Called(ctx, transcriptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Segment), args.Error(1)
}

func (m *MockStore) SaveReport(ctx context.Context, transcriptID uuid.UUID, rep report.Report) error {
	args := m.Called(ctx, transcriptID, rep)
	return args.Error(0)
}

func (m *MockStore) GetReport(ctx context.Context, transcriptID uuid.UUID) (report.Report, error) {
	args := m.Called(ctx, transcriptID)
	return args.Get(0).(report.Report), args.Error(1)
}

func (m *MockStore) SaveEmbedding(ctx context.Context, emb Embedding) error {
	args := m.Called(ctx, emb)
	return args.Error(0)
}

func (m *MockStore) TopK(ctx context.Context, transcriptIDs []uuid.UUID, vector embeddings.Vector, k int) ([]SearchResult, error) {
	args := m.Called(ctx, transcriptIDs, vector, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SearchResult), args.Error(1)
}
