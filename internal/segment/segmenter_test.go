package segment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	"transcript-agents/internal/llm"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func matchSchema(name string) any {
	return mock.MatchedBy(func(req llm.Request) bool {
		return req.SchemaName == name
	})
}

func TestSegmentTwoStage(t *testing.T) {
	transcript := "Welcome to the show. Today we cover cloud costs in detail.\n\n" +
		"Later we discuss hiring plans for the engineering team this year."

	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, matchSchema("identify_transcript_topics")).
		Return(`{"sections": ["Cloud costs", "Hiring plans"]}`, nil).Once()
	client.On("Complete", mock.Anything, matchSchema("extract_transcript_segment")).
		Return(`{"topic": "Cloud costs", "content": "Today we cover cloud costs in detail."}`, nil).Once()
	client.On("Complete", mock.Anything, matchSchema("extract_transcript_segment")).
		Return(`{"topic": "Hiring plans", "content": "we discuss hiring plans for the engineering team this year"}`, nil).Once()

	s := New(client, testLogger(), Options{MaxTopics: 2})
	result := s.Segment(context.Background(), transcript)

	if result.Fallback {
		t.Fatal("expected model-driven segmentation, got fallback")
	}
	if len(result.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(result.Segments))
	}
	if result.Stats.TotalSegments != 2 {
		t.Errorf("stats disagree with segments: %d", result.Stats.TotalSegments)
	}
	if result.Stats.CoveragePercent <= 0 {
		t.Error("expected positive coverage")
	}
	client.AssertExpectations(t)
}

func TestSegmentTopicProposalFailure(t *testing.T) {
	transcript := "short transcript"

	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, matchSchema("identify_transcript_topics")).
		Return("", errors.New("backend unavailable"))

	s := New(client, testLogger(), Options{})
	result := s.Segment(context.Background(), transcript)

	if !result.Fallback {
		t.Fatal("expected fallback result when topic proposal fails")
	}
	if len(result.Segments) != 1 {
		t.Fatalf("expected a single fallback segment, got %d", len(result.Segments))
	}
	if result.Segments[0].Topic != "Full Transcript" {
		t.Errorf("expected 'Full Transcript' topic, got %q", result.Segments[0].Topic)
	}
	if result.Segments[0].Content != transcript {
		t.Error("fallback segment should carry the whole transcript")
	}
}

func TestSegmentAllExtractionsRejected(t *testing.T) {
	transcript := "short transcript"

	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, matchSchema("identify_transcript_topics")).
		Return(`{"sections": ["Only topic"]}`, nil).Once()
	// Hallucinated content fails word-overlap validation on every attempt.
	client.On("Complete", mock.Anything, matchSchema("extract_transcript_segment")).
		Return(`{"topic": "Only topic", "content": "entirely invented unrelated material"}`, nil)

	s := New(client, testLogger(), Options{})
	result := s.Segment(context.Background(), transcript)

	if !result.Fallback {
		t.Fatal("expected fallback when every extraction is rejected")
	}
	if len(result.Segments) != 1 || result.Segments[0].Topic != "Full Transcript" {
		t.Fatalf("expected single whole-transcript segment, got %+v", result.Segments)
	}
}

func TestSegmentEmptyTopicList(t *testing.T) {
	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, matchSchema("identify_transcript_topics")).
		Return(`{"sections": []}`, nil)

	s := New(client, testLogger(), Options{})
	result := s.Segment(context.Background(), "some transcript text here")

	if !result.Fallback {
		t.Fatal("expected fallback when model returns no topics")
	}
}

func TestSegmentLongTranscriptChunks(t *testing.T) {
	// Two paragraphs, forced into the chunked path by a tiny fixed window.
	transcript := "alpha beta gamma delta epsilon zeta eta theta iota kappa.\n\n" +
		"lambda mu nu xi omicron pi rho sigma tau upsilon."

	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, matchSchema("identify_transcript_topics")).
		Return("", errors.New("backend unavailable"))

	s := New(client, testLogger(), Options{ContextSize: 12})
	result := s.Segment(context.Background(), transcript)

	// Each chunk degrades to fallback; topics get chunk prefixes.
	if len(result.Segments) != 2 {
		t.Fatalf("expected 2 chunk segments, got %d", len(result.Segments))
	}
	for i, seg := range result.Segments {
		if seg.Topic == "" {
			t.Errorf("segment %d has empty topic", i)
		}
	}
}
