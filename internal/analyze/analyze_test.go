package analyze

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"transcript-agents/internal/llm"
	"transcript-agents/internal/report"
	"transcript-agents/internal/segment"
)

func testAnalyzer(client llm.Client) *Analyzer {
	return New(client, slog.New(slog.NewTextHandler(io.Discard, nil)), 0.1)
}

func matchSchema(name string) any {
	return mock.MatchedBy(func(req llm.Request) bool {
		return req.SchemaName == name
	})
}

func TestKeywordsFiltersModelOutput(t *testing.T) {
	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, matchSchema("extract_marketing_keywords")).
		Return(`{"keywords": ["cloud migration", "the", "ai", "DevOps"]}`, nil).Once()

	got := testAnalyzer(client).Keywords(context.Background(), Input{VideoTitle: "t"})
	want := []string{"cloud migration", "DevOps"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestKeywordsFallsBackToTopics(t *testing.T) {
	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, mock.Anything).
		Return("", errors.New("backend down"))

	in := Input{
		VideoTitle: "Kafka Streaming Basics",
		Segments:   []segment.Segment{{Topic: "Consumer groups explained"}},
	}
	got := testAnalyzer(client).Keywords(context.Background(), in)
	if len(got) == 0 {
		t.Fatal("expected topic-derived keywords on failure")
	}
	joined := strings.Join(got, " ")
	if !strings.Contains(joined, "Kafka") {
		t.Errorf("expected title words among keywords, got %v", got)
	}
}

func TestBusinessProcessesDropsThin(t *testing.T) {
	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, matchSchema("extract_business_processes")).
		Return(`{"processes": [
			{"name": "Onboarding", "description": "New hire flow", "inference_type": "direct",
			 "steps": [{"description": "Create accounts", "order": 1}, {"description": "Assign buddy", "order": 2}],
			 "transcript_references": ["we onboard"]},
			{"name": "Thin", "description": "One step only", "inference_type": "direct",
			 "steps": [{"description": "Do it", "order": 1}], "transcript_references": []}
		]}`, nil).Once()

	got := testAnalyzer(client).BusinessProcesses(context.Background(), Input{})
	if len(got) != 1 {
		t.Fatalf("expected 1 process after filtering, got %d", len(got))
	}
	if got[0].Name != "Onboarding" {
		t.Errorf("unexpected process: %q", got[0].Name)
	}
	if len(got[0].Steps) != 2 {
		t.Errorf("expected ordered step descriptions, got %v", got[0].Steps)
	}
}

func TestTechnologiesDropsSparse(t *testing.T) {
	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, matchSchema("extract_technologies")).
		Return(`{"technologies": [
			{"name": "PostgreSQL", "category": "database", "description": "Relational database used for storage", "inference_type": "direct", "transcript_references": []},
			{"name": "X", "category": "tool", "description": "A fine long enough description", "inference_type": "direct", "transcript_references": []},
			{"name": "Redis", "category": "cache", "description": "too short", "inference_type": "direct", "transcript_references": []}
		]}`, nil).Once()

	got := testAnalyzer(client).Technologies(context.Background(), Input{})
	if len(got) != 1 {
		t.Fatalf("expected 1 technology after filtering, got %d", len(got))
	}
	if got[0].Name != "PostgreSQL" {
		t.Errorf("unexpected technology: %q", got[0].Name)
	}
}

func TestTechnologiesFallsBackToLexicon(t *testing.T) {
	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, mock.Anything).
		Return("", errors.New("backend down"))

	got := testAnalyzer(client).Technologies(context.Background(), Input{
		Transcript: "We run everything on Kubernetes with Docker images.",
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 lexicon matches, got %d", len(got))
	}
}

func TestSummarizeTemplatedFallback(t *testing.T) {
	client := new(llm.MockClient)
	client.On("Complete", mock.Anything, mock.Anything).
		Return("", errors.New("backend down"))

	in := Input{VideoTitle: "Quarterly Review"}
	got := testAnalyzer(client).Summarize(context.Background(), in, report.Report{})
	if !strings.Contains(got, "Quarterly Review") {
		t.Errorf("templated summary should mention the title, got %q", got)
	}
}

func TestRunAssemblesReport(t *testing.T) {
	client := new(llm.MockClient)
	// Every stage fails; the report is still fully assembled from fallbacks.
	client.On("Complete", mock.Anything, mock.Anything).
		Return("", errors.New("backend down"))

	in := Input{
		VideoTitle: "Terraform in Production",
		VideoID:    "abc123def45",
		Transcript: "We manage AWS with Terraform and deploy through a pipeline.",
		Segments:   []segment.Segment{{Topic: "Deployment process", Content: "We manage AWS with Terraform"}},
	}
	rep := testAnalyzer(client).Run(context.Background(), in)

	if rep.VideoTitle != in.VideoTitle || rep.VideoID != in.VideoID {
		t.Error("report should carry video metadata")
	}
	if len(rep.Keywords) == 0 {
		t.Error("expected fallback keywords")
	}
	if rep.Summary == "" {
		t.Error("expected a summary even when every stage fails")
	}
	if rep.GeneratedAt.IsZero() {
		t.Error("expected a generation timestamp")
	}
}
