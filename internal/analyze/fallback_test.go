package analyze

import (
	"reflect"
	"testing"

	"transcript-agents/internal/report"
	"transcript-agents/internal/segment"
)

func TestFilterKeywords(t *testing.T) {
	got := filterKeywords([]string{"Go", "the", "cloud", "cloud", "DevOps", "AND"})
	want := []string{"cloud", "DevOps"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestKeywordsFromTopics(t *testing.T) {
	in := Input{
		VideoTitle: "Scaling Postgres Databases",
		Segments: []segment.Segment{
			{Topic: "Introduction"},
			{Topic: "Section 3"},
			{Topic: "Connection pooling strategies"},
		},
	}
	got := keywordsFromTopics(in)
	want := []string{"Connection", "Databases", "Postgres", "Scaling", "pooling", "strategies"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestProcessesFromSegmentsTopicIndicator(t *testing.T) {
	segments := []segment.Segment{
		{Topic: "Deployment workflow", Content: "First we build the image then we push it."},
		{Topic: "Closing remarks", Content: "Thanks for watching this video everyone."},
	}
	processes := processesFromSegments(segments, businessIndicators)
	if len(processes) != 1 {
		t.Fatalf("expected 1 process, got %d", len(processes))
	}
	if processes[0].Name != "Deployment workflow" {
		t.Errorf("unexpected process name: %q", processes[0].Name)
	}
	if processes[0].Inference != report.InferenceInferred {
		t.Error("heuristic processes should be marked inferred")
	}
}

func TestProcessesFromSegmentsContentIndicator(t *testing.T) {
	segments := []segment.Segment{
		{Topic: "Middle part", Content: "The installation requires three commands. Then you restart."},
	}
	processes := processesFromSegments(segments, technicalIndicators)
	if len(processes) != 1 {
		t.Fatalf("expected 1 process, got %d", len(processes))
	}
	if processes[0].Name != "The installation requires three commands" {
		t.Errorf("unexpected process name: %q", processes[0].Name)
	}
}

func TestTechnologiesFromLexicon(t *testing.T) {
	transcript := "We moved the API from Django to Go and store sessions in Redis now."
	techs := technologiesFromLexicon(transcript)

	byName := make(map[string]report.Technology)
	for _, tech := range techs {
		byName[tech.Name] = tech
	}
	if len(techs) != 3 {
		t.Fatalf("expected 3 technologies, got %d: %v", len(techs), byName)
	}
	if byName["Redis"].Category != "database" {
		t.Errorf("unexpected category for Redis: %q", byName["Redis"].Category)
	}
	if byName["Go"].Inference != report.InferenceDirect {
		t.Error("lexicon matches are direct mentions")
	}
}

func TestContainsWordBoundaries(t *testing.T) {
	if containsWord("using Golang daily", "Go") {
		t.Error("'Go' should not match inside 'Golang'")
	}
	if !containsWord("written in Go, deployed weekly", "Go") {
		t.Error("'Go' should match as a standalone word")
	}
	if !containsWord("we prefer go for services", "Go") {
		t.Error("matching should ignore case")
	}
}
