package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseInferenceType(t *testing.T) {
	tests := []struct {
		in   string
		want InferenceType
	}{
		{"direct", InferenceDirect},
		{"DIRECT", InferenceDirect},
		{"inferred", InferenceInferred},
		{"something else", InferenceInferred},
		{"", InferenceInferred},
	}
	for _, tt := range tests {
		if got := ParseInferenceType(tt.in); got != tt.want {
			t.Errorf("ParseInferenceType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToProcessOrdering(t *testing.T) {
	ext := ProcessExtraction{
		Name:          "Release",
		InferenceType: "Direct",
		Steps: []ProcessStep{
			{Description: "Tag the commit", Order: 1},
			{Description: "Build artifacts", Order: 2},
		},
	}
	proc := ext.ToProcess()
	if proc.Inference != InferenceDirect {
		t.Errorf("unexpected inference: %q", proc.Inference)
	}
	if len(proc.Steps) != 2 || proc.Steps[0] != "Tag the commit" {
		t.Errorf("unexpected steps: %v", proc.Steps)
	}
}

func TestExportWritesAllFiles(t *testing.T) {
	rep := Report{
		VideoTitle: "Test Video",
		VideoID:    "abc123def45",
		Keywords:   []string{"kubernetes", "autoscaling"},
		Technologies: []Technology{
			{Name: "Kubernetes", Category: "cloud service", Description: "Container orchestration", Inference: InferenceDirect},
		},
		Summary:     "A short summary.",
		GeneratedAt: time.Now().UTC(),
	}

	dir, err := Export(rep, t.TempDir())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "report.json"))
	if err != nil {
		t.Fatalf("report.json missing: %v", err)
	}
	var loaded Report
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("report.json is not valid JSON: %v", err)
	}
	if loaded.VideoTitle != rep.VideoTitle || len(loaded.Keywords) != 2 {
		t.Error("report.json round-trip lost data")
	}

	f, err := os.Open(filepath.Join(dir, "keywords.csv"))
	if err != nil {
		t.Fatalf("keywords.csv missing: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("keywords.csv unreadable: %v", err)
	}
	if len(rows) != 3 || rows[0][0] != "Keyword" || rows[1][0] != "kubernetes" {
		t.Errorf("unexpected keywords.csv rows: %v", rows)
	}

	tf, err := os.Open(filepath.Join(dir, "technologies.csv"))
	if err != nil {
		t.Fatalf("technologies.csv missing: %v", err)
	}
	defer tf.Close()
	techRows, err := csv.NewReader(tf).ReadAll()
	if err != nil {
		t.Fatalf("technologies.csv unreadable: %v", err)
	}
	if len(techRows) != 2 || techRows[1][0] != "Kubernetes" || techRows[1][3] != "direct" {
		t.Errorf("unexpected technologies.csv rows: %v", techRows)
	}
}
