package tokens

import (
	"strings"
	"testing"
)

func TestEstimate(t *testing.T) {
	if got := Estimate(""); got != 0 {
		t.Errorf("expected 0 tokens for empty text, got %d", got)
	}
	// 10 words at 1.3 tokens per word
	if got := Estimate("one two three four five six seven eight nine ten"); got != 13 {
		t.Errorf("expected 13 tokens for 10 words, got %d", got)
	}
}

func TestOptimalContextSizeClampLow(t *testing.T) {
	if got := OptimalContextSize("short text"); got != MinContextSize {
		t.Errorf("expected minimum context size %d for tiny text, got %d", MinContextSize, got)
	}
	if got := OptimalContextSize(""); got != MinContextSize {
		t.Errorf("expected minimum context size %d for empty text, got %d", MinContextSize, got)
	}
}

func TestOptimalContextSizeClampHigh(t *testing.T) {
	huge := strings.Repeat("word ", 100000)
	if got := OptimalContextSize(huge); got != MaxContextSize {
		t.Errorf("expected maximum context size %d for huge text, got %d", MaxContextSize, got)
	}
}

func TestOptimalContextSizeMidRange(t *testing.T) {
	// 4000 words -> 5200 tokens -> 10400 doubled, within bounds
	text := strings.TrimSpace(strings.Repeat("word ", 4000))
	got := OptimalContextSize(text)
	if got <= MinContextSize || got >= MaxContextSize {
		t.Fatalf("expected mid-range context size, got %d", got)
	}
	if got != Estimate(text)*2 {
		t.Errorf("expected twice the estimate (%d), got %d", Estimate(text)*2, got)
	}
}

func TestSplitTextPacksParagraphs(t *testing.T) {
	text := "one two three\n\nfour five six\n\nseven eight nine"
	chunks := SplitText(text, 8)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %q", len(chunks), chunks)
	}
	if chunks[0] != "one two three\n\nfour five six" {
		t.Errorf("unexpected first chunk: %q", chunks[0])
	}
}

func TestSplitTextEmpty(t *testing.T) {
	if chunks := SplitText("", 100); chunks != nil {
		t.Errorf("expected nil for empty text, got %q", chunks)
	}
	if chunks := SplitText("   \n\n  ", 100); chunks != nil {
		t.Errorf("expected nil for blank text, got %q", chunks)
	}
}

func TestSplitTextOversizedParagraph(t *testing.T) {
	para := strings.TrimSpace(strings.Repeat("word ", 50))
	chunks := SplitText(para, 10)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for a single oversized paragraph, got %d", len(chunks))
	}
	if chunks[0] != para {
		t.Error("oversized paragraph should be emitted as-is")
	}
}

func TestSplitTextContentPreserved(t *testing.T) {
	text := "alpha beta\n\ngamma delta\n\nepsilon zeta\n\neta theta"
	chunks := SplitText(text, 3)
	joined := strings.Join(chunks, "\n\n")
	if joined != text {
		t.Errorf("splitting lost content:\nwant %q\ngot  %q", text, joined)
	}
}
