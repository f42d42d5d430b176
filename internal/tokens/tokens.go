package tokens

import (
	"strings"
)

const (
	// MinContextSize and MaxContextSize bound the context window
	// requested from the inference backend.
	MinContextSize = 4096
	MaxContextSize = 32768

	tokensPerWord = 1.3
)

// Estimate approximates the token count of text.
// Tokens are approximated by whitespace-delimited words to avoid heavy dependencies.
func Estimate(text string) int {
	return int(float64(len(strings.Fields(text))) * tokensPerWord)
}

// OptimalContextSize picks a context window for text, clamped to
// [MinContextSize, MaxContextSize]. The window is sized at twice the
// token estimate so the prompt and response both fit.
func OptimalContextSize(text string) int {
	size := Estimate(text) * 2
	if size < MinContextSize {
		return MinContextSize
	}
	if size > MaxContextSize {
		return MaxContextSize
	}
	return size
}

// SplitText packs paragraphs into chunks of at most maxTokens each.
// A single paragraph larger than the budget becomes its own chunk.
func SplitText(text string, maxTokens int) []string {
	if maxTokens <= 0 {
		maxTokens = MaxContextSize
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	paragraphs := strings.Split(text, "\n\n")
	var chunks []string
	var current []string
	currentSize := 0

	for _, para := range paragraphs {
		paraSize := Estimate(para)
		if currentSize+paraSize > maxTokens {
			if len(current) > 0 {
				chunks = append(chunks, strings.Join(current, "\n\n"))
				current = []string{para}
				currentSize = paraSize
			} else {
				// Oversized paragraph, emit as-is.
				chunks = append(chunks, para)
				current = nil
				currentSize = 0
			}
		} else {
			current = append(current, para)
			currentSize += paraSize
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n\n"))
	}
	return chunks
}
