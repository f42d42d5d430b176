package segment

import (
	"regexp"
	"strings"
)

// OverlapThreshold is the minimum word-overlap ratio an extracted segment
// must have against the source transcript to count as verbatim.
const OverlapThreshold = 0.7

var wordPattern = regexp.MustCompile(`\w+`)

func wordSet(text string) map[string]struct{} {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// ValidateContent reports whether content plausibly comes from transcript:
// the ratio of content words that also appear in the transcript must exceed
// OverlapThreshold. Empty content never validates.
func ValidateContent(content, transcript string) bool {
	contentWords := wordSet(content)
	if len(contentWords) == 0 {
		return false
	}
	transcriptWords := wordSet(transcript)
	matched := 0
	for w := range contentWords {
		if _, ok := transcriptWords[w]; ok {
			matched++
		}
	}
	return float64(matched)/float64(len(contentWords)) > OverlapThreshold
}
