package segment

import (
	"regexp"
	"sort"
	"strings"
)

const (
	// Two segments overlap when they share more than this fraction of the
	// smaller segment's word set.
	overlapFraction = 0.4

	// Sentences carrying at least this many shared words are dropped from
	// the losing segment.
	sharedWordsPerSentence = 3
)

var sentencePattern = regexp.MustCompile(`(?s)[^.!?]+[.!?]?`)

// ResolveOverlaps removes duplicated content between segments. When two
// segments share a large part of their word sets, the shared sentences stay
// in the segment whose topic label is more related to the shared words.
func ResolveOverlaps(segments []Segment) []Segment {
	sort.SliceStable(segments, func(i, j int) bool {
		return len(segments[i].Content) > len(segments[j].Content)
	})

	for i := range segments {
		for j := i + 1; j < len(segments); j++ {
			wordsI := wordSet(segments[i].Content)
			wordsJ := wordSet(segments[j].Content)
			shared := intersect(wordsI, wordsJ)

			smaller := len(wordsI)
			if len(wordsJ) < smaller {
				smaller = len(wordsJ)
			}
			if float64(len(shared)) <= overlapFraction*float64(smaller) {
				continue
			}
			if moreRelevantTo(shared, segments[i].Topic, segments[j].Topic) {
				segments[j].Content = removeSharedSentences(segments[j].Content, shared)
			} else {
				segments[i].Content = removeSharedSentences(segments[i].Content, shared)
			}
		}
	}
	return segments
}

func intersect(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for w := range a {
		if _, ok := b[w]; ok {
			out[w] = struct{}{}
		}
	}
	return out
}

// moreRelevantTo decides which topic label the shared words belong with,
// by word overlap against the labels themselves. Ties go to the first.
func moreRelevantTo(shared map[string]struct{}, topic1, topic2 string) bool {
	return len(intersect(shared, wordSet(topic1))) >= len(intersect(shared, wordSet(topic2)))
}

func removeSharedSentences(content string, shared map[string]struct{}) string {
	sentences := sentencePattern.FindAllString(content, -1)
	var kept []string
	for _, sentence := range sentences {
		count := 0
		for w := range wordSet(sentence) {
			if _, ok := shared[w]; ok {
				count++
			}
		}
		if count < sharedWordsPerSentence {
			kept = append(kept, strings.TrimSpace(sentence))
		}
	}
	return strings.Join(kept, " ")
}
