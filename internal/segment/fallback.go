package segment

import (
	"strconv"
	"strings"
)

const minFallbackParagraphWords = 10

// FallbackSegments splits a transcript by paragraphs when the model-driven
// path failed. Very short paragraphs are skipped; if nothing usable
// remains, the whole transcript becomes a single segment.
func FallbackSegments(transcript string) []Segment {
	var segments []Segment
	for i, para := range strings.Split(transcript, "\n\n") {
		para = strings.TrimSpace(para)
		if len(strings.Fields(para)) < minFallbackParagraphWords {
			continue
		}
		segments = append(segments, Segment{
			Topic:   "Section " + strconv.Itoa(i+1),
			Content: para,
		})
	}
	if len(segments) == 0 {
		segments = []Segment{{Topic: "Full Transcript", Content: transcript}}
	}
	return segments
}
