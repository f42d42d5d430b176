// Package segment turns a raw transcript into topic-labeled segments using
// a two-stage extraction: one call to propose topics, then one call per
// topic to pull the verbatim transcript text belonging to it.
package segment

import (
	"transcript-agents/internal/schema"
)

// TopicList is the first-stage response shape.
type TopicList struct {
	Sections []string `json:"sections"`
}

// Segment pairs a topic label with its extracted transcript content.
type Segment struct {
	Topic           string `json:"topic"`
	Content         string `json:"content"`
	StartTimeApprox string `json:"start_time_approx,omitempty"`
}

// Stats summarizes how much of the transcript the segments cover.
type Stats struct {
	TotalSegments     int     `json:"total_segments"`
	TranscriptWords   int     `json:"total_transcript_words"`
	SegmentWords      int     `json:"total_segment_words"`
	CoveragePercent   float64 `json:"coverage_percentage"`
	ProcessingSeconds float64 `json:"processing_time_seconds"`
}

// Result carries the segments plus bookkeeping about how they were made.
type Result struct {
	Segments []Segment `json:"segments"`
	Stats    Stats     `json:"stats"`
	Fallback bool      `json:"fallback"`
}

// TopicListSchema is the declared shape for the first-stage call.
func TopicListSchema() schema.Schema {
	return schema.Object(map[string]schema.Schema{
		"sections": schema.Array(schema.String("short topic label"), "ordered list of topic labels"),
	})
}

// SegmentSchema is the declared shape for the second-stage call.
func SegmentSchema() schema.Schema {
	return schema.Object(map[string]schema.Schema{
		"topic":   schema.String("the section label being extracted"),
		"content": schema.String("verbatim transcript text for the section"),
	})
}
