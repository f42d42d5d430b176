package segment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"transcript-agents/internal/llm"
	"transcript-agents/internal/tokens"
)

const (
	defaultMaxTopics  = 7
	minChunkTopics    = 3
	structuredRetries = 2

	// A transcript whose token estimate exceeds this fraction of the
	// context window goes through the chunked path.
	contextFillLimit = 0.9
)

// Options tunes segmentation behavior.
type Options struct {
	MaxTopics   int
	Temperature float64
	ContextSize int // 0 sizes the window per transcript
}

// Segmenter runs two-stage topic segmentation against an LLM backend.
type Segmenter struct {
	llm  llm.Client
	log  *slog.Logger
	opts Options
}

func New(client llm.Client, log *slog.Logger, opts Options) *Segmenter {
	if opts.MaxTopics <= 0 {
		opts.MaxTopics = defaultMaxTopics
	}
	return &Segmenter{llm: client, log: log, opts: opts}
}

// Segment splits a transcript into topic-labeled segments. It never fails:
// schema-validation and backend errors are logged and degrade to the
// paragraph fallback, ultimately a single whole-transcript segment.
func (s *Segmenter) Segment(ctx context.Context, transcript string) Result {
	start := time.Now()

	segments, fallback := s.segment(ctx, transcript, s.opts.MaxTopics)

	return Result{
		Segments: segments,
		Fallback: fallback,
		Stats:    computeStats(transcript, segments, time.Since(start)),
	}
}

func (s *Segmenter) segment(ctx context.Context, transcript string, maxTopics int) ([]Segment, bool) {
	ctxSize := s.opts.ContextSize
	if ctxSize <= 0 {
		ctxSize = tokens.OptimalContextSize(transcript)
	}

	if float64(tokens.Estimate(transcript)) > contextFillLimit*float64(ctxSize) {
		s.log.Warn("transcript exceeds context window, splitting", "estimate", tokens.Estimate(transcript), "context_size", ctxSize)
		return s.segmentLong(ctx, transcript, ctxSize, maxTopics)
	}

	topics, err := s.proposeTopics(ctx, transcript, maxTopics)
	if err != nil {
		s.log.Error("topic proposal failed, using fallback segmentation", "err", err)
		return FallbackSegments(transcript), true
	}
	s.log.Info("identified topics", "count", len(topics), "topics", strings.Join(topics, ", "))

	var segments []Segment
	for _, topic := range topics {
		seg, err := s.extractTopic(ctx, transcript, topic)
		if err != nil {
			s.log.Warn("skipping topic", "topic", topic, "err", err)
			continue
		}
		segments = append(segments, seg)
		s.log.Info("extracted segment", "topic", topic, "words", len(strings.Fields(seg.Content)))
	}

	if len(segments) == 0 {
		s.log.Error("no valid segments extracted, using fallback segmentation")
		return FallbackSegments(transcript), true
	}
	return ResolveOverlaps(segments), false
}

// segmentLong handles transcripts that do not fit the context window by
// segmenting paragraph-packed chunks independently.
func (s *Segmenter) segmentLong(ctx context.Context, transcript string, ctxSize, maxTopics int) ([]Segment, bool) {
	chunks := tokens.SplitText(transcript, int(0.8*float64(ctxSize)))
	if len(chunks) <= 1 {
		// Nothing to split on, e.g. one enormous paragraph.
		s.log.Error("transcript cannot be split further, using fallback segmentation")
		return FallbackSegments(transcript), true
	}
	s.log.Info("split transcript into chunks", "chunks", len(chunks))

	topicsPerChunk := maxTopics / len(chunks)
	if topicsPerChunk < minChunkTopics {
		topicsPerChunk = minChunkTopics
	}

	var all []Segment
	for i, chunk := range chunks {
		chunkSegments, fallback := s.segment(ctx, chunk, topicsPerChunk)
		if fallback {
			s.log.Warn("chunk segmentation degraded to fallback", "chunk", i+1)
		}
		for _, seg := range chunkSegments {
			seg.Topic = fmt.Sprintf("Part %d: %s", i+1, seg.Topic)
			all = append(all, seg)
		}
	}

	if len(all) == 0 {
		return FallbackSegments(transcript), true
	}
	return ResolveOverlaps(all), false
}

func (s *Segmenter) proposeTopics(ctx context.Context, transcript string, maxTopics int) ([]string, error) {
	minTopics := maxTopics - 2
	if minTopics < 1 {
		minTopics = 1
	}
	prompt := fmt.Sprintf(`Read this transcript and identify %d-%d main sections or topics.

The transcript appears to be from a video about: %s...

Analyze the full transcript and return a list of distinct topics that capture the main sections of the video.

TRANSCRIPT:
%s`, minTopics, maxTopics, preview(transcript, 100), transcript)

	var topics TopicList
	err := llm.CallStructured(ctx, s.llm, llm.Request{
		Prompt:      prompt,
		SchemaName:  "identify_transcript_topics",
		Schema:      TopicListSchema(),
		Temperature: s.opts.Temperature,
	}, structuredRetries, &topics)
	if err != nil {
		return nil, err
	}
	if len(topics.Sections) == 0 {
		return nil, fmt.Errorf("model returned no topics")
	}
	return topics.Sections, nil
}

// extractTopic asks for the verbatim transcript text of one topic,
// validating word overlap and retrying once with a firmer prompt.
func (s *Segmenter) extractTopic(ctx context.Context, transcript, topic string) (Segment, error) {
	prompt := fmt.Sprintf(`Extract the exact text from this transcript that corresponds to the section: '%s'

IMPORTANT: Return only the precise text from the transcript that belongs to this section. Do not summarize or paraphrase.

SECTION: %s

TRANSCRIPT:
%s`, topic, topic, transcript)

	seg, err := s.callExtract(ctx, prompt)
	if err == nil && ValidateContent(seg.Content, transcript) {
		return seg, nil
	}
	if err != nil {
		return Segment{}, err
	}
	s.log.Warn("content validation failed, retrying with firmer prompt", "topic", topic)

	retryPrompt := fmt.Sprintf(`Extract the EXACT TEXT from this transcript for the section: '%s'

DO NOT paraphrase or summarize. Extract only the precise words that appear in the transcript.

SECTION: %s

TRANSCRIPT:
%s`, topic, topic, transcript)

	seg, err = s.callExtract(ctx, retryPrompt)
	if err != nil {
		return Segment{}, err
	}
	if !ValidateContent(seg.Content, transcript) {
		return Segment{}, fmt.Errorf("extracted content does not match transcript")
	}
	return seg, nil
}

func (s *Segmenter) callExtract(ctx context.Context, prompt string) (Segment, error) {
	var seg Segment
	err := llm.CallStructured(ctx, s.llm, llm.Request{
		Prompt:      prompt,
		SchemaName:  "extract_transcript_segment",
		Schema:      SegmentSchema(),
		Temperature: s.opts.Temperature,
	}, structuredRetries, &seg)
	return seg, err
}

func computeStats(transcript string, segments []Segment, elapsed time.Duration) Stats {
	transcriptWords := len(strings.Fields(transcript))
	segmentWords := 0
	for _, seg := range segments {
		segmentWords += len(strings.Fields(seg.Content))
	}
	coverage := 0.0
	if transcriptWords > 0 {
		coverage = float64(segmentWords) / float64(transcriptWords) * 100
	}
	return Stats{
		TotalSegments:     len(segments),
		TranscriptWords:   transcriptWords,
		SegmentWords:      segmentWords,
		CoveragePercent:   coverage,
		ProcessingSeconds: elapsed.Seconds(),
	}
}

func preview(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n]
}
