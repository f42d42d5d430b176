package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"transcript-agents/internal/app"
	"transcript-agents/internal/httputil"
	"transcript-agents/internal/queue"
	"transcript-agents/internal/segment"
	"transcript-agents/internal/store"
)

type segmentTaskPayload struct {
	TranscriptID string `json:"transcript_id"`
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
}

type analyzeTaskPayload struct {
	TranscriptID string        `json:"transcript_id"`
	VideoID      string        `json:"video_id"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	Stats        segment.Stats `json:"stats"`
}

func main() {
	deps, err := app.BuildWorker()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	seg := segment.New(deps.LLM, deps.Log, segment.Options{
		MaxTopics:   deps.Config.MaxTopics,
		Temperature: deps.Config.Temperature,
		ContextSize: deps.Config.ContextSize,
	})

	ctx := context.Background()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("segmenter worker starting")
		return deps.Queue.Worker(ctx, queue.TaskTypeSegment, handleSegment(deps, seg))
	})
	g.Go(func() error {
		return httputil.ServeHealth(deps.Log, deps.Config.HealthPort, "segmenter")
	})
	if err := g.Wait(); err != nil {
		deps.Log.Error("segmenter stopped", "err", err)
		os.Exit(1)
	}
}

func handleSegment(deps app.WorkerDeps, seg *segment.Segmenter) queue.Handler {
	return func(ctx context.Context, task queue.Task) error {
		var payload segmentTaskPayload
		if err := json.Unmarshal(task.Payload, &payload); err != nil {
			return fmt.Errorf("invalid segment payload: %w", err)
		}
		trID, err := uuid.Parse(payload.TranscriptID)
		if err != nil {
			return fmt.Errorf("invalid transcript id %q: %w", payload.TranscriptID, err)
		}
		log := deps.Log.With("transcript_id", trID)

		result := seg.Segment(ctx, payload.Content)
		log.Info("segmentation finished",
			"segments", result.Stats.TotalSegments,
			"coverage", result.Stats.CoveragePercent,
			"fallback", result.Fallback)

		rows := make([]store.Segment, 0, len(result.Segments))
		for i, s := range result.Segments {
			rows = append(rows, store.Segment{
				TranscriptID: trID,
				Index:        i,
				Topic:        s.Topic,
				Content:      s.Content,
				WordCount:    len(strings.Fields(s.Content)),
			})
		}
		if _, err := deps.Store.SaveSegments(ctx, trID, rows); err != nil {
			markFailed(ctx, deps, trID)
			return fmt.Errorf("failed to save segments: %w", err)
		}

		next := analyzeTaskPayload{
			TranscriptID: payload.TranscriptID,
			VideoID:      payload.VideoID,
			Title:        payload.Title,
			Content:      payload.Content,
			Stats:        result.Stats,
		}
		body, err := json.Marshal(next)
		if err != nil {
			markFailed(ctx, deps, trID)
			return fmt.Errorf("marshal analyze payload failed: %w", err)
		}
		task = queue.Task{Type: queue.TaskTypeAnalyze, Payload: body}
		if err := queue.EnqueueWithRetry(ctx, deps.Queue, task, 3, 200*time.Millisecond); err != nil {
			markFailed(ctx, deps, trID)
			return fmt.Errorf("failed to enqueue analysis: %w", err)
		}
		return nil
	}
}

func markFailed(ctx context.Context, deps app.WorkerDeps, trID uuid.UUID) {
	if err := deps.Store.UpdateTranscriptStatus(ctx, trID, store.StatusFailed); err != nil {
		deps.Log.Error("failed to mark transcript failed", "transcript_id", trID, "err", err)
	}
}
