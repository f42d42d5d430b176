package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"transcript-agents/internal/analyze"
	"transcript-agents/internal/app"
	"transcript-agents/internal/httputil"
	"transcript-agents/internal/queue"
	"transcript-agents/internal/report"
	"transcript-agents/internal/segment"
	"transcript-agents/internal/store"
)

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
	analyzer := analyze.New(deps.LLM, deps.Log, deps.Config.Temperature)

	ctx := context.Background()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("analysis worker starting")
		return deps.Queue.Worker(ctx, queue.TaskTypeAnalyze, handleAnalyze(deps, analyzer))
	})
	g.Go(func() error {
		return httputil.ServeHealth(deps.Log, deps.Config.HealthPort, "analysis")
	})
	if err := g.Wait(); err != nil {
		deps.Log.Error("analysis stopped", "err", err)
		os.Exit(1)
	}
}

func handleAnalyze(deps app.WorkerDeps, analyzer *analyze.Analyzer) queue.Handler {
	return func(ctx context.Context, task queue.Task) error {
		var payload analyzeTaskPayload
		if err := json.Unmarshal(task.Payload, &payload); err != nil {
			return fmt.Errorf("invalid analyze payload: %w", err)
		}
		trID, err := uuid.Parse(payload.TranscriptID)
		if err != nil {
			return fmt.Errorf("invalid transcript id %q: %w", payload.TranscriptID, err)
		}
		log := deps.Log.With("transcript_id", trID)

		rows, err := deps.Store.ListSegments(ctx, trID)
		if err != nil {
			markFailed(ctx, deps, trID)
			return fmt.Errorf("failed to load segments: %w", err)
		}
		segs := make([]segment.Segment, 0, len(rows))
		for _, row := range rows {
			segs = append(segs, segment.Segment{Topic: row.Topic, Content: row.Content})
		}

		rep := analyzer.Run(ctx, analyze.Input{
			VideoTitle: payload.Title,
			VideoID:    payload.VideoID,
			Transcript: payload.Content,
			Segments:   segs,
			Stats:      payload.Stats,
		})
		if err := deps.Store.SaveReport(ctx, trID, rep); err != nil {
			markFailed(ctx, deps, trID)
			return fmt.Errorf("failed to save report: %w", err)
		}

		embedSegments(ctx, deps, log, payload.Title, rows)

		if deps.Config.ReportDir != "" {
			if dir, err := report.Export(rep, deps.Config.ReportDir); err != nil {
				log.Warn("report export failed", "err", err)
			} else {
				log.Info("report exported", "dir", dir)
			}
		}

		if err := deps.Store.UpdateTranscriptStatus(ctx, trID, store.StatusReady); err != nil {
			return fmt.Errorf("failed to mark transcript ready: %w", err)
		}
		log.Info("analysis finished",
			"keywords", len(rep.Keywords),
			"business_processes", len(rep.BusinessProcesses),
			"technical_processes", len(rep.TechnicalProcesses),
			"technologies", len(rep.Technologies))
		return nil
	}
}

// embedSegments is best effort: query answers degrade without vectors but
// the report itself is already persisted.
func embedSegments(ctx context.Context, deps app.WorkerDeps, log *slog.Logger, title string, rows []store.Segment) {
	for _, row := range rows {
		text := fmt.Sprintf("Video: %s\nTopic: %s\n\n%s", title, row.Topic, row.Content)
		vec, err := deps.Embedder.Embed(text)
		if err != nil {
			log.Warn("embedding failed", "segment_id", row.ID, "err", err)
			continue
		}
		emb := store.Embedding{SegmentID: row.ID, Vector: vec, Model: deps.Config.EmbeddingModel}
		if err := deps.Store.SaveEmbedding(ctx, emb); err != nil {
			log.Warn("failed to save embedding", "segment_id", row.ID, "err", err)
		}
	}
}

func markFailed(ctx context.Context, deps app.WorkerDeps, trID uuid.UUID) {
	if err := deps.Store.UpdateTranscriptStatus(ctx, trID, store.StatusFailed); err != nil {
		deps.Log.Error("failed to mark transcript failed", "transcript_id", trID, "err", err)
	}
}
