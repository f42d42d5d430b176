package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"transcript-agents/internal/app"
	"transcript-agents/internal/httputil"
	"transcript-agents/internal/queue"
	"transcript-agents/internal/store"
	"transcript-agents/internal/transcript"
)

type segmentTaskPayload struct {
	TranscriptID string `json:"transcript_id"`
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	r := httputil.NewRouter(deps.Log)

	r.Post("/api/transcripts", uploadHandler(deps))
	r.Get("/api/transcripts/{id}", statusHandler(deps))
	r.Get("/api/transcripts/{id}/report", reportHandler(deps))
	r.Post("/api/query", queryProxyHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("gateway listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func uploadHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.ContentLength > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.Fail(deps.Log, w, "file is required", err, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to read file", err, http.StatusInternalServerError)
			return
		}
		text, err := extractText(header.Filename, content, deps)
		if err != nil {
			httputil.Fail(deps.Log, w, "unsupported file type (only PDF and TXT allowed)", err, http.StatusBadRequest)
			return
		}
		text = transcript.Clean(text)
		if text == "" {
			httputil.Fail(deps.Log, w, "transcript is empty", nil, http.StatusBadRequest)
			return
		}

		title := r.FormValue("title")
		if title == "" {
			title = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
		}
		videoID := transcript.ExtractVideoID(r.FormValue("url"))

		tr, err := deps.Store.CreateTranscript(ctx, videoID, title)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to persist transcript", err, http.StatusInternalServerError)
			return
		}

		payload := segmentTaskPayload{
			TranscriptID: tr.ID.String(),
			VideoID:      tr.VideoID,
			Title:        tr.Title,
			Content:      text,
		}
		body, err := json.Marshal(payload)
		if err != nil {
			fail(deps, ctx, w, "marshal payload failed", err, tr.ID, http.StatusInternalServerError, true)
			return
		}
		task := queue.Task{Type: queue.TaskTypeSegment, Payload: body}
		if err := queue.EnqueueWithRetry(ctx, deps.Queue, task, 3, 200*time.Millisecond); err != nil {
			fail(deps, ctx, w, "failed to enqueue transcript; please retry", err, tr.ID, http.StatusInternalServerError, true)
			return
		}

		httputil.WriteJSON(w, http.StatusAccepted, map[string]any{
			"transcript_id": tr.ID.String(),
			"status":        tr.Status,
		})
	}
}

// fail is gateway-specific error handler that can mark transcripts as failed
func fail(deps app.Deps, ctx context.Context, w http.ResponseWriter, message string, err error, trID uuid.UUID, status int, markFailed bool) {
	log := deps.Log.With("transcript_id", trID)
	if markFailed && trID != uuid.Nil {
		if upErr := deps.Store.UpdateTranscriptStatus(ctx, trID, store.StatusFailed); upErr != nil {
			log.Error("failed to mark transcript failed", "err", upErr)
		}
	}
	httputil.Fail(log, w, message, err, status)
}

func statusHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httputil.Fail(deps.Log, w, "invalid transcript id", err, http.StatusBadRequest)
			return
		}
		tr, err := deps.Store.GetTranscript(r.Context(), trID)
		if err != nil {
			httputil.Fail(deps.Log, w, "transcript not found", err, http.StatusNotFound)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"transcript_id": tr.ID.String(),
			"video_id":      tr.VideoID,
			"title":         tr.Title,
			"status":        tr.Status,
			"created_at":    tr.CreatedAt,
		})
	}
}

func reportHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httputil.Fail(deps.Log, w, "invalid transcript id", err, http.StatusBadRequest)
			return
		}
		rep, err := deps.Store.GetReport(r.Context(), trID)
		if err != nil {
			if errors.Is(err, store.ErrReportNotFound) {
				httputil.Fail(deps.Log, w, "report not ready", err, http.StatusNotFound)
				return
			}
			httputil.Fail(deps.Log, w, "failed to load report", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, rep)
	}
}

func queryProxyHandler(deps app.Deps) http.HandlerFunc {
	queryURL := deps.Config.QueryServiceURL
	client := &http.Client{Timeout: 60 * time.Second}

	return func(w http.ResponseWriter, r *http.Request) {
		// Forward request to query service
		req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, queryURL, r.Body)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to create request", err, http.StatusInternalServerError)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			httputil.Fail(deps.Log, w, "query service unavailable", err, http.StatusServiceUnavailable)
			return
		}
		defer resp.Body.Close()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		if _, err := io.Copy(w, resp.Body); err != nil {
			deps.Log.Error("failed to copy response", "err", err)
		}
	}
}

// extractText pulls transcript text out of uploads, with PDF support.
func extractText(filename string, content []byte, deps app.Deps) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err := transcript.ExtractPDF(content)
		if err != nil {
			deps.Log.Warn("pdf extraction failed, using raw bytes", "err", err, "filename", filename)
			return string(content), nil
		}
		return text, nil
	case ".txt", "":
		return string(content), nil
	default:
		return "", fmt.Errorf("unsupported extension %q", filepath.Ext(filename))
	}
}
