package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"transcript-agents/internal/app"
	"transcript-agents/internal/cache"
	"transcript-agents/internal/httputil"
	"transcript-agents/internal/store"
)

const (
	defaultTopK     = 5
	answerCacheTTL  = time.Hour
	previewMaxChars = 160
)

type queryRequest struct {
	Question      string   `json:"question" validate:"required,min=3,max=500"`
	TranscriptIDs []string `json:"transcript_ids" validate:"required,min=1,dive,uuid4"`
	TopK          int      `json:"top_k" validate:"omitempty,min=1,max=20"`
}

type queryResponse struct {
	Answer     string         `json:"answer"`
	Confidence float32        `json:"confidence"`
	Sources    []cache.Source `json:"sources"`
	Cached     bool           `json:"cached"`
}

func main() {
	deps, err := app.BuildQuery()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer deps.Cache.Close()

	r := httputil.NewRouter(deps.Log)
	r.Post("/api/query", queryHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("query service listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func queryHandler(deps app.QueryDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid JSON body", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		if req.TopK == 0 {
			req.TopK = defaultTopK
		}

		key := cache.GenerateCacheKey(req.Question, req.TranscriptIDs, req.TopK)
		if cached, err := deps.Cache.GetAnswer(ctx, key); err != nil {
			deps.Log.Warn("cache lookup failed", "err", err)
		} else if cached != nil {
			httputil.WriteJSON(w, http.StatusOK, queryResponse{
				Answer:     cached.Answer,
				Confidence: cached.Confidence,
				Sources:    cached.Sources,
				Cached:     true,
			})
			return
		}

		ids := make([]uuid.UUID, 0, len(req.TranscriptIDs))
		for _, raw := range req.TranscriptIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				httputil.Fail(deps.Log, w, fmt.Sprintf("invalid transcript id %q", raw), err, http.StatusBadRequest)
				return
			}
			ids = append(ids, id)
		}

		vec, err := deps.Embedder.Embed(req.Question)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to embed question", err, http.StatusInternalServerError)
			return
		}
		results, err := deps.Store.TopK(ctx, ids, vec, req.TopK)
		if err != nil {
			httputil.Fail(deps.Log, w, "similarity search failed", err, http.StatusInternalServerError)
			return
		}
		if len(results) == 0 {
			httputil.WriteJSON(w, http.StatusOK, queryResponse{
				Answer:     "No relevant transcript content was found for this question.",
				Confidence: 0,
				Sources:    []cache.Source{},
			})
			return
		}

		answer, confidence, err := deps.LLM.Answer(ctx, req.Question, buildContext(results))
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to generate answer", err, http.StatusInternalServerError)
			return
		}

		sources := make([]cache.Source, 0, len(results))
		for _, res := range results {
			sources = append(sources, cache.Source{
				SegmentID: res.Segment.ID.String(),
				Topic:     res.Segment.Topic,
				Score:     res.Score,
				Preview:   preview(res.Segment.Content),
			})
		}
		entry := &cache.Answer{Answer: answer, Confidence: confidence, Sources: sources}
		if err := deps.Cache.SetAnswer(ctx, key, entry, answerCacheTTL); err != nil {
			deps.Log.Warn("cache store failed", "err", err)
		}

		httputil.WriteJSON(w, http.StatusOK, queryResponse{
			Answer:     answer,
			Confidence: confidence,
			Sources:    sources,
		})
	}
}

// buildContext joins the top segments into one prompt context block.
func buildContext(results []store.SearchResult) string {
	var b strings.Builder
	for i, res := range results {
		if i > 0 {
			b.WriteString("\n\n---\n\n")
		}
		fmt.Fprintf(&b, "[%s]\n%s", res.Segment.Topic, res.Segment.Content)
	}
	return b.String()
}

func preview(text string) string {
	text = strings.TrimSpace(text)
	if len(text) <= previewMaxChars {
		return text
	}
	return text[:previewMaxChars] + "..."
}
