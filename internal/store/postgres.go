package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"

	"transcript-agents/internal/embeddings"
	"transcript-agents/internal/report"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// Use advisory lock to prevent concurrent migrations from multiple services.
	const lockID = 987654321

	var acquired bool
	err := s.db.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&acquired)
	if err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	if !acquired {
		// Another service is running migrations; wait briefly and skip
		time.Sleep(2 * time.Second)
		return nil
	}
	defer func() {
		_, _ = s.db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	if _, err := s.db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS transcripts (
			id UUID PRIMARY KEY,
			video_id TEXT,
			title TEXT,
			status TEXT,
			created_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS segments (
			id UUID PRIMARY KEY,
			transcript_id UUID REFERENCES transcripts(id) ON DELETE CASCADE,
			ord INT,
			topic TEXT,
			content TEXT,
			word_count INT
		);`,
		`CREATE TABLE IF NOT EXISTS reports (
			transcript_id UUID PRIMARY KEY REFERENCES transcripts(id) ON DELETE CASCADE,
			body JSONB,
			keywords TEXT[],
			summary TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS segment_embeddings (
			segment_id UUID PRIMARY KEY REFERENCES segments(id) ON DELETE CASCADE,
			vector vector(1536),
			model TEXT
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	_, err = s.db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS segment_embeddings_vector_idx
		ON segment_embeddings USING ivfflat (vector vector_cosine_ops)
		WITH (lists = 100)
	`)
	if err != nil {
		return fmt.Errorf("failed to create vector index: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateTranscript(ctx context.Context, videoID, title string) (Transcript, error) {
	id := uuid.New()
	_, err := s.db.ExecContext(ctx, `INSERT INTO transcripts(id, video_id, title, status) VALUES($1,$2,$3,$4)`,
		id, videoID, title, StatusProcessing)
	if err != nil {
		return Transcript{}, err
	}
	return Transcript{ID: id, VideoID: videoID, Title: title, Status: StatusProcessing, CreatedAt: time.Now()}, nil
}

func (s *PostgresStore) GetTranscript(ctx context.Context, id uuid.UUID) (Transcript, error) {
	var t Transcript
	row := s.db.QueryRowContext(ctx, `SELECT id, video_id, title, status, created_at FROM transcripts WHERE id=$1`, id)
	if err := row.Scan(&t.ID, &t.VideoID, &t.Title, &t.Status, &t.CreatedAt); err != nil {
		return Transcript{}, err
	}
	return t, nil
}

func (s *PostgresStore) UpdateTranscriptStatus(ctx context.Context, id uuid.UUID, status TranscriptStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE transcripts SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New("transcript not found")
	}
	return nil
}

func (s *PostgresStore) SaveSegments(ctx context.Context, transcriptID uuid.UUID, segments []Segment) ([]Segment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Re-segmenting replaces previous results.
	if _, err := tx.ExecContext(ctx, `DELETE FROM segments WHERE transcript_id=$1`, transcriptID); err != nil {
		return nil, err
	}

	out := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		sid := uuid.New()
		_, err := tx.ExecContext(ctx, `INSERT INTO segments(id, transcript_id, ord, topic, content, word_count) VALUES($1,$2,$3,$4,$5,$6)`,
			sid, transcriptID, seg.Index, seg.Topic, seg.Content, seg.WordCount)
		if err != nil {
			return nil, err
		}
		seg.ID = sid
		seg.TranscriptID = transcriptID
		out = append(out, seg)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) ListSegments(ctx context.Context, transcriptID uuid.UUID) ([]Segment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, ord, topic, content, word_count FROM segments WHERE transcript_id=$1 ORDER BY ord`, transcriptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Segment
	for rows.Next() {
		var seg Segment
		if err := rows.Scan(&seg.ID, &seg.Index, &seg.Topic, &seg.Content, &seg.WordCount); err != nil {
			return nil, err
		}
		seg.TranscriptID = transcriptID
		out = append(out, seg)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SaveReport(ctx context.Context, transcriptID uuid.UUID, rep report.Report) error {
	body, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports(transcript_id, body, keywords, summary)
		VALUES($1,$2,$3,$4)
		ON CONFLICT (transcript_id) DO UPDATE SET body=excluded.body, keywords=excluded.keywords, summary=excluded.summary`,
		transcriptID, body, pq.Array(rep.Keywords), rep.Summary)
	return err
}

func (s *PostgresStore) GetReport(ctx context.Context, transcriptID uuid.UUID) (report.Report, error) {
	var body []byte
	row := s.db.QueryRowContext(ctx, `SELECT body FROM reports WHERE transcript_id=$1`, transcriptID)
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return report.Report{}, ErrReportNotFound
		}
		return report.Report{}, fmt.Errorf("failed to get report for transcript %s: %w", transcriptID, err)
	}
	var rep report.Report
	if err := json.Unmarshal(body, &rep); err != nil {
		return report.Report{}, fmt.Errorf("failed to decode report for transcript %s: %w", transcriptID, err)
	}
	return rep, nil
}

func (s *PostgresStore) SaveEmbedding(ctx context.Context, emb Embedding) error {
	vecStr := vectorToString(emb.Vector)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO segment_embeddings(segment_id, vector, model)
		VALUES($1,$2::vector,$3)
		ON CONFLICT (segment_id) DO UPDATE SET vector=excluded.vector, model=excluded.model`,
		emb.SegmentID, vecStr, emb.Model)
	return err
}

func (s *PostgresStore) TopK(ctx context.Context, transcriptIDs []uuid.UUID, vector embeddings.Vector, k int) ([]SearchResult, error) {
	queryVec := vectorToString(vector)

	rows, err := s.db.QueryContext(ctx, `
		SELECT
			seg.id,
			seg.transcript_id,
			seg.ord,
			seg.topic,
			seg.content,
			seg.word_count,
			1 - (e.vector <=> $1::vector) AS similarity
		FROM segment_embeddings e
		JOIN segments seg ON seg.id = e.segment_id
		WHERE seg.transcript_id = ANY($2)
		ORDER BY e.vector <=> $1::vector
		LIMIT $3
	`, queryVec, pq.Array(transcriptIDs), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var seg Segment
		var score float32
		if err := rows.Scan(&seg.ID, &seg.TranscriptID, &seg.Index, &seg.Topic, &seg.Content, &seg.WordCount, &score); err != nil {
			return nil, err
		}
		results = append(results, SearchResult{Segment: seg, Score: score})
	}
	return results, rows.Err()
}

// vectorToString converts a Vector ([]float32) to pgvector array format.
// Format: "[0.1,0.2,0.3,...]"
func vectorToString(v embeddings.Vector) string {
	if len(v) == 0 {
		return "[]"
	}
	parts := make([]string, len(v))
	for i, val := range v {
		parts[i] = strconv.FormatFloat(float64(val), 'f', -1, 32)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
