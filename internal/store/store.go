// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/tuivoca/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Preference keys.
const (
	KeyLastChapter  = "chapter.last"
	KeyWordListMode = "wordlist.mode"
	KeyInterval     = "home.interval-ms"
	KeyAutoPlay     = "home.autoplay"
	KeySound        = "home.sound"
)

// timeLayout sorts lexically, so MAX and ORDER BY work on the text column.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store wraps SQLite access for preferences and review history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS review_passes (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL UNIQUE,
			chapter INTEGER NOT NULL,
			mode TEXT NOT NULL,
			random INTEGER NOT NULL,
			words INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_review_passes_chapter ON review_passes(chapter);`,
		`CREATE INDEX IF NOT EXISTS idx_review_passes_ended_at ON review_passes(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the stored value for key; ok is false when it was never set.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}

// InsertReviewPass stores a completed review pass. A missing session id is
// generated. It returns the session id used.
func (s *Store) InsertReviewPass(ctx context.Context, pass model.ReviewPass) (string, error) {
	if pass.SessionID == "" {
		pass.SessionID = uuid.NewString()
	}
	if pass.EndedAt.IsZero() {
		pass.EndedAt = time.Now()
	}
	if pass.StartedAt.IsZero() || pass.StartedAt.After(pass.EndedAt) {
		pass.StartedAt = pass.EndedAt
	}
	random := 0
	if pass.Random {
		random = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO review_passes (session_id, chapter, mode, random, words, started_at, ended_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		pass.SessionID,
		pass.Chapter,
		pass.Mode,
		random,
		pass.Words,
		pass.StartedAt.UTC().Format(timeLayout),
		pass.EndedAt.UTC().Format(timeLayout),
		pass.EndedAt.Sub(pass.StartedAt).Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert review pass: %w", err)
	}
	return pass.SessionID, nil
}

// ListReviewPasses returns passes ended at or after since (all when nil),
// oldest first.
func (s *Store) ListReviewPasses(ctx context.Context, since *time.Time) ([]model.ReviewPass, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT session_id, chapter, mode, random, words, started_at, ended_at
		FROM review_passes
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var passes []model.ReviewPass
	for rows.Next() {
		var p model.ReviewPass
		var random int
		var startedAt, endedAt string
		if err := rows.Scan(&p.SessionID, &p.Chapter, &p.Mode, &random, &p.Words, &startedAt, &endedAt); err != nil {
			return nil, err
		}
		p.Random = random != 0
		if p.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, err
		}
		if p.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
			return nil, err
		}
		passes = append(passes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return passes, nil
}

// ListChapterHistory aggregates review passes per chapter, lowest chapter
// first.
func (s *Store) ListChapterHistory(ctx context.Context) ([]model.ChapterHistory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT chapter, COUNT(*) AS passes, MAX(ended_at) AS last_ended, SUM(duration_ms) AS duration_ms
		 FROM review_passes
		 GROUP BY chapter
		 ORDER BY chapter ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.ChapterHistory
	for rows.Next() {
		var h model.ChapterHistory
		var lastEnded string
		if err := rows.Scan(&h.Chapter, &h.Passes, &lastEnded, &h.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, lastEnded)
		if err != nil {
			return nil, err
		}
		h.LastEnded = parsed
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
