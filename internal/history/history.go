// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local log of recommendation submissions in SQLite.
// Only the submitted request and the names the service returned are stored;
// display candidates are rebuilt per response and never persisted.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/journal-recommender/pkg/types"
)

const defaultRecentLimit = 20

// timeLayout is fixed-width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Submission is one recorded call to the recommendation service.
type Submission struct {
	ID             string                      `json:"id" yaml:"id"`
	Request        types.RecommendationRequest `json:"request" yaml:"request"`
	CandidateCount int                         `json:"candidateCount" yaml:"candidate_count"`
	Journals       []string                    `json:"journals" yaml:"journals"`
	ProcessingTime float64                     `json:"processingTime" yaml:"processing_time"`
	CreatedAt      time.Time                   `json:"createdAt" yaml:"created_at"`
}

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	maxEntries int
}

// NewStore opens or creates the history database at cfg.DBPath and creates
// the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, maxEntries: cfg.MaxEntries}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS submissions (
			id TEXT PRIMARY KEY,
			subject_area TEXT NOT NULL,
			title TEXT NOT NULL,
			abstract TEXT NOT NULL,
			acc_from INTEGER NOT NULL,
			acc_to INTEGER NOT NULL,
			open_access INTEGER NOT NULL,
			candidate_count INTEGER NOT NULL,
			journals TEXT,
			processing_time REAL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores sub, assigning an ID and timestamp when they are empty, and
// prunes old rows when a cap is configured. It returns the stored record.
func (s *Store) Record(ctx context.Context, sub Submission) (Submission, error) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	journalsJSON, _ := json.Marshal(sub.Journals)
	req := sub.Request
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, subject_area, title, abstract, acc_from, acc_to, open_access,
			candidate_count, journals, processing_time, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, req.SubjectArea, req.Title, req.Abstract, req.AcceptanceRateFrom, req.AcceptanceRateTo,
		req.OpenAccessOnly, sub.CandidateCount, string(journalsJSON), sub.ProcessingTime,
		sub.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return sub, fmt.Errorf("inserting submission: %w", err)
	}

	if s.maxEntries > 0 {
		if _, err := s.Prune(ctx, s.maxEntries); err != nil {
			return sub, err
		}
	}
	return sub, nil
}

// Recent returns up to limit submissions, newest first. A non-positive
// limit uses the default of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, subject_area, title, abstract, acc_from, acc_to, open_access,
			candidate_count, journals, processing_time, created_at
		 FROM submissions ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var (
			sub          Submission
			journalsJSON sql.NullString
			procTime     sql.NullFloat64
			createdAt    string
		)
		err := rows.Scan(&sub.ID, &sub.Request.SubjectArea, &sub.Request.Title, &sub.Request.Abstract,
			&sub.Request.AcceptanceRateFrom, &sub.Request.AcceptanceRateTo, &sub.Request.OpenAccessOnly,
			&sub.CandidateCount, &journalsJSON, &procTime, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		if journalsJSON.Valid {
			json.Unmarshal([]byte(journalsJSON.String), &sub.Journals)
		}
		sub.ProcessingTime = procTime.Float64
		if t, err := time.Parse(timeLayout, createdAt); err == nil {
			sub.CreatedAt = t
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// Prune deletes all but the keep newest submissions and returns the number
// of rows removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM submissions WHERE id NOT IN (
			SELECT id FROM submissions ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning submissions: %w", err)
	}
	return res.RowsAffected()
}
