// Package store persists job postings, their analyses and the search
// history in Postgres. Postings are insert-once, analyses are one-to-one
// with a posting, history is append-only.
package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// JobPosting is the persisted form of a fetched posting.
type JobPosting struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Company     string    `db:"company" json:"company"`
	Location    string    `db:"location" json:"location"`
	Description string    `db:"description" json:"description"`
	PostedDate  string    `db:"posted_date" json:"posted_date"`
	ApplyURL    string    `db:"apply_url" json:"apply_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// Analysis is attached on reads when one exists. Never more than one.
	Analysis *JobAnalysis `db:"-" json:"analysis,omitempty"`
}

// JobAnalysis is the per-posting analysis produced by a pipeline run.
type JobAnalysis struct {
	JobID           string    `json:"job_id"`
	Summary         string    `json:"summary"`
	RequiredSkills  []string  `json:"required_skills"`
	SimilarityScore int       `json:"similarity_score"`
	Feedback        string    `json:"feedback"`
	CreatedAt       time.Time `json:"created_at"`
}

// SearchRecord is one entry of the append-only search history.
type SearchRecord struct {
	ID         string    `db:"id" json:"id"`
	Query      string    `db:"query" json:"query"`
	ResumeName string    `db:"resume_name" json:"resume_name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Store wraps the pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates and verifies the connection pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Bootstrap applies the embedded schema. Statements are idempotent.
func (s *Store) Bootstrap(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// SavePosting inserts the posting unless it already exists. Postings are
// immutable once stored.
func (s *Store) SavePosting(ctx context.Context, posting *JobPosting) error {
	if posting == nil || posting.ID == "" {
		return errors.New("posting with an id is required")
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO job_postings (id, title, company, location, description, posted_date, apply_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (id) DO NOTHING
	`, posting.ID, posting.Title, posting.Company, posting.Location, posting.Description, posting.PostedDate, posting.ApplyURL)
	if err != nil {
		return fmt.Errorf("save posting %s: %w", posting.ID, err)
	}

	return nil
}

// SaveAnalysis upserts the analysis for a posting. The unique constraint on
// job_id keeps the at-most-one-analysis invariant.
func (s *Store) SaveAnalysis(ctx context.Context, analysis *JobAnalysis) error {
	if analysis == nil || analysis.JobID == "" {
		return errors.New("analysis with a job id is required")
	}
	if analysis.SimilarityScore < 0 || analysis.SimilarityScore > 100 {
		return fmt.Errorf("similarity score %d is out of range", analysis.SimilarityScore)
	}

	skills, err := json.Marshal(analysis.RequiredSkills)
	if err != nil {
		return fmt.Errorf("encode required skills: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO job_analyses (job_id, summary, required_skills, similarity_score, feedback, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (job_id) DO UPDATE SET
			summary = EXCLUDED.summary,
			required_skills = EXCLUDED.required_skills,
			similarity_score = EXCLUDED.similarity_score,
			feedback = EXCLUDED.feedback
	`, analysis.JobID, analysis.Summary, string(skills), analysis.SimilarityScore, analysis.Feedback)
	if err != nil {
		return fmt.Errorf("save analysis for %s: %w", analysis.JobID, err)
	}

	return nil
}

// AddHistory appends one search-history record. No deduplication.
func (s *Store) AddHistory(ctx context.Context, query, resumeName string) (*SearchRecord, error) {
	record := &SearchRecord{
		ID:         uuid.NewString(),
		Query:      query,
		ResumeName: resumeName,
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO search_history (id, query, resume_name, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING created_at
	`, record.ID, record.Query, record.ResumeName)
	if err := row.Scan(&record.CreatedAt); err != nil {
		return nil, fmt.Errorf("save search history: %w", err)
	}

	return record, nil
}

// GetPosting returns a posting by id with its analysis attached when present.
func (s *Store) GetPosting(ctx context.Context, id string) (*JobPosting, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, company, location, description, posted_date, apply_url, created_at
		FROM job_postings WHERE id = $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get posting %s: %w", id, err)
	}

	posting, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[JobPosting])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get posting %s: %w", id, err)
	}

	analysis, err := s.getAnalysis(ctx, id)
	if err != nil {
		return nil, err
	}
	posting.Analysis = analysis

	return posting, nil
}

// ListPostings returns stored postings, newest first, capped at limit.
func (s *Store) ListPostings(ctx context.Context, limit int) ([]*JobPosting, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, title, company, location, description, posted_date, apply_url, created_at
		FROM job_postings ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}

	postings, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[JobPosting])
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}

	return postings, nil
}

// ListHistory returns search-history records, newest first, capped at limit.
func (s *Store) ListHistory(ctx context.Context, limit int) ([]*SearchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, query, resume_name, created_at
		FROM search_history ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[SearchRecord])
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	return records, nil
}

func (s *Store) getAnalysis(ctx context.Context, jobID string) (*JobAnalysis, error) {
	analysis := &JobAnalysis{JobID: jobID}

	var skills string
	row := s.pool.QueryRow(ctx, `
		SELECT summary, required_skills, similarity_score, feedback, created_at
		FROM job_analyses WHERE job_id = $1
	`, jobID)
	err := row.Scan(&analysis.Summary, &skills, &analysis.SimilarityScore, &analysis.Feedback, &analysis.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get analysis for %s: %w", jobID, err)
	}

	if err := json.Unmarshal([]byte(skills), &analysis.RequiredSkills); err != nil {
		return nil, fmt.Errorf("decode required skills for %s: %w", jobID, err)
	}

	return analysis, nil
}
