package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"
)

// newTestStore connects to the database named by TEST_DATABASE_URL and
// applies the schema. Tests are skipped when the variable is unset.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("skipping integration test; set TEST_DATABASE_URL")
	}

	ctx := context.Background()
	st, err := New(ctx, url)
	if err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}
	t.Cleanup(st.Close)

	if err := st.Bootstrap(ctx); err != nil {
		t.Fatalf("applying schema: %v", err)
	}

	return st
}

func testPosting(id string) *JobPosting {
	return &JobPosting{
		ID:          id,
		Title:       "Go Developer",
		Company:     "Acme",
		Location:    "Berlin",
		Description: "Build Go services.",
		PostedDate:  "2026-08-20",
		ApplyURL:    "https://example.com/" + id,
	}
}

func uniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func TestSavePostingIsInsertOnce(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id := uniqueID("posting")
	posting := testPosting(id)

	if err := st.SavePosting(ctx, posting); err != nil {
		t.Fatalf("save posting: %v", err)
	}

	// Saving again with different content must not overwrite.
	changed := testPosting(id)
	changed.Title = "Changed Title"
	if err := st.SavePosting(ctx, changed); err != nil {
		t.Fatalf("save posting again: %v", err)
	}

	stored, err := st.GetPosting(ctx, id)
	if err != nil {
		t.Fatalf("get posting: %v", err)
	}
	if stored.Title != "Go Developer" {
		t.Fatalf("posting was overwritten: %q", stored.Title)
	}
	if stored.Analysis != nil {
		t.Fatalf("no analysis expected yet")
	}
}

func TestSaveAnalysisUpsertsByJobID(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	id := uniqueID("posting")
	if err := st.SavePosting(ctx, testPosting(id)); err != nil {
		t.Fatalf("save posting: %v", err)
	}

	first := &JobAnalysis{
		JobID:           id,
		Summary:         "First pass.",
		RequiredSkills:  []string{"Go"},
		SimilarityScore: 40,
		Feedback:        "Add more detail.",
	}
	if err := st.SaveAnalysis(ctx, first); err != nil {
		t.Fatalf("save analysis: %v", err)
	}

	second := &JobAnalysis{
		JobID:           id,
		Summary:         "Second pass.",
		RequiredSkills:  []string{"Go", "Kubernetes"},
		SimilarityScore: 75,
		Feedback:        "Looks better.",
	}
	if err := st.SaveAnalysis(ctx, second); err != nil {
		t.Fatalf("upsert analysis: %v", err)
	}

	stored, err := st.GetPosting(ctx, id)
	if err != nil {
		t.Fatalf("get posting: %v", err)
	}
	if stored.Analysis == nil {
		t.Fatalf("analysis not attached")
	}
	if stored.Analysis.SimilarityScore != 75 || stored.Analysis.Summary != "Second pass." {
		t.Fatalf("analysis not upserted: %+v", stored.Analysis)
	}
	if len(stored.Analysis.RequiredSkills) != 2 {
		t.Fatalf("skills not updated: %v", stored.Analysis.RequiredSkills)
	}
}

func TestSaveAnalysisRejectsOutOfRangeScore(t *testing.T) {
	st := newTestStore(t)

	err := st.SaveAnalysis(context.Background(), &JobAnalysis{
		JobID:           uniqueID("posting"),
		Summary:         "x",
		SimilarityScore: 140,
	})
	if err == nil {
		t.Fatalf("expected error for out-of-range score")
	}
}

func TestGetPostingNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.GetPosting(context.Background(), uniqueID("missing"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHistoryIsAppendOnly(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	query := uniqueID("query")

	first, err := st.AddHistory(ctx, query, "resume.pdf")
	if err != nil {
		t.Fatalf("add history: %v", err)
	}
	if first.ID == "" || first.CreatedAt.IsZero() {
		t.Fatalf("incomplete history record: %+v", first)
	}

	// The same query again is a new record, never deduplicated.
	second, err := st.AddHistory(ctx, query, "resume.pdf")
	if err != nil {
		t.Fatalf("add history again: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("history records must not be deduplicated")
	}

	records, err := st.ListHistory(ctx, 50)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}

	found := 0
	for _, record := range records {
		if record.Query == query {
			found++
		}
	}
	if found != 2 {
		t.Fatalf("expected 2 records for the query, got %d", found)
	}
}
