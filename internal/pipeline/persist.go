package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/store"
)

type persistStep struct {
	deps Deps
}

// NewPersist creates the step that writes postings, analyses and the
// search-history record. With no store configured the step is a no-op so
// one-shot CLI runs work without a database.
func NewPersist(deps Deps) Step {
	return &persistStep{deps: deps}
}

func (s *persistStep) Name() string { return "persist_results" }

func (s *persistStep) Run(ctx context.Context, state SearchState) (SearchState, error) {
	if s.deps.Store == nil {
		if s.deps.Logger != nil {
			s.deps.Logger.Debug("no store configured; skipping persistence")
		}
		return state, nil
	}

	for _, posting := range state.Postings.Items {
		if err := s.deps.Store.SavePosting(ctx, &store.JobPosting{
			ID:          posting.ID,
			Title:       posting.Title,
			Company:     posting.Company,
			Location:    posting.Location,
			Description: posting.Description,
			PostedDate:  posting.PostedDate,
			ApplyURL:    posting.ApplyURL,
		}); err != nil {
			return state, err
		}

		summary := state.Summaries[posting.ID]
		if err := s.deps.Store.SaveAnalysis(ctx, &store.JobAnalysis{
			JobID:           posting.ID,
			Summary:         summary.Summary,
			RequiredSkills:  summary.RequiredSkills,
			SimilarityScore: state.Scores[posting.ID],
			Feedback:        state.Feedback[posting.ID],
		}); err != nil {
			return state, err
		}
	}

	record, err := s.deps.Store.AddHistory(ctx, state.Query, state.ResumeName)
	if err != nil {
		return state, fmt.Errorf("record search history: %w", err)
	}

	if s.deps.Logger != nil {
		s.deps.Logger.Info("results persisted",
			zap.Int("postings", state.Postings.Len()),
			zap.String("history_id", record.ID),
		)
	}

	state.History = record
	return state, nil
}
