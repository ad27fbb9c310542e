package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/scoring"
)

type scoreStep struct {
	deps Deps
}

// NewScore creates the step that computes the similarity score for every
// posting against the parsed resume.
func NewScore(deps Deps) Step {
	return &scoreStep{deps: deps}
}

func (s *scoreStep) Name() string { return "score_match" }

func (s *scoreStep) Run(ctx context.Context, state SearchState) (SearchState, error) {
	if s.deps.Scorer == nil {
		return state, fmt.Errorf("scorer is required")
	}
	if state.Resume == nil {
		return state, fmt.Errorf("resume fields are not populated")
	}
	if len(state.Summaries) == 0 {
		return state, fmt.Errorf("job summaries are not populated")
	}

	resumeDoc := scoring.ResumeDocument(state.Resume)
	if resumeDoc == "" {
		return state, fmt.Errorf("resume yielded no content to score against")
	}

	scores := make(map[string]int, state.Postings.Len())
	for _, posting := range state.Postings.Items {
		summary, ok := state.Summaries[posting.ID]
		if !ok {
			return state, fmt.Errorf("job %s has no summary", posting.ID)
		}

		score, err := s.deps.Scorer.Score(ctx, resumeDoc, scoring.JobDocument(summary))
		if err != nil {
			return state, fmt.Errorf("score job %s: %w", posting.ID, err)
		}

		scores[posting.ID] = score

		if s.deps.Logger != nil {
			s.deps.Logger.Info("job scored",
				zap.String("job_id", posting.ID),
				zap.Int("score", score),
			)
		}
	}

	state.Scores = scores
	return state, nil
}
