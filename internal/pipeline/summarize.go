package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/prompts"
	"github.com/jobscout/jobscout/internal/schema"
	"github.com/jobscout/jobscout/internal/util"
)

type summarizeStep struct {
	deps Deps
}

// NewSummarize creates the step that condenses each posting's description
// into a short summary plus the required-skills list.
func NewSummarize(deps Deps) Step {
	return &summarizeStep{deps: deps}
}

func (s *summarizeStep) Name() string { return "summarize_jobs" }

func (s *summarizeStep) Run(ctx context.Context, state SearchState) (SearchState, error) {
	if s.deps.Completer == nil {
		return state, fmt.Errorf("completion provider is required")
	}
	if state.Postings.Len() == 0 {
		return state, fmt.Errorf("postings are not populated")
	}

	summaries := make(map[string]*schema.JobSummary, state.Postings.Len())
	for _, posting := range state.Postings.Items {
		raw, err := s.deps.Completer.Complete(ctx, prompts.JobSummary(posting.Description))
		if err != nil {
			return state, fmt.Errorf("summarize job %s: %w", posting.ID, err)
		}

		if s.deps.Logger != nil {
			s.deps.Logger.Debug("summary response",
				zap.String("job_id", posting.ID),
				zap.String("response", util.TruncateForLog(raw, maxResponseLogLength)),
			)
		}

		summary, err := schema.ParseJobSummary(raw)
		if err != nil {
			return state, fmt.Errorf("job %s: %w", posting.ID, err)
		}

		summaries[posting.ID] = summary

		if s.deps.Logger != nil {
			s.deps.Logger.Debug("job summarized",
				zap.String("job_id", posting.ID),
				zap.Int("required_skills", len(summary.RequiredSkills)),
			)
		}
	}

	state.Summaries = summaries
	return state, nil
}
