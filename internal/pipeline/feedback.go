package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/prompts"
	"github.com/jobscout/jobscout/internal/schema"
)

type feedbackStep struct {
	deps Deps
}

// NewFeedback creates the step that generates per-posting resume
// improvement feedback.
func NewFeedback(deps Deps) Step {
	return &feedbackStep{deps: deps}
}

func (s *feedbackStep) Name() string { return "generate_feedback" }

func (s *feedbackStep) Run(ctx context.Context, state SearchState) (SearchState, error) {
	if s.deps.Completer == nil {
		return state, fmt.Errorf("completion provider is required")
	}
	if state.Resume == nil {
		return state, fmt.Errorf("resume fields are not populated")
	}
	if len(state.Scores) == 0 {
		return state, fmt.Errorf("scores are not populated")
	}

	feedback := make(map[string]string, state.Postings.Len())
	for _, posting := range state.Postings.Items {
		summary := state.Summaries[posting.ID]
		score, ok := state.Scores[posting.ID]
		if summary == nil || !ok {
			return state, fmt.Errorf("job %s is missing summary or score", posting.ID)
		}

		prompt := prompts.Feedback(
			state.Resume.Profile,
			strings.Join(state.Resume.Skills, ", "),
			summary.Summary,
			strings.Join(summary.RequiredSkills, ", "),
			score,
		)

		raw, err := s.deps.Completer.Complete(ctx, prompt)
		if err != nil {
			return state, fmt.Errorf("feedback for job %s: %w", posting.ID, err)
		}

		parsed, err := schema.ParseFeedback(raw)
		if err != nil {
			return state, fmt.Errorf("job %s: %w", posting.ID, err)
		}

		feedback[posting.ID] = parsed.Feedback

		if s.deps.Logger != nil {
			s.deps.Logger.Debug("feedback generated", zap.String("job_id", posting.ID))
		}
	}

	state.Feedback = feedback
	return state, nil
}
