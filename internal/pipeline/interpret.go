package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/jobs"
	"github.com/jobscout/jobscout/internal/prompts"
	"github.com/jobscout/jobscout/internal/schema"
	"github.com/jobscout/jobscout/internal/util"
)

const (
	defaultPostingLimit = 5

	// Cap on raw model output echoed into debug logs.
	maxResponseLogLength = 500
)

type interpretStep struct {
	deps Deps
}

// NewInterpret creates the step that turns the free-text query into a
// structured search intent.
func NewInterpret(deps Deps) Step {
	return &interpretStep{deps: deps}
}

func (s *interpretStep) Name() string { return "interpret_query" }

func (s *interpretStep) Run(ctx context.Context, state SearchState) (SearchState, error) {
	if s.deps.Completer == nil {
		return state, fmt.Errorf("completion provider is required")
	}

	raw, err := s.deps.Completer.Complete(ctx, prompts.Intent(state.Query))
	if err != nil {
		return state, fmt.Errorf("interpret query: %w", err)
	}

	if s.deps.Logger != nil {
		s.deps.Logger.Debug("intent response", zap.String("response", util.TruncateForLog(raw, maxResponseLogLength)))
	}

	intent, err := schema.ParseSearchIntent(raw)
	if err != nil {
		return state, err
	}

	normalizeIntent(intent)

	if s.deps.Logger != nil {
		s.deps.Logger.Debug("query interpreted",
			zap.String("role", intent.Role),
			zap.String("location", intent.Location),
			zap.Strings("skills", intent.Skills),
			zap.Int("limit", intent.Limit),
		)
	}

	state.Intent = intent
	return state, nil
}

func normalizeIntent(intent *schema.SearchIntent) {
	if intent.Limit <= 0 {
		intent.Limit = defaultPostingLimit
	}
	if intent.Limit > jobs.MaxPostings {
		intent.Limit = jobs.MaxPostings
	}
	if intent.PostedWithinDays <= 0 {
		intent.PostedWithinDays = 7
	}
}
