package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/jobs"
	"github.com/jobscout/jobscout/internal/store"
)

// ErrNoPostings is returned when the provider finds nothing for the intent.
// An empty result is a reported failure, never a silent empty success.
var ErrNoPostings = errors.New("no job postings found for the query")

type fetchStep struct {
	deps Deps
}

// NewFetch creates the step that retrieves candidate postings from the
// job-board provider, consulting the search cache first when configured.
func NewFetch(deps Deps) Step {
	return &fetchStep{deps: deps}
}

func (s *fetchStep) Name() string { return "fetch_jobs" }

func (s *fetchStep) Run(ctx context.Context, state SearchState) (SearchState, error) {
	if s.deps.Provider == nil {
		return state, fmt.Errorf("job provider is required")
	}
	if state.Intent == nil {
		return state, fmt.Errorf("search intent is not populated")
	}

	key := store.SearchKey(state.Intent)
	if s.deps.Cache != nil {
		if cached := s.deps.Cache.GetSearch(ctx, key); cached.Len() > 0 {
			if s.deps.Logger != nil {
				s.deps.Logger.Debug("search cache hit", zap.Int("postings", cached.Len()))
			}
			state.Postings = cached
			return state, nil
		}
	}

	query := &jobs.SearchQuery{
		Text:     state.Intent.Role,
		Location: state.Intent.Location,
		Skills:   state.Intent.Skills,
		Period:   state.Intent.PostedWithinDays,
		Limit:    state.Intent.Limit,
	}

	postings, err := s.deps.Provider.Search(ctx, query)
	if err != nil {
		return state, fmt.Errorf("search jobs: %w", err)
	}

	if postings.Len() == 0 {
		return state, ErrNoPostings
	}

	if s.deps.Cache != nil {
		s.deps.Cache.SetSearch(ctx, key, postings)
	}

	state.Postings = postings
	return state, nil
}
