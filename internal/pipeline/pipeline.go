// Package pipeline runs the fixed-order job-search workflow: interpret the
// query, fetch postings, parse the resume, summarize each posting, score it,
// generate feedback and persist the results. There is no branching, no
// retry and no partial result: the first failing step aborts the run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/ai"
	"github.com/jobscout/jobscout/internal/jobs"
	"github.com/jobscout/jobscout/internal/logger"
	"github.com/jobscout/jobscout/internal/scoring"
	"github.com/jobscout/jobscout/internal/store"
)

// Step is one stage of the workflow. Steps are pure transformations over the
// state snapshot plus at most one kind of external call.
type Step interface {
	Name() string
	Run(ctx context.Context, state SearchState) (SearchState, error)
}

// JobProvider is the job-board search collaborator.
type JobProvider interface {
	Search(ctx context.Context, query *jobs.SearchQuery) (*jobs.Postings, error)
}

// SearchCache is the optional provider-result cache. A nil cache disables it.
type SearchCache interface {
	GetSearch(ctx context.Context, key string) *jobs.Postings
	SetSearch(ctx context.Context, key string, postings *jobs.Postings)
}

// ResultStore is the persistence collaborator. A nil store skips the
// persist step (one-shot CLI runs without a database).
type ResultStore interface {
	SavePosting(ctx context.Context, posting *store.JobPosting) error
	SaveAnalysis(ctx context.Context, analysis *store.JobAnalysis) error
	AddHistory(ctx context.Context, query, resumeName string) (*store.SearchRecord, error)
}

// Deps aggregates the collaborators shared across steps.
type Deps struct {
	Completer ai.Completer
	Scorer    *scoring.Scorer
	Provider  JobProvider
	Cache     SearchCache
	Store     ResultStore
	Logger    *zap.Logger
}

// Runner executes steps strictly in order for a single request. It keeps no
// state between runs.
type Runner struct {
	steps  []Step
	logger *zap.Logger
}

func NewRunner(logger *zap.Logger, steps ...Step) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{steps: steps, logger: logger}
}

// DefaultSteps wires the full workflow in its fixed order.
func DefaultSteps(deps Deps) []Step {
	return []Step{
		NewInterpret(deps),
		NewFetch(deps),
		NewParseResume(deps),
		NewSummarize(deps),
		NewScore(deps),
		NewFeedback(deps),
		NewPersist(deps),
	}
}

// Run executes every step in sequence. The first error aborts the remaining
// steps and is returned wrapped with the failing step's name.
func (r *Runner) Run(ctx context.Context, state SearchState) (SearchState, error) {
	for _, step := range r.steps {
		started := time.Now()

		next, err := step.Run(ctx, state)
		if err != nil {
			return state, fmt.Errorf("%s: %w", step.Name(), err)
		}

		r.logger.Info("pipeline step",
			zap.String(logger.FieldStep, step.Name()),
			zap.Duration("duration", time.Since(started)),
			zap.Int("postings", next.Postings.Len()),
		)

		state = next
	}

	return state, nil
}
