package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/prompts"
	"github.com/jobscout/jobscout/internal/resume"
	"github.com/jobscout/jobscout/internal/schema"
)

type parseResumeStep struct {
	deps Deps
}

// NewParseResume creates the step that extracts text from the uploaded
// resume and turns it into structured fields. Extraction failures abort the
// step before the model is called.
func NewParseResume(deps Deps) Step {
	return &parseResumeStep{deps: deps}
}

func (s *parseResumeStep) Name() string { return "parse_resume" }

func (s *parseResumeStep) Run(ctx context.Context, state SearchState) (SearchState, error) {
	if s.deps.Completer == nil {
		return state, fmt.Errorf("completion provider is required")
	}

	text, err := resume.ExtractText(state.ResumeName, state.ResumeData)
	if err != nil {
		return state, err
	}

	if s.deps.Logger != nil {
		s.deps.Logger.Debug("resume text extracted",
			zap.String("filename", state.ResumeName),
			zap.Int("characters", len(text)),
		)
	}

	raw, err := s.deps.Completer.Complete(ctx, prompts.ResumeFields(text))
	if err != nil {
		return state, fmt.Errorf("extract resume fields: %w", err)
	}

	fields, err := schema.ParseResumeFields(raw)
	if err != nil {
		return state, err
	}

	state.ResumeText = text
	state.Resume = fields
	return state, nil
}
