package pipeline

import (
	"fmt"
	"strings"

	"github.com/jobscout/jobscout/internal/jobs"
	"github.com/jobscout/jobscout/internal/resume"
	"github.com/jobscout/jobscout/internal/schema"
	"github.com/jobscout/jobscout/internal/store"
)

// SearchState is the snapshot passed between steps. Each step consumes one
// snapshot and returns a new one with the fields it owns populated; no step
// may read a field an earlier step has not set.
type SearchState struct {
	// Request input, set before the run starts.
	Query      string
	ResumeName string
	ResumeData []byte

	// Set by the interpret step.
	Intent *schema.SearchIntent

	// Set by the fetch step.
	Postings *jobs.Postings

	// Set by the parse-resume step.
	ResumeText string
	Resume     *schema.ResumeFields

	// Set by the summarize, score and feedback steps, keyed by posting id.
	Summaries map[string]*schema.JobSummary
	Scores    map[string]int
	Feedback  map[string]string

	// Set by the persist step.
	History *store.SearchRecord
}

// NewSearchState builds the initial snapshot for one request.
func NewSearchState(query, resumeName string, resumeData []byte) SearchState {
	return SearchState{
		Query:      strings.TrimSpace(query),
		ResumeName: resumeName,
		ResumeData: resumeData,
		Summaries:  make(map[string]*schema.JobSummary),
		Scores:     make(map[string]int),
		Feedback:   make(map[string]string),
	}
}

// ValidateInput rejects bad requests before the run starts: empty queries
// and resume formats the extractor cannot read. This happens before any
// model call.
func ValidateInput(query, resumeName string, resumeData []byte) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query must not be empty")
	}
	if len(resumeData) == 0 {
		return fmt.Errorf("resume file must not be empty")
	}

	supported := false
	lower := strings.ToLower(resumeName)
	for _, ext := range resume.SupportedExtensions {
		if strings.HasSuffix(lower, ext) {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("%w: %q (supported: %s)",
			resume.ErrUnsupportedFormat, resumeName, strings.Join(resume.SupportedExtensions, ", "))
	}

	return nil
}
