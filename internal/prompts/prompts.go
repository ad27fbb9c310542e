// Package prompts holds the embedded prompt templates for every model call
// in the pipeline. Templates are plain markdown with {{TOKEN}} placeholders.
package prompts

import (
	_ "embed"
	"strconv"
	"strings"
)

//go:embed intent.md
var intentTemplate string

//go:embed resume_fields.md
var resumeFieldsTemplate string

//go:embed job_summary.md
var jobSummaryTemplate string

//go:embed feedback.md
var feedbackTemplate string

// Intent renders the query-interpretation prompt.
func Intent(query string) string {
	return render(intentTemplate, map[string]string{
		"{{QUERY}}": query,
	})
}

// ResumeFields renders the resume field-extraction prompt.
func ResumeFields(resumeText string) string {
	return render(resumeFieldsTemplate, map[string]string{
		"{{RESUME_TEXT}}": resumeText,
	})
}

// JobSummary renders the job-description summarization prompt.
func JobSummary(description string) string {
	return render(jobSummaryTemplate, map[string]string{
		"{{JOB_DESCRIPTION}}": description,
	})
}

// Feedback renders the resume-improvement feedback prompt.
func Feedback(resumeProfile, resumeSkills, jobSummary, jobSkills string, score int) string {
	return render(feedbackTemplate, map[string]string{
		"{{RESUME_PROFILE}}": resumeProfile,
		"{{RESUME_SKILLS}}":  resumeSkills,
		"{{JOB_SUMMARY}}":    jobSummary,
		"{{JOB_SKILLS}}":     jobSkills,
		"{{SCORE}}":          strconv.Itoa(score),
	})
}

func render(template string, tokens map[string]string) string {
	out := template
	for token, value := range tokens {
		out = strings.ReplaceAll(out, token, strings.TrimSpace(value))
	}
	return strings.TrimSpace(out)
}
