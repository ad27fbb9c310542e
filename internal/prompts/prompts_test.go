package prompts

import (
	"strings"
	"testing"
)

func TestIntentRendersQuery(t *testing.T) {
	prompt := Intent("remote golang jobs in Berlin")

	if !strings.Contains(prompt, "remote golang jobs in Berlin") {
		t.Fatalf("query not rendered into prompt: %s", prompt)
	}
	if strings.Contains(prompt, "{{QUERY}}") {
		t.Fatalf("placeholder survived rendering")
	}
}

func TestResumeFieldsRendersText(t *testing.T) {
	prompt := ResumeFields("  Ten years of Go experience.  ")

	if !strings.Contains(prompt, "Ten years of Go experience.") {
		t.Fatalf("resume text not rendered into prompt: %s", prompt)
	}
	if strings.Contains(prompt, "{{RESUME_TEXT}}") {
		t.Fatalf("placeholder survived rendering")
	}
}

func TestJobSummaryRendersDescription(t *testing.T) {
	prompt := JobSummary("We are hiring a platform engineer.")

	if !strings.Contains(prompt, "We are hiring a platform engineer.") {
		t.Fatalf("description not rendered into prompt: %s", prompt)
	}
	if strings.Contains(prompt, "{{JOB_DESCRIPTION}}") {
		t.Fatalf("placeholder survived rendering")
	}
}

func TestFeedbackRendersAllTokens(t *testing.T) {
	prompt := Feedback("Backend developer", "Go, SQL", "Build APIs", "Go, Kubernetes", 72)

	for _, want := range []string{"Backend developer", "Go, SQL", "Build APIs", "Go, Kubernetes", "72"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected %q in prompt: %s", want, prompt)
		}
	}

	if strings.Contains(prompt, "{{") {
		t.Fatalf("placeholder survived rendering: %s", prompt)
	}
}
