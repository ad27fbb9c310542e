package schema

import (
	"strings"
	"testing"
)

func TestParseSearchIntentCoercesValues(t *testing.T) {
	raw := `{"role": " backend engineer ", "location": "Berlin", "skills": "Go, Kubernetes", "posted_within_days": "14", "limit": 3.0}`

	intent, err := ParseSearchIntent(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if intent.Role != "backend engineer" {
		t.Fatalf("unexpected role: %q", intent.Role)
	}
	if intent.Location != "Berlin" {
		t.Fatalf("unexpected location: %q", intent.Location)
	}
	if len(intent.Skills) != 2 || intent.Skills[0] != "Go" || intent.Skills[1] != "Kubernetes" {
		t.Fatalf("unexpected skills: %v", intent.Skills)
	}
	if intent.PostedWithinDays != 14 {
		t.Fatalf("unexpected period: %d", intent.PostedWithinDays)
	}
	if intent.Limit != 3 {
		t.Fatalf("unexpected limit: %d", intent.Limit)
	}
}

func TestParseSearchIntentHandlesCodeBlock(t *testing.T) {
	raw := "```json\n{\"role\": \"data engineer\", \"skills\": [\"Python\"]}\n```"

	intent, err := ParseSearchIntent(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if intent.Role != "data engineer" {
		t.Fatalf("unexpected role: %q", intent.Role)
	}
	if len(intent.Skills) != 1 || intent.Skills[0] != "Python" {
		t.Fatalf("unexpected skills: %v", intent.Skills)
	}
}

func TestParseSearchIntentRejectsNonJSON(t *testing.T) {
	if _, err := ParseSearchIntent("I could not find anything."); err == nil {
		t.Fatalf("expected error for non-json response")
	}
}

func TestParseResumeFieldsAppliesSentinel(t *testing.T) {
	raw := `{"profile": "Senior Go developer", "skills": ["Go", "PostgreSQL"], "experience": []}`

	fields, err := ParseResumeFields(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fields.Profile != "Senior Go developer" {
		t.Fatalf("unexpected profile: %q", fields.Profile)
	}
	if len(fields.Skills) != 2 {
		t.Fatalf("unexpected skills: %v", fields.Skills)
	}

	for name, list := range map[string][]string{
		"experience":     fields.Experience,
		"education":      fields.Education,
		"projects":       fields.Projects,
		"certifications": fields.Certifications,
	} {
		if len(list) != 1 || list[0] != NonePresent {
			t.Fatalf("expected sentinel for %s, got %v", name, list)
		}
	}
}

func TestParseResumeFieldsDefaultsProfile(t *testing.T) {
	fields, err := ParseResumeFields(`{"skills": ["Go"]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fields.Profile != NonePresent {
		t.Fatalf("expected sentinel profile, got %q", fields.Profile)
	}
}

func TestParseJobSummaryRequiresSummary(t *testing.T) {
	if _, err := ParseJobSummary(`{"required_skills": ["Go"]}`); err == nil {
		t.Fatalf("expected error for missing summary")
	}

	summary, err := ParseJobSummary(`{"summary": "Build APIs in Go.", "required_skills": []}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Summary != "Build APIs in Go." {
		t.Fatalf("unexpected summary: %q", summary.Summary)
	}
	if len(summary.RequiredSkills) != 1 || summary.RequiredSkills[0] != NonePresent {
		t.Fatalf("expected sentinel skills, got %v", summary.RequiredSkills)
	}
}

func TestParseFeedbackRequiresFeedback(t *testing.T) {
	if _, err := ParseFeedback(`{}`); err == nil {
		t.Fatalf("expected error for missing feedback")
	}

	feedback, err := ParseFeedback("```\n{\"feedback\": \"Add Kubernetes experience.\"}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if feedback.Feedback != "Add Kubernetes experience." {
		t.Fatalf("unexpected feedback: %q", feedback.Feedback)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: `{"a": 1}`, want: `{"a": 1}`},
		{name: "fenced", input: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "fenced no lang", input: "```\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "padded", input: "  \n{\"a\": 1}\n  ", want: `{"a": 1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractJSON(tc.input)
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
			if strings.Contains(got, "```") {
				t.Fatalf("fence survived extraction: %q", got)
			}
		})
	}
}
