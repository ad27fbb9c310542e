// Package schema turns raw language-model responses into typed records.
// Models are asked for JSON, but responses arrive as free text: possibly
// fenced, possibly with scalars of the wrong kind. The parsers here strip
// fences, decode leniently, validate required fields and apply the sentinel
// placeholder convention for list fields the model could not populate.
package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NonePresent is the sentinel placeholder stored in place of an empty list.
// Downstream display logic branches on it, so list fields are never empty
// and never null.
const NonePresent = "None present"

// SearchIntent is the structured interpretation of a free-text job query.
type SearchIntent struct {
	Role             string   `json:"role"`
	Location         string   `json:"location"`
	Skills           []string `json:"skills"`
	PostedWithinDays int      `json:"posted_within_days"`
	Limit            int      `json:"limit"`
}

// ResumeFields are the structured fields extracted from resume text.
type ResumeFields struct {
	Profile        string   `json:"profile"`
	Skills         []string `json:"skills"`
	Experience     []string `json:"experience"`
	Education      []string `json:"education"`
	Projects       []string `json:"projects"`
	Certifications []string `json:"certifications"`
}

// JobSummary is the condensed form of one job description.
type JobSummary struct {
	Summary        string   `json:"summary"`
	RequiredSkills []string `json:"required_skills"`
}

// Feedback is the improvement feedback for one resume/job pair.
type Feedback struct {
	Feedback string `json:"feedback"`
}

// ParseSearchIntent decodes a model response into a SearchIntent.
// Every field is optional; absent values stay zero and are normalized by
// the caller.
func ParseSearchIntent(raw string) (*SearchIntent, error) {
	data, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	return &SearchIntent{
		Role:             coerceString(data["role"]),
		Location:         coerceString(data["location"]),
		Skills:           coerceStringList(data["skills"], nil),
		PostedWithinDays: coerceInt(data["posted_within_days"]),
		Limit:            coerceInt(data["limit"]),
	}, nil
}

// ParseResumeFields decodes a model response into ResumeFields. List fields
// the model left out come back as the one-element sentinel list.
func ParseResumeFields(raw string) (*ResumeFields, error) {
	data, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	profile := coerceString(data["profile"])
	if profile == "" {
		profile = NonePresent
	}

	sentinel := []string{NonePresent}
	return &ResumeFields{
		Profile:        profile,
		Skills:         coerceStringList(data["skills"], sentinel),
		Experience:     coerceStringList(data["experience"], sentinel),
		Education:      coerceStringList(data["education"], sentinel),
		Projects:       coerceStringList(data["projects"], sentinel),
		Certifications: coerceStringList(data["certifications"], sentinel),
	}, nil
}

// ParseJobSummary decodes a model response into a JobSummary. The summary
// text is required; required skills default to the sentinel list.
func ParseJobSummary(raw string) (*JobSummary, error) {
	data, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	summary := coerceString(data["summary"])
	if summary == "" {
		return nil, fmt.Errorf("job summary response is missing the summary field")
	}

	return &JobSummary{
		Summary:        summary,
		RequiredSkills: coerceStringList(data["required_skills"], []string{NonePresent}),
	}, nil
}

// ParseFeedback decodes a model response into Feedback. The feedback text is
// required.
func ParseFeedback(raw string) (*Feedback, error) {
	data, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	feedback := coerceString(data["feedback"])
	if feedback == "" {
		return nil, fmt.Errorf("feedback response is missing the feedback field")
	}

	return &Feedback{Feedback: feedback}, nil
}

func decodeObject(raw string) (map[string]any, error) {
	cleaned := ExtractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}

	return data, nil
}

// ExtractJSON strips markdown code fences around a JSON payload.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

// coerceStringList accepts lists, single strings and comma-joined strings.
// Empty results are replaced with the fallback (nil fallback means nil).
func coerceStringList(v any, fallback []string) []string {
	var items []string

	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s := coerceString(item); s != "" {
				items = append(items, s)
			}
		}
	case []string:
		for _, item := range val {
			if s := strings.TrimSpace(item); s != "" {
				items = append(items, s)
			}
		}
	case string:
		for _, part := range strings.Split(val, ",") {
			if s := strings.TrimSpace(part); s != "" {
				items = append(items, s)
			}
		}
	}

	if len(items) == 0 {
		return fallback
	}
	return items
}

func coerceInt(v any) int {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) {
			return 0
		}
		return int(val)
	case int:
		return val
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
