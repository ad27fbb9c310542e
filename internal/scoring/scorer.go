// Package scoring computes the 0-100 resume-to-job similarity score.
// The actual similarity estimate is delegated to an embedding provider;
// this package only builds the documents, takes the cosine and maps it to
// the integer scale the rest of the system works with.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/ai"
	"github.com/jobscout/jobscout/internal/schema"
)

type Scorer struct {
	embedder ai.Embedder
	logger   *zap.Logger
}

func New(embedder ai.Embedder, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{embedder: embedder, logger: logger}
}

// Score embeds both documents and maps their cosine similarity to [0,100].
func (s *Scorer) Score(ctx context.Context, resumeDoc, jobDoc string) (int, error) {
	if s.embedder == nil {
		return 0, errors.New("embedder is required")
	}

	resumeVec, err := s.embedder.Embed(ctx, resumeDoc)
	if err != nil {
		return 0, fmt.Errorf("embed resume: %w", err)
	}

	jobVec, err := s.embedder.Embed(ctx, jobDoc)
	if err != nil {
		return 0, fmt.Errorf("embed job: %w", err)
	}

	similarity, err := cosine(resumeVec, jobVec)
	if err != nil {
		return 0, err
	}

	score := int(math.Round(similarity * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	s.logger.Debug("similarity computed",
		zap.Float64("cosine", similarity),
		zap.Int("score", score),
	)

	return score, nil
}

// ResumeDocument flattens resume fields into the document that gets
// embedded. Sentinel placeholders are dropped so absent sections do not
// contribute fake overlap.
func ResumeDocument(fields *schema.ResumeFields) string {
	if fields == nil {
		return ""
	}

	parts := make([]string, 0, 4)
	if fields.Profile != "" && fields.Profile != schema.NonePresent {
		parts = append(parts, fields.Profile)
	}
	parts = appendReal(parts, fields.Skills)
	parts = appendReal(parts, fields.Experience)
	parts = appendReal(parts, fields.Projects)

	return strings.Join(parts, "\n")
}

// JobDocument flattens a job summary into the document that gets embedded.
func JobDocument(summary *schema.JobSummary) string {
	if summary == nil {
		return ""
	}

	parts := make([]string, 0, 2)
	if summary.Summary != "" {
		parts = append(parts, summary.Summary)
	}
	parts = appendReal(parts, summary.RequiredSkills)

	return strings.Join(parts, "\n")
}

func appendReal(parts []string, items []string) []string {
	for _, item := range items {
		if item == "" || item == schema.NonePresent {
			continue
		}
		parts = append(parts, item)
	}
	return parts
}

func cosine(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, errors.New("embedding vectors must not be empty")
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimensions differ: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
