// Package ai defines the capability interfaces the pipeline uses to talk to
// language-model providers. The pipeline never depends on a vendor SDK
// directly; it consumes these interfaces so providers can be substituted,
// including deterministic fakes in tests.
package ai

import "context"

// Completer produces free text for a prompt. Responses that must be
// structured are decoded downstream by the schema package.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Embedder maps a text document to a dense vector for similarity scoring.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}
