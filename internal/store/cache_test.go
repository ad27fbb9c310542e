package store

import (
	"testing"

	"github.com/jobscout/jobscout/internal/schema"
)

func TestSearchKeyIsStable(t *testing.T) {
	intent := &schema.SearchIntent{
		Role:             "go developer",
		Location:         "Berlin",
		Skills:           []string{"Go", "PostgreSQL"},
		PostedWithinDays: 7,
		Limit:            5,
	}

	first := SearchKey(intent)
	second := SearchKey(intent)

	if first == "" {
		t.Fatalf("expected non-empty key")
	}
	if first != second {
		t.Fatalf("identical intents must produce the same key: %q vs %q", first, second)
	}
}

func TestSearchKeyDiffersByIntent(t *testing.T) {
	base := &schema.SearchIntent{Role: "go developer", Limit: 5}
	other := &schema.SearchIntent{Role: "data engineer", Limit: 5}

	if SearchKey(base) == SearchKey(other) {
		t.Fatalf("different intents must produce different keys")
	}
}
