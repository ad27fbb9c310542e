package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("  secret-value \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	secret, err := Load(Source{Name: "api token", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if secret != "secret-value" {
		t.Fatalf("expected trimmed secret, got %q", secret)
	}
}

func TestLoadFromValue(t *testing.T) {
	secret, err := Load(Source{Name: "api token", Value: " inline "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if secret != "inline" {
		t.Fatalf("expected trimmed secret, got %q", secret)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Source{Name: "api token", File: filepath.Join(t.TempDir(), "missing")})
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "api token") {
		t.Fatalf("expected secret name in error, got %v", err)
	}
}

func TestLoadEmptySource(t *testing.T) {
	if _, err := Load(Source{Name: "api token"}); err == nil {
		t.Fatalf("expected error when nothing is configured")
	}
}
