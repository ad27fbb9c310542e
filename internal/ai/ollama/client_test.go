package ollama

import (
	"context"
	"testing"
)

func TestNewRequiresServerURL(t *testing.T) {
	if _, err := New("  ", "llama3"); err == nil {
		t.Fatalf("expected error for empty server url")
	}
}

func TestNewDefaultsModel(t *testing.T) {
	client, err := New("http://localhost:11434", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.Model() != defaultModel {
		t.Fatalf("expected default model, got %q", client.Model())
	}
}

func TestCompleteRequiresInitializedClient(t *testing.T) {
	var client *Client
	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error for nil client")
	}
}

func TestCompleteRejectsEmptyPrompt(t *testing.T) {
	client, err := New("http://localhost:11434", "llama3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.Complete(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for empty prompt")
	}
}

func TestEmbedRejectsEmptyText(t *testing.T) {
	client, err := New("http://localhost:11434", "llama3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.Embed(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for empty text")
	}
}
