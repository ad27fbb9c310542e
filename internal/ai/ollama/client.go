package ollama

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const defaultModel = "llama3"

// Client is an ai.Completer backed by a local Ollama server. It is meant for
// offline runs where sending resumes to a hosted provider is undesirable.
type Client struct {
	llm       *ollama.LLM
	modelName string
}

// New creates a Client talking to the Ollama server at serverURL.
func New(serverURL, model string) (*Client, error) {
	serverURL = strings.TrimSpace(serverURL)
	if serverURL == "" {
		return nil, errors.New("ollama server url is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	llm, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(serverURL))
	if err != nil {
		return nil, fmt.Errorf("init ollama: %w", err)
	}

	return &Client{llm: llm, modelName: model}, nil
}

// Complete sends the prompt in JSON mode. All jobscout prompts request a JSON
// object, so JSON mode keeps smaller local models on the rails.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.llm == nil {
		return "", errors.New("ollama client is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	res, err := c.llm.Call(ctx, prompt, llms.WithJSONMode())
	if err != nil {
		return "", fmt.Errorf("ollama call: %w", err)
	}

	output := strings.TrimSpace(res)
	if output == "" {
		return "", errors.New("ollama returned empty response")
	}

	return output, nil
}

// Embed returns the embedding vector for text using the same model.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	if c == nil || c.llm == nil {
		return nil, errors.New("ollama client is not initialized")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text must not be empty")
	}

	vectors, err := c.llm.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("ollama embedding: %w", err)
	}

	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, errors.New("ollama returned empty embedding")
	}

	out := make([]float64, len(vectors[0]))
	for i, v := range vectors[0] {
		out[i] = float64(v)
	}

	return out, nil
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}
