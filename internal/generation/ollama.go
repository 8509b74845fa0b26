package generation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/protolab/prototype-portal/config"
)

// ollamaBackend talks to a local Ollama server. It has no image model.
type ollamaBackend struct {
	api   *api.Client
	model string
}

func newOllama(cfg config.GenerationConfig) (*ollamaBackend, error) {
	u, err := url.ParseRequestURI(cfg.OllamaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base url: %w", err)
	}
	return &ollamaBackend{
		api:   api.NewClient(u, &http.Client{Timeout: cfg.Timeout}),
		model: cfg.OllamaModel,
	}, nil
}

func (o *ollamaBackend) name() string { return "ollama" }

func (o *ollamaBackend) complete(ctx context.Context, prompt string) (string, error) {
	stream := false
	var sb strings.Builder
	err := o.api.Generate(ctx, &api.GenerateRequest{Model: o.model, Prompt: prompt, Stream: &stream}, func(r api.GenerateResponse) error {
		sb.WriteString(r.Response)
		return nil
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (o *ollamaBackend) image(context.Context, string) (string, error) {
	return "", fmt.Errorf("ollama images: %w", ErrDisabled)
}
