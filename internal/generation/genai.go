package generation

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/protolab/prototype-portal/config"
)

type genaiBackend struct {
	client     *genai.Client
	model      string
	imageModel string
}

func newGenAI(ctx context.Context, cfg config.GenerationConfig) (*genaiBackend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &genaiBackend{client: client, model: cfg.Model, imageModel: cfg.ImageModel}, nil
}

func (g *genaiBackend) name() string { return "genai" }

func (g *genaiBackend) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (g *genaiBackend) image(ctx context.Context, prompt string) (string, error) {
	if g.imageModel == "" {
		return "", fmt.Errorf("genai images: %w", ErrDisabled)
	}
	resp, err := g.client.Models.GenerateImages(ctx, g.imageModel, prompt, nil)
	if err != nil {
		return "", err
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return "", errors.New("no image returned")
	}
	img := resp.GeneratedImages[0].Image
	if img.GCSURI != "" {
		return img.GCSURI, nil
	}
	return dataURI(img.MIMEType, img.ImageBytes), nil
}

func dataURI(mime string, b []byte) string {
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b)
}
