// Package generation is the seam between the portal and hosted language and
// image models. Callers see a single Client regardless of provider.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/protolab/prototype-portal/config"
)

var (
	// ErrGeneration is matched by every provider-side failure.
	ErrGeneration = errors.New("generation failed")
	// ErrDisabled is returned when no provider is configured.
	ErrDisabled = errors.New("generation disabled")
)

// GenerationError reports a failed call to a provider.
type GenerationError struct {
	Provider string
	Op       string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *GenerationError) Unwrap() []error {
	return []error{ErrGeneration, e.Err}
}

// TextGenerationClient produces a completion for a prompt.
type TextGenerationClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator produces an image URL or data URI for a prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type backend interface {
	name() string
	complete(ctx context.Context, prompt string) (string, error)
	image(ctx context.Context, prompt string) (string, error)
}

// Client wraps a provider with rate limiting, a per-call timeout and error
// classification. A zero or nil Client is disabled.
type Client struct {
	b       backend
	limiter *rate.Limiter
	timeout time.Duration
	log     *zap.Logger
}

// Disabled returns a client whose calls all fail with ErrDisabled.
func Disabled() *Client {
	return &Client{}
}

// New builds the client for cfg.Provider. Generation is disabled, not an
// error, when the provider has no usable key.
func New(ctx context.Context, cfg config.GenerationConfig, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if !cfg.Enabled() {
		log.Info("text generation disabled", zap.String("provider", cfg.Provider))
		return Disabled(), nil
	}

	var (
		b   backend
		err error
	)
	switch cfg.Provider {
	case "ollama":
		b, err = newOllama(cfg)
	default:
		b, err = newGenAI(ctx, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("generation: %w", err)
	}

	log.Info("text generation enabled", zap.String("provider", b.name()))
	return newClient(b, cfg.RatePerSec, cfg.RateBurst, cfg.Timeout, log), nil
}

func newClient(b backend, perSec float64, burst int, timeout time.Duration, log *zap.Logger) *Client {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(perSec)
	if perSec <= 0 {
		limit = rate.Inf
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		b:       b,
		limiter: rate.NewLimiter(limit, burst),
		timeout: timeout,
		log:     log.Named("generation"),
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.b != nil
}

// Provider names the active backend, or "disabled".
func (c *Client) Provider() string {
	if !c.Enabled() {
		return "disabled"
	}
	return c.b.name()
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.call(ctx, "complete", prompt, func(ctx context.Context) (string, error) {
		return c.b.complete(ctx, prompt)
	})
}

func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return c.call(ctx, "image", prompt, func(ctx context.Context) (string, error) {
		return c.b.image(ctx, prompt)
	})
}

func (c *Client) call(ctx context.Context, op, prompt string, fn func(context.Context) (string, error)) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", &GenerationError{Provider: c.b.name(), Op: op, Err: err}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := fn(ctx)
	if err != nil {
		if errors.Is(err, ErrDisabled) {
			return "", err
		}
		c.log.Warn("generation call failed",
			zap.String("provider", c.b.name()),
			zap.String("op", op),
			zap.Int("prompt_len", len(prompt)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", &GenerationError{Provider: c.b.name(), Op: op, Err: err}
	}
	if strings.TrimSpace(out) == "" {
		return "", &GenerationError{Provider: c.b.name(), Op: op, Err: errors.New("empty response")}
	}

	c.log.Debug("generation call done",
		zap.String("provider", c.b.name()),
		zap.String("op", op),
		zap.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}
