// Package insight adapts hosted language models to the insight generator port.
package insight

import (
	"context"
	"errors"
	"fmt"

	appinsight "github.com/fintrak/backend/internal/application/insight"
	"github.com/fintrak/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ErrNotConfigured is returned by the disabled generator
var ErrNotConfigured = errors.New("insight API key is not configured")

// GeminiGenerator calls the Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a client for the Gemini developer API
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate implements insight.Generator
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", g.model, err)
	}
	return resp.Text(), nil
}

// DisabledGenerator always fails with ErrNotConfigured
type DisabledGenerator struct{}

// Generate implements insight.Generator
func (DisabledGenerator) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

// NewGenerator returns a Gemini generator when an API key is configured and
// the disabled generator otherwise
func NewGenerator(ctx context.Context, cfg config.InsightConfig, logger *zap.Logger) (appinsight.Generator, error) {
	if cfg.APIKey == "" {
		logger.Warn("insight API key missing; insights will be unavailable")
		return DisabledGenerator{}, nil
	}
	return NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model)
}

var (
	_ appinsight.Generator = (*GeminiGenerator)(nil)
	_ appinsight.Generator = DisabledGenerator{}
)
