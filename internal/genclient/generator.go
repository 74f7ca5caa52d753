// Package genclient relays composed prompts to a generative-language API
// and turns the answers into sanitized reply text.
package genclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/imjacoblopez/replypilot/internal/config"
)

// ErrSafetyBlocked signals that the provider refused to return content due
// to content-policy filtering. The client recovers from this exactly once
// per request via a softened retry.
var ErrSafetyBlocked = errors.New("response blocked by provider safety filter")

// Generator is the provider interface for text generation.
type Generator interface {
	// Generate sends one blocking call and returns the first candidate's
	// raw text. Image payloads ride along as inline attachments.
	Generate(ctx context.Context, prompt string, images [][]byte) (string, error)

	// Validate reports whether the provider's credential works, based
	// solely on the success of a minimal fixed call.
	Validate(ctx context.Context) bool
}

// NewGenerator creates the provider selected by config.
func NewGenerator(ctx context.Context, cfg config.GenerationConfig, apiKey string) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiProvider(ctx, apiKey, cfg)
	case config.ProviderAnthropic:
		return NewAnthropicProvider(apiKey, cfg), nil
	default:
		return nil, fmt.Errorf("unknown generation provider: %s", cfg.Provider)
	}
}
