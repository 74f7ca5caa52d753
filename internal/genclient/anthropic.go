package genclient

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/imjacoblopez/replypilot/internal/config"
)

// AnthropicProvider implements Generator using Anthropic's Claude API.
type AnthropicProvider struct {
	client *anthropic.Client
	model  string
	cfg    config.GenerationConfig
}

// NewAnthropicProvider creates a new Anthropic provider
func NewAnthropicProvider(apiKey string, cfg config.GenerationConfig) *AnthropicProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &AnthropicProvider{
		client: &client,
		model:  cfg.Model,
		cfg:    cfg,
	}
}

// Generate sends the prompt to Claude and returns the first text block.
func (c *AnthropicProvider) Generate(ctx context.Context, prompt string, images [][]byte) (string, error) {
	blocks := []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(prompt)}
	for _, img := range images {
		encoded := base64.StdEncoding.EncodeToString(img)
		blocks = append(blocks, anthropic.NewImageBlockBase64("image/jpeg", encoded))
	}

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:         anthropic.Model(c.model),
		MaxTokens:     int64(c.cfg.MaxOutputTokens),
		Temperature:   anthropic.Float(c.cfg.Temperature),
		TopP:          anthropic.Float(c.cfg.TopP),
		StopSequences: stopSequences,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Claude API call failed: %w", err)
	}

	if string(message.StopReason) == "refusal" {
		return "", ErrSafetyBlocked
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}
	if responseText == "" {
		return "", fmt.Errorf("Claude returned an empty response")
	}

	return responseText, nil
}

// Validate sends a minimal fixed prompt; validity is call success only.
func (c *AnthropicProvider) Validate(ctx context.Context) bool {
	_, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 10,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("Hello")),
		},
	})
	return err == nil
}
