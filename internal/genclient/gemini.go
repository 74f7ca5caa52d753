package genclient

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/imjacoblopez/replypilot/internal/config"
)

// stopSequences cut the model off before it starts explaining itself.
var stopSequences = []string{"(", "Note:", "This reply", "Why this works"}

// GeminiProvider implements Generator using the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
	cfg    config.GenerationConfig
}

// NewGeminiProvider creates a Gemini provider authenticated with the given key.
func NewGeminiProvider(ctx context.Context, apiKey string, cfg config.GenerationConfig) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, model: cfg.Model, cfg: cfg}, nil
}

// Generate sends the prompt (plus inline images, when present) with the
// fixed generation parameters and returns the first candidate's text.
func (g *GeminiProvider) Generate(ctx context.Context, prompt string, images [][]byte) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	for _, img := range images {
		parts = append(parts, genai.NewPartFromBytes(img, "image/jpeg"))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, g.generationConfig())
	if err != nil {
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason == genai.BlockedReasonSafety {
		return "", ErrSafetyBlocked
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("Gemini returned no candidates")
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return "", ErrSafetyBlocked
	}
	if cand.Content == nil || len(cand.Content.Parts) == 0 || cand.Content.Parts[0].Text == "" {
		return "", fmt.Errorf("Gemini returned an empty response")
	}

	return cand.Content.Parts[0].Text, nil
}

// Validate sends a minimal fixed prompt and reports validity purely from
// whether the call succeeds; the response content is ignored.
func (g *GeminiProvider) Validate(ctx context.Context) bool {
	_, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text("Hello"),
		&genai.GenerateContentConfig{MaxOutputTokens: 10},
	)
	return err == nil
}

// generationConfig returns the fixed per-install generation parameters.
// These are deliberately not tunable per call.
func (g *GeminiProvider) generationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(g.cfg.Temperature)),
		TopP:            genai.Ptr(float32(g.cfg.TopP)),
		TopK:            genai.Ptr(float32(g.cfg.TopK)),
		MaxOutputTokens: int32(g.cfg.MaxOutputTokens),
		StopSequences:   stopSequences,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
		},
	}
}
