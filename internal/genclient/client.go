package genclient

import (
	"context"
	"errors"

	"github.com/imjacoblopez/replypilot/internal/composer"
	"github.com/imjacoblopez/replypilot/internal/types"
)

// friendlyHint is always appended to the composed prompt; it measurably
// lowers the safety-filter rejection rate.
const friendlyHint = "\nIMPORTANT: Generate a friendly, non-controversial response."

// softenSuffix is appended to the context text on the single automatic
// retry after a safety block.
const softenSuffix = " (please generate a friendly response)"

// Client turns generation requests into sanitized text. It owns prompt
// composition, the one-shot safety retry and output sanitization; the
// wire-level call is delegated to the Generator.
type Client struct {
	gen     Generator
	profile composer.StyleProfile
}

// NewClient creates a client over the given provider.
func NewClient(gen Generator, profile composer.StyleProfile) *Client {
	return &Client{gen: gen, profile: profile}
}

// Do executes one generation request. If the provider reports a
// safety-filter rejection, exactly one retry is issued with a softened
// context; whatever that attempt yields, success or failure, is final.
func (c *Client) Do(ctx context.Context, req types.GenerationRequest) types.GenerationResult {
	text, err := c.gen.Generate(ctx, c.Prompt(req), req.Context.Images)
	if errors.Is(err, ErrSafetyBlocked) {
		softened := req
		softened.Context.Text += softenSuffix
		text, err = c.gen.Generate(ctx, c.Prompt(softened), softened.Context.Images)
	}
	if err != nil {
		return types.Failure(err.Error())
	}
	return types.Succeed(Sanitize(text))
}

// ValidateKey reports whether the provider credential works.
func (c *Client) ValidateKey(ctx context.Context) bool {
	return c.gen.Validate(ctx)
}

// Prompt returns the composed prompt for a request. Exposed so callers can
// record exactly what was sent.
func (c *Client) Prompt(req types.GenerationRequest) string {
	switch req.Kind {
	case types.KindQuote:
		return composer.ComposeQuote(req.Context, c.profile) + friendlyHint
	case types.KindProduct:
		return composer.ComposeProduct(req.Context.ProductImageURL, req.Context.ProductType)
	default:
		return composer.Compose(req.Context, c.profile) + friendlyHint
	}
}
