package types

import "time"

// Context is the structured summary of a scraped post, built once per
// generation request and discarded after the API round-trip.
type Context struct {
	Text         string    `json:"text"`
	Author       string    `json:"author,omitempty"`
	ParentText   string    `json:"parent_text,omitempty"`
	QuotedText   string    `json:"quoted_text,omitempty"`
	QuotedAuthor string    `json:"quoted_author,omitempty"`
	Images       [][]byte  `json:"images,omitempty"`
	ImageURLs    []string  `json:"image_urls,omitempty"`
	Timestamp    time.Time `json:"timestamp"`

	// ProductImageURL and ProductType are only set for product-listing
	// requests originating from the catalog page.
	ProductImageURL string `json:"product_image_url,omitempty"`
	ProductType     string `json:"product_type,omitempty"`
}

// HasImages reports whether the context carries any image payloads.
// Images is either nil or non-empty; failed fetches are dropped, never
// kept as placeholders.
func (c Context) HasImages() bool {
	return len(c.Images) > 0
}

// RequestKind identifies what the user asked the agent to generate.
type RequestKind string

const (
	KindReply       RequestKind = "reply"
	KindQuote       RequestKind = "quote"
	KindProduct     RequestKind = "product"
	KindValidateKey RequestKind = "validate-key"
)

// GenerationRequest pairs a request kind with the scraped context.
// Requests are stateless; they have no identity beyond the call.
type GenerationRequest struct {
	Kind    RequestKind
	Context Context
}

// GenerationResult is the uniform response shape for every request kind.
// Either Text or Err is set, never both.
type GenerationResult struct {
	Success bool   `json:"success"`
	Text    string `json:"text,omitempty"`
	Err     string `json:"error,omitempty"`
}

// Failure builds a failed result carrying a human-readable message.
func Failure(msg string) GenerationResult {
	return GenerationResult{Success: false, Err: msg}
}

// Succeed builds a successful result carrying sanitized text.
func Succeed(text string) GenerationResult {
	return GenerationResult{Success: true, Text: text}
}

// ProductListing is the parsed product-generation answer used to fill the
// catalog form. Brand is constant and never comes from the model.
type ProductListing struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Brand       string `json:"-"`
}
