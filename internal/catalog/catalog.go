// Package catalog generates product listings for the shopping-manager
// catalog page and fills the listing form in place.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/imjacoblopez/replypilot/internal/locator"
	"github.com/imjacoblopez/replypilot/internal/page"
	"github.com/imjacoblopez/replypilot/internal/types"
)

// ExtractProductType derives the product type from the image URL.
func ExtractProductType(url string) string {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "hoodie"):
		return "hoodie"
	case strings.Contains(lower, "shirt"):
		return "shirt"
	case strings.Contains(lower, "hat"):
		return "hat"
	default:
		return "apparel"
	}
}

var jsonObject = regexp.MustCompile(`(?s)(\{.*\})`)

// ParseListing extracts the {title, description} object from the model's
// answer, tolerating markdown code fences, and stamps the constant brand.
func ParseListing(raw, brand string) (types.ProductListing, error) {
	cleaned := stripFences(raw)

	// The model occasionally wraps the object in prose despite the
	// prompt; fall back to the first JSON object in the text.
	if !strings.HasPrefix(cleaned, "{") {
		if m := jsonObject.FindStringSubmatch(cleaned); len(m) > 1 {
			cleaned = m[1]
		}
	}

	var listing types.ProductListing
	if err := json.Unmarshal([]byte(cleaned), &listing); err != nil {
		return types.ProductListing{}, fmt.Errorf("failed to parse product listing JSON: %w (response was: %s)", err, raw)
	}
	if listing.Title == "" || listing.Description == "" {
		return types.ProductListing{}, fmt.Errorf("product listing is missing title or description")
	}

	listing.Brand = brand
	return listing, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Filler writes a listing into the catalog form.
type Filler struct {
	page page.Page
}

// NewFiller creates a form filler over the given page.
func NewFiller(p page.Page) *Filler {
	return &Filler{page: p}
}

// Fill sets the title, description and brand fields and dispatches input
// events so the page's framework picks the values up. A missing field is
// skipped, not an error; the form layout is not under our control.
func (f *Filler) Fill(ctx context.Context, listing types.ProductListing) error {
	fields := []struct {
		selector string
		value    string
	}{
		{locator.CatalogTitleInput, listing.Title},
		{locator.CatalogDescInput, listing.Description},
		{locator.CatalogBrandInput, listing.Brand},
	}

	for _, field := range fields {
		selLit, err := json.Marshal(field.selector)
		if err != nil {
			return err
		}
		valLit, err := json.Marshal(field.value)
		if err != nil {
			return err
		}

		js := fmt.Sprintf(`
			(function() {
				const el = document.querySelector(%s);
				if (!el) return false;
				el.value = %s;
				el.dispatchEvent(new Event('input', { bubbles: true }));
				return true;
			})()
		`, selLit, valLit)

		var ok bool
		if err := f.page.Eval(ctx, js, &ok); err != nil {
			return fmt.Errorf("failed to fill catalog field: %w", err)
		}
	}

	return nil
}
