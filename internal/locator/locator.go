// Package locator implements first-match-wins element lookup over ordered
// lists of named strategies. Isolating each selector behind a named strategy
// keeps the instability of any one of them contained and testable.
package locator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/imjacoblopez/replypilot/internal/page"
)

// Strategy is one way of locating an element. Structural-role strategies
// come before attribute-based ones in every cascade.
type Strategy struct {
	Name     string
	Selector string
}

// Cascade is an ordered list of alternative strategies. The first strategy
// whose selector matches wins; later ones are never consulted.
type Cascade []Strategy

// Selectors returns the raw selector list in cascade order.
func (c Cascade) Selectors() []string {
	sels := make([]string, len(c))
	for i, s := range c {
		sels[i] = s.Selector
	}
	return sels
}

// FirstMatch evaluates the cascade against the live page and returns the
// winning strategy. scope is an optional selector the search is rooted at;
// empty means the whole document. ok is false when nothing matched.
func (c Cascade) FirstMatch(ctx context.Context, p page.Page, scope string) (Strategy, bool, error) {
	sels, err := json.Marshal(c.Selectors())
	if err != nil {
		return Strategy{}, false, err
	}
	scopeLit, err := json.Marshal(scope)
	if err != nil {
		return Strategy{}, false, err
	}

	js := fmt.Sprintf(`
		(function() {
			const scope = %s;
			const root = scope ? document.querySelector(scope) : document;
			if (!root) return -1;
			const selectors = %s;
			for (let i = 0; i < selectors.length; i++) {
				if (root.querySelector(selectors[i])) return i;
			}
			return -1;
		})()
	`, scopeLit, sels)

	var idx int
	if err := p.Eval(ctx, js, &idx); err != nil {
		return Strategy{}, false, fmt.Errorf("locator evaluation failed: %w", err)
	}
	if idx < 0 || idx >= len(c) {
		return Strategy{}, false, nil
	}
	return c[idx], true, nil
}
