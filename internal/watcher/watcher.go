// Package watcher observes the live page for newly inserted posts, injects
// the per-post Generate controls, and surfaces user clicks as a lazy,
// non-restartable stream of triggers.
package watcher

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/imjacoblopez/replypilot/internal/config"
	"github.com/imjacoblopez/replypilot/internal/locator"
	"github.com/imjacoblopez/replypilot/internal/page"
	"github.com/imjacoblopez/replypilot/internal/types"
)

// Trigger is one user click on an injected control.
type Trigger struct {
	// ID is the post's processed-marker id; 0 for catalog triggers.
	ID   int               `json:"id"`
	Kind types.RequestKind `json:"kind"`
	// ImageURL is only set for catalog (product) triggers.
	ImageURL string `json:"imageUrl"`
}

// Handle returns the selector scoping the trigger's post article.
func (t Trigger) Handle() string {
	return fmt.Sprintf(`article[data-rp-id="%d"]`, t.ID)
}

// NavState is the explicit last-URL state used to detect SPA navigation.
// It is initialized once on load and updated on every check.
type NavState struct {
	last string
}

// NewNavState creates navigation state primed with the initial URL.
func NewNavState(initial string) *NavState {
	return &NavState{last: initial}
}

// Changed records the current URL and reports whether it differs from the
// previous one.
func (n *NavState) Changed(current string) bool {
	if current == n.last {
		return false
	}
	n.last = current
	return true
}

// Last returns the most recently observed URL.
func (n *NavState) Last() string {
	return n.last
}

// Watcher arms page-side observation and drains the trigger queue.
type Watcher struct {
	page           page.Page
	nav            *NavState
	interval       time.Duration
	catalogEnabled bool

	timelineArmed bool
}

// New creates a watcher over the given page. The navigation state is
// injected rather than read as an ambient global.
func New(p page.Page, nav *NavState, cfg config.BrowserConfig, catalogEnabled bool) *Watcher {
	return &Watcher{
		page:           p,
		nav:            nav,
		interval:       time.Duration(cfg.WatchIntervalMs) * time.Millisecond,
		catalogEnabled: catalogEnabled,
	}
}

// Events returns the trigger stream. The channel is closed when ctx ends;
// the stream cannot be restarted afterwards. Each tick re-checks
// navigation, re-arms observation when needed and drains pending clicks.
func (w *Watcher) Events(ctx context.Context) <-chan Trigger {
	out := make(chan Trigger)

	go func() {
		defer close(out)

		w.arm(ctx)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			url, err := w.page.Location(ctx)
			if err != nil {
				log.Printf("Failed to read page location: %v", err)
				continue
			}
			if w.nav.Changed(url) {
				log.Printf("Navigation detected: %s", url)
				w.timelineArmed = false
				w.arm(ctx)
			} else if !w.timelineArmed {
				w.arm(ctx)
			}

			for _, t := range w.drain(ctx) {
				select {
				case out <- t:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// arm installs the page-side controls appropriate for the current URL.
// Arming is idempotent: processed-marker attributes prevent duplicate
// buttons and observers.
func (w *Watcher) arm(ctx context.Context) {
	if w.catalogEnabled && isCatalogURL(w.nav.Last()) {
		if err := w.page.Eval(ctx, armCatalogJS, nil); err != nil {
			log.Printf("Failed to arm catalog page: %v", err)
		}
		return
	}

	var armed bool
	if err := w.page.Eval(ctx, armTimelineJS, &armed); err != nil {
		log.Printf("Failed to arm timeline: %v", err)
		return
	}
	w.timelineArmed = armed
}

// drain pulls queued clicks out of the page.
func (w *Watcher) drain(ctx context.Context) []Trigger {
	var triggers []Trigger
	if err := w.page.Eval(ctx, drainQueueJS, &triggers); err != nil {
		log.Printf("Failed to drain trigger queue: %v", err)
		return nil
	}
	return triggers
}

// SetBusy toggles the injected controls for a post. Terminal cycle states
// must always restore the controls, whichever path was taken.
func (w *Watcher) SetBusy(ctx context.Context, t Trigger, busy bool) {
	var js string
	if t.Kind == types.KindProduct {
		js = fmt.Sprintf(resetCatalogButtonJS, busy)
	} else {
		js = fmt.Sprintf(resetPostButtonsJS, t.ID, busy)
	}
	if err := w.page.Eval(ctx, js, nil); err != nil {
		log.Printf("Failed to update control state: %v", err)
	}
}

func isCatalogURL(url string) bool {
	return strings.Contains(url, locator.CatalogURLFragment)
}
