// Package agent ties the pipeline together: it consumes watcher triggers
// and runs each one through the acquire, generate, inject cycle. Cycles
// are sequential; one failed cycle never takes the agent down.
package agent

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/imjacoblopez/replypilot/internal/catalog"
	"github.com/imjacoblopez/replypilot/internal/config"
	"github.com/imjacoblopez/replypilot/internal/extractor"
	"github.com/imjacoblopez/replypilot/internal/genclient"
	"github.com/imjacoblopez/replypilot/internal/injector"
	"github.com/imjacoblopez/replypilot/internal/notify"
	"github.com/imjacoblopez/replypilot/internal/page"
	"github.com/imjacoblopez/replypilot/internal/scheduler"
	"github.com/imjacoblopez/replypilot/internal/store"
	"github.com/imjacoblopez/replypilot/internal/types"
	"github.com/imjacoblopez/replypilot/internal/watcher"
)

// cycleTimeout bounds a single trigger-to-injection cycle.
const cycleTimeout = 2 * time.Minute

// Agent is the long-running orchestrator.
type Agent struct {
	cfg       *config.Config
	page      page.Page
	watcher   *watcher.Watcher
	extractor *extractor.Extractor
	client    *genclient.Client
	injector  *injector.Injector
	filler    *catalog.Filler
	notifier  *notify.Notifier
	store     *store.Store
}

// New wires an agent from its already-constructed parts.
func New(cfg *config.Config, p page.Page, w *watcher.Watcher, e *extractor.Extractor,
	c *genclient.Client, inj *injector.Injector, f *catalog.Filler,
	n *notify.Notifier, s *store.Store) *Agent {
	return &Agent{
		cfg:       cfg,
		page:      p,
		watcher:   w,
		extractor: e,
		client:    c,
		injector:  inj,
		filler:    f,
		notifier:  n,
		store:     s,
	}
}

// Run consumes triggers until ctx ends. Triggers queued while a cycle is
// in flight are handled afterwards, in order.
func (a *Agent) Run(ctx context.Context) error {
	log.Println("Agent running, watching for triggers")

	for t := range a.watcher.Events(ctx) {
		a.handleTrigger(ctx, t)
	}

	return ctx.Err()
}

// handleTrigger runs one full cycle. The busy state set here is always
// restored on exit, whichever path the cycle took.
func (a *Agent) handleTrigger(ctx context.Context, t watcher.Trigger) {
	log.Printf("Handling trigger: kind=%s id=%d", t.Kind, t.ID)

	cycleCtx, cancel := context.WithTimeout(ctx, cycleTimeout)
	defer cancel()

	a.watcher.SetBusy(cycleCtx, t, true)
	defer a.watcher.SetBusy(cycleCtx, t, false)

	switch t.Kind {
	case types.KindProduct:
		a.runProductCycle(cycleCtx, t)
	default:
		a.runPostCycle(cycleCtx, t)
	}
}

// HandleRequest is the uniform request dispatcher. Every kind resolves to
// a {success, text | error} result; callers never see a raw provider error.
func (a *Agent) HandleRequest(ctx context.Context, req types.GenerationRequest) types.GenerationResult {
	switch req.Kind {
	case types.KindValidateKey:
		if a.client.ValidateKey(ctx) {
			return types.Succeed("API key is valid")
		}
		return types.Failure("API key validation failed")
	default:
		return a.client.Do(ctx, req)
	}
}

// runPostCycle handles a reply or quote trigger: extract the post, generate
// text, inject it into the compose input.
func (a *Agent) runPostCycle(ctx context.Context, t watcher.Trigger) {
	c, err := a.extractor.Extract(ctx, a.page, t.Handle())
	if err != nil {
		log.Printf("Extraction failed for post %d: %v", t.ID, err)
		a.notifier.Error(ctx, fmt.Sprintf("Could not read the post: %v", err))
		return
	}

	req := types.GenerationRequest{Kind: t.Kind, Context: c}
	result := a.HandleRequest(ctx, req)

	rec := &store.Generation{
		Kind:    string(t.Kind),
		PostID:  t.ID,
		Author:  c.Author,
		Prompt:  a.client.Prompt(req),
		Output:  result.Text,
		Success: result.Success,
		Error:   result.Err,
	}

	if !result.Success {
		log.Printf("Generation failed for post %d: %s", t.ID, result.Err)
		a.notifier.Error(ctx, "Generation failed: "+result.Err)
		a.record(rec, result)
		return
	}

	injRes := a.injector.Inject(ctx, t.Handle(), t.Kind, result.Text)
	rec.Fallback = injRes.ClipboardFallback

	switch {
	case injRes.State == injector.StateFailed:
		log.Printf("Injection failed for post %d: %v", t.ID, injRes.Err)
		a.notifier.Error(ctx, fmt.Sprintf("Could not insert the text: %v", injRes.Err))
		rec.Success = false
		rec.Error = injRes.Err.Error()
	case injRes.ClipboardFallback:
		a.notifier.Info(ctx, "Text copied to clipboard, paste it into the compose box")
	default:
		log.Printf("Cycle done for post %d (strategy %q)", t.ID, injRes.Strategy)
	}

	a.record(rec, result)
}

// runProductCycle handles a catalog trigger: generate a listing from the
// product image and fill the catalog form.
func (a *Agent) runProductCycle(ctx context.Context, t watcher.Trigger) {
	if t.ImageURL == "" {
		a.notifier.Error(ctx, "No product image found on this page")
		return
	}

	req := types.GenerationRequest{
		Kind: types.KindProduct,
		Context: types.Context{
			ProductImageURL: t.ImageURL,
			ProductType:     catalog.ExtractProductType(t.ImageURL),
			Timestamp:       time.Now(),
		},
	}
	result := a.HandleRequest(ctx, req)

	rec := &store.Generation{
		Kind:    string(types.KindProduct),
		Prompt:  a.client.Prompt(req),
		Output:  result.Text,
		Success: result.Success,
		Error:   result.Err,
	}

	if !result.Success {
		a.notifier.Error(ctx, "Product generation failed: "+result.Err)
		a.record(rec, result)
		return
	}

	listing, err := catalog.ParseListing(result.Text, a.cfg.Catalog.Brand)
	if err != nil {
		log.Printf("Could not parse product listing: %v", err)
		a.notifier.Error(ctx, "Product generation returned an unusable answer")
		rec.Success = false
		rec.Error = err.Error()
		a.record(rec, result)
		return
	}

	if err := a.filler.Fill(ctx, listing); err != nil {
		a.notifier.Error(ctx, fmt.Sprintf("Could not fill the catalog form: %v", err))
		rec.Success = false
		rec.Error = err.Error()
		a.record(rec, result)
		return
	}

	a.notifier.Info(ctx, "Product listing filled: "+listing.Title)
	a.record(rec, result)
}

// record persists the cycle to history and dumps the raw exchange. Both
// are best effort; persistence never fails a cycle.
func (a *Agent) record(rec *store.Generation, result types.GenerationResult) {
	if a.store != nil {
		if err := a.store.SaveGeneration(rec); err != nil {
			log.Printf("Failed to save generation history: %v", err)
		}
	}

	exchange := store.Exchange{
		Timestamp: time.Now(),
		Provider:  a.cfg.Generation.Provider,
		Model:     a.cfg.Generation.Model,
		Kind:      rec.Kind,
		Prompt:    rec.Prompt,
		Response:  result.Text,
		Error:     result.Err,
	}
	if _, err := store.SaveExchange(exchange); err != nil {
		log.Printf("Failed to save exchange dump: %v", err)
	}
}

// RegisterMaintenance adds the agent's periodic jobs to the scheduler:
// history pruning and API key revalidation.
func (a *Agent) RegisterMaintenance(sched *scheduler.Scheduler) error {
	if a.store != nil {
		err := sched.AddJob("prune-history", a.cfg.Schedule.PruneSchedule, func(ctx context.Context) error {
			cutoff := time.Now().AddDate(0, 0, -a.cfg.Schedule.HistoryKeepDays)
			n, err := a.store.PruneOlderThan(cutoff)
			if err != nil {
				return err
			}
			log.Printf("Pruned %d history rows older than %s", n, cutoff.Format("2006-01-02"))
			return nil
		})
		if err != nil {
			return err
		}
	}

	return sched.AddJob("revalidate-key", a.cfg.Schedule.RevalidateSchedule, func(ctx context.Context) error {
		if !a.client.ValidateKey(ctx) {
			a.notifier.Error(ctx, "Your API key no longer validates, generation will fail")
		}
		return nil
	})
}
