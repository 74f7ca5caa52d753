// Package injector drives one generation cycle's UI half: trigger the
// platform's native compose action, poll for the compose input to appear,
// and write the generated text into it.
package injector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/imjacoblopez/replypilot/internal/config"
	"github.com/imjacoblopez/replypilot/internal/locator"
	"github.com/imjacoblopez/replypilot/internal/page"
	"github.com/imjacoblopez/replypilot/internal/types"
)

// State tracks a cycle through the injection state machine.
type State string

const (
	StateIdle             State = "idle"
	StateActionTriggered  State = "action-triggered"
	StatePollingForTarget State = "polling-for-target"
	StateWritingText      State = "writing-text"
	StateDone             State = "done"
	StateFailed           State = "failed"
)

// ErrTargetNotFound is returned when the compose input never appears
// within the fixed poll budget.
var ErrTargetNotFound = errors.New("could not find compose input after waiting")

// Result describes how a cycle ended.
type Result struct {
	State State
	// Strategy is the locator strategy that found the compose input.
	Strategy string
	// ClipboardFallback is set when no write strategy could be confirmed
	// and the text was copied to the clipboard for manual pasting instead.
	// This is not a hard failure.
	ClipboardFallback bool
	Err               error
}

// Injector runs the trigger/poll/write sequence against a live page.
type Injector struct {
	page          page.Page
	pollAttempts  int
	pollInterval  time.Duration
	settleDelay   time.Duration
	writeAttempts int
}

// New creates an injector with the configured fixed poll/write budgets.
func New(p page.Page, cfg config.InjectionConfig) *Injector {
	return &Injector{
		page:          p,
		pollAttempts:  cfg.PollAttempts,
		pollInterval:  time.Duration(cfg.PollIntervalMs) * time.Millisecond,
		settleDelay:   time.Duration(cfg.SettleDelayMs) * time.Millisecond,
		writeAttempts: cfg.WriteAttempts,
	}
}

// Inject runs one full cycle: trigger the compose action for the post
// matching handle, poll for the input, write text. The poll budget is a
// hard cap; the cycle never waits longer than attempts x interval.
func (inj *Injector) Inject(ctx context.Context, handle string, kind types.RequestKind, text string) Result {
	if err := inj.trigger(ctx, handle, kind); err != nil {
		return Result{State: StateFailed, Err: fmt.Errorf("failed to trigger compose action: %w", err)}
	}

	target, err := inj.pollForTarget(ctx)
	if err != nil {
		return Result{State: StateFailed, Err: err}
	}

	confirmed, err := inj.writeText(ctx, target, text)
	if err != nil {
		return Result{State: StateFailed, Strategy: target.Name, Err: err}
	}

	if !confirmed {
		// Best effort failed silently; hand the text to the user instead.
		if cbErr := inj.page.WriteClipboard(ctx, text); cbErr != nil {
			return Result{State: StateFailed, Strategy: target.Name,
				Err: fmt.Errorf("could not insert text or copy it to clipboard: %w", cbErr)}
		}
		return Result{State: StateDone, Strategy: target.Name, ClipboardFallback: true}
	}

	return Result{State: StateDone, Strategy: target.Name}
}

// trigger simulates the platform's native compose entry point.
func (inj *Injector) trigger(ctx context.Context, handle string, kind types.RequestKind) error {
	switch kind {
	case types.KindQuote:
		if err := inj.page.Click(ctx, handle+" "+locator.RetweetButton); err != nil {
			return err
		}
		inj.sleep(ctx, inj.settleDelay)
		return inj.page.Click(ctx, locator.QuoteMenuItem)
	default:
		return inj.page.Click(ctx, handle+" "+locator.ReplyButton)
	}
}

// pollForTarget searches the compose-input cascade at a fixed interval for
// a fixed number of attempts. First match wins; budget exhaustion is a
// hard timeout, not infinite polling.
func (inj *Injector) pollForTarget(ctx context.Context) (locator.Strategy, error) {
	for i := 0; i < inj.pollAttempts; i++ {
		inj.sleep(ctx, inj.pollInterval)
		if ctx.Err() != nil {
			return locator.Strategy{}, ctx.Err()
		}

		strategy, ok, err := locator.ComposeInput.FirstMatch(ctx, inj.page, "")
		if err != nil {
			log.Printf("Compose input poll attempt %d failed: %v", i+1, err)
			continue
		}
		if ok {
			log.Printf("Found compose input with strategy %q on attempt %d", strategy.Name, i+1)
			return strategy, nil
		}
	}
	return locator.Strategy{}, ErrTargetNotFound
}

// writeText attempts every injection strategy in order, even when an
// earlier one raised no error: none of them can prove it worked, so the
// redundancy is deliberate. Returns whether the write could be confirmed
// by reading the element back.
func (inj *Injector) writeText(ctx context.Context, target locator.Strategy, text string) (bool, error) {
	strategies := []struct {
		name string
		run  func(context.Context, string, string) error
	}{
		{"direct-assignment", inj.writeDirect},
		{"clipboard-paste", inj.writePaste},
		{"synthetic-input", inj.writeSynthetic},
	}

	for attempt := 0; attempt < inj.writeAttempts; attempt++ {
		// Give the page's own async UI time to render before touching it.
		inj.sleep(ctx, inj.settleDelay)
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		for _, s := range strategies {
			if err := s.run(ctx, target.Selector, text); err != nil {
				log.Printf("Injection strategy %q failed: %v", s.name, err)
			}
		}

		ok, err := inj.confirm(ctx, target.Selector, text)
		if err != nil {
			log.Printf("Could not read back compose input: %v", err)
			continue
		}
		if ok {
			return true, nil
		}
	}

	return false, nil
}

// writeDirect assigns the text straight onto the element.
func (inj *Injector) writeDirect(ctx context.Context, selector, text string) error {
	js, err := targetJS(selector, text, `
		el.focus();
		if ('value' in el) el.value = text;
		else el.textContent = text;
	`)
	if err != nil {
		return err
	}
	return inj.page.Eval(ctx, js, nil)
}

// writePaste goes through the clipboard and a simulated paste command.
func (inj *Injector) writePaste(ctx context.Context, selector, text string) error {
	if err := inj.page.WriteClipboard(ctx, text); err != nil {
		return err
	}
	js, err := targetJS(selector, text, `
		el.focus();
		document.execCommand('paste');
	`)
	if err != nil {
		return err
	}
	return inj.page.Eval(ctx, js, nil)
}

// writeSynthetic focuses the element, types via the browser input layer and
// dispatches a matching InputEvent so the page's framework notices.
func (inj *Injector) writeSynthetic(ctx context.Context, selector, text string) error {
	focusJS, err := targetJS(selector, text, `el.focus();`)
	if err != nil {
		return err
	}
	if err := inj.page.Eval(ctx, focusJS, nil); err != nil {
		return err
	}
	if err := inj.page.InsertText(ctx, text); err != nil {
		return err
	}

	eventJS, err := targetJS(selector, text, `
		el.dispatchEvent(new InputEvent('input', {
			bubbles: true,
			cancelable: true,
			data: text,
			inputType: 'insertText'
		}));
	`)
	if err != nil {
		return err
	}
	return inj.page.Eval(ctx, eventJS, nil)
}

// confirm reads the element back and checks the text landed.
func (inj *Injector) confirm(ctx context.Context, selector, text string) (bool, error) {
	js, err := targetJS(selector, text, `
		const current = ('value' in el && el.value) ? el.value : (el.textContent || '');
		return current.includes(text);
	`)
	if err != nil {
		return false, err
	}
	var ok bool
	if err := inj.page.Eval(ctx, js, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// targetJS wraps a body operating on `el` (the target element) and `text`.
func targetJS(selector, text, body string) (string, error) {
	selLit, err := json.Marshal(selector)
	if err != nil {
		return "", err
	}
	textLit, err := json.Marshal(text)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`
		(function() {
			const el = document.querySelector(%s);
			if (!el) throw new Error('target element vanished');
			const text = %s;
			%s
		})()
	`, selLit, textLit, body), nil
}

// sleep waits for d or until the context is canceled.
func (inj *Injector) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
