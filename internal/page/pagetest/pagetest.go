// Package pagetest provides a scriptable in-memory Page for tests.
package pagetest

import (
	"context"
	"encoding/json"

	"github.com/imjacoblopez/replypilot/internal/page"
)

var _ page.Page = (*Fake)(nil)

// Fake implements page.Page without a browser. Behavior is scripted per
// test through the function fields; unset fields are benign no-ops.
type Fake struct {
	// EvalFn handles Eval calls. Use Unmarshal to fill out.
	EvalFn func(js string, out any) error
	// LocationFn handles Location calls; defaults to the home feed URL.
	LocationFn func() (string, error)

	// ClickErr fails every Click call when set.
	ClickErr error

	// Recorded calls, in order.
	Evals     []string
	Clicks    []string
	Inserted  []string
	Clipboard []string
}

// Unmarshal fills an Eval out-pointer the way the real page does, by
// round-tripping v through JSON.
func Unmarshal(out, v any) error {
	if out == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (f *Fake) Eval(_ context.Context, js string, out any) error {
	f.Evals = append(f.Evals, js)
	if f.EvalFn == nil {
		return nil
	}
	return f.EvalFn(js, out)
}

func (f *Fake) Click(_ context.Context, selector string) error {
	f.Clicks = append(f.Clicks, selector)
	return f.ClickErr
}

func (f *Fake) Location(_ context.Context) (string, error) {
	if f.LocationFn == nil {
		return "https://x.com/home", nil
	}
	return f.LocationFn()
}

func (f *Fake) InsertText(_ context.Context, text string) error {
	f.Inserted = append(f.Inserted, text)
	return nil
}

func (f *Fake) WriteClipboard(_ context.Context, text string) error {
	f.Clipboard = append(f.Clipboard, text)
	return nil
}

// LastClipboard returns the most recent clipboard write, or "".
func (f *Fake) LastClipboard() string {
	if len(f.Clipboard) == 0 {
		return ""
	}
	return f.Clipboard[len(f.Clipboard)-1]
}
