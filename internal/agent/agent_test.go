package agent

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/imjacoblopez/replypilot/internal/catalog"
	"github.com/imjacoblopez/replypilot/internal/composer"
	"github.com/imjacoblopez/replypilot/internal/config"
	"github.com/imjacoblopez/replypilot/internal/extractor"
	"github.com/imjacoblopez/replypilot/internal/genclient"
	"github.com/imjacoblopez/replypilot/internal/injector"
	"github.com/imjacoblopez/replypilot/internal/notify"
	"github.com/imjacoblopez/replypilot/internal/page/pagetest"
	"github.com/imjacoblopez/replypilot/internal/store"
	"github.com/imjacoblopez/replypilot/internal/types"
	"github.com/imjacoblopez/replypilot/internal/watcher"
)

type fakeGenerator struct {
	text  string
	err   error
	valid bool
	calls int
}

func (f *fakeGenerator) Generate(context.Context, string, [][]byte) (string, error) {
	f.calls++
	return f.text, f.err
}

func (f *fakeGenerator) Validate(context.Context) bool { return f.valid }

type captureSink struct {
	infos  []string
	errors []string
}

func (s *captureSink) Deliver(_ context.Context, msg string, isError bool) {
	if isError {
		s.errors = append(s.errors, msg)
	} else {
		s.infos = append(s.infos, msg)
	}
}

// fakeFeedPage scripts every page interaction one post cycle touches.
type fakeFeedPage struct {
	*pagetest.Fake
	confirmWrites bool
	busyToggles   int
	fills         []string
}

func newFakeFeedPage(confirmWrites bool) *fakeFeedPage {
	p := &fakeFeedPage{Fake: &pagetest.Fake{}, confirmWrites: confirmWrites}
	p.Fake.EvalFn = func(js string, out any) error {
		switch {
		case strings.Contains(js, "imageUrls"):
			return pagetest.Unmarshal(out, map[string]any{
				"text":   "original post",
				"author": "someone",
			})
		case strings.Contains(js, "const selectors"):
			return pagetest.Unmarshal(out, 0)
		case strings.Contains(js, "current.includes"):
			return pagetest.Unmarshal(out, p.confirmWrites)
		case strings.Contains(js, ".rp-generate-button") || strings.Contains(js, "rp-catalog-button"):
			p.busyToggles++
			return nil
		case strings.Contains(js, "new Event('input'"):
			p.fills = append(p.fills, js)
			return pagetest.Unmarshal(out, true)
		default:
			return nil
		}
	}
	return p
}

func newTestAgent(t *testing.T, p *fakeFeedPage, gen genclient.Generator) (*Agent, *captureSink, *store.Store) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	cfg := config.Default()
	cfg.Browser.WatchIntervalMs = 1
	cfg.Injection = config.InjectionConfig{PollAttempts: 2, PollIntervalMs: 0, SettleDelayMs: 0, WriteAttempts: 1}

	historyStore, err := store.New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { historyStore.Close() })

	sink := &captureSink{}
	a := New(cfg, p,
		watcher.New(p, watcher.NewNavState("https://x.com/home"), cfg.Browser, true),
		extractor.New(nil),
		genclient.NewClient(gen, composer.DefaultProfile()),
		injector.New(p, cfg.Injection),
		catalog.NewFiller(p),
		notify.New(sink),
		historyStore,
	)
	return a, sink, historyStore
}

func TestReplyCycleHappyPath(t *testing.T) {
	p := newFakeFeedPage(true)
	gen := &fakeGenerator{text: "witty reply"}
	a, sink, historyStore := newTestAgent(t, p, gen)

	a.handleTrigger(context.Background(), watcher.Trigger{ID: 1, Kind: types.KindReply})

	if len(sink.errors) != 0 {
		t.Fatalf("unexpected error notices: %v", sink.errors)
	}
	if len(p.Inserted) == 0 {
		t.Error("generated text never injected")
	}
	if p.busyToggles != 2 {
		t.Errorf("busy toggled %d times, want set and restore", p.busyToggles)
	}

	gens, err := historyStore.RecentGenerations(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(gens) != 1 || !gens[0].Success || gens[0].Output != "witty reply" {
		t.Errorf("history = %+v", gens)
	}
	if gens[0].Author != "someone" || gens[0].PostID != 1 {
		t.Errorf("history row missing context: %+v", gens[0])
	}
}

func TestReplyCycleGenerationFailure(t *testing.T) {
	p := newFakeFeedPage(true)
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	a, sink, historyStore := newTestAgent(t, p, gen)

	a.handleTrigger(context.Background(), watcher.Trigger{ID: 2, Kind: types.KindReply})

	if len(sink.errors) != 1 || !strings.Contains(sink.errors[0], "quota exceeded") {
		t.Fatalf("error notices = %v", sink.errors)
	}
	if len(p.Inserted) != 0 {
		t.Error("injection ran despite the generation failure")
	}
	if p.busyToggles != 2 {
		t.Errorf("busy toggled %d times, controls not restored on failure", p.busyToggles)
	}

	gens, _ := historyStore.RecentGenerations(1)
	if len(gens) != 1 || gens[0].Success || gens[0].Error != "quota exceeded" {
		t.Errorf("history = %+v", gens)
	}
}

func TestReplyCycleClipboardFallback(t *testing.T) {
	p := newFakeFeedPage(false) // writes never confirm
	gen := &fakeGenerator{text: "stubborn reply"}
	a, sink, historyStore := newTestAgent(t, p, gen)

	a.handleTrigger(context.Background(), watcher.Trigger{ID: 3, Kind: types.KindReply})

	if len(sink.errors) != 0 {
		t.Fatalf("fallback reported as error: %v", sink.errors)
	}
	if len(sink.infos) != 1 || !strings.Contains(sink.infos[0], "clipboard") {
		t.Fatalf("info notices = %v, want the paste-manually notice", sink.infos)
	}
	if p.LastClipboard() != "stubborn reply" {
		t.Errorf("clipboard = %q", p.LastClipboard())
	}

	gens, _ := historyStore.RecentGenerations(1)
	if len(gens) != 1 || !gens[0].Success || !gens[0].Fallback {
		t.Errorf("history = %+v, want success with fallback flag", gens)
	}
}

func TestProductCycle(t *testing.T) {
	p := newFakeFeedPage(true)
	gen := &fakeGenerator{text: "```json\n{\"title\": \"not a x hoodie\", \"description\": \"420g premium weight\"}\n```"}
	a, sink, historyStore := newTestAgent(t, p, gen)

	a.handleTrigger(context.Background(), watcher.Trigger{
		Kind:     types.KindProduct,
		ImageURL: "https://cdn.example.com/black-hoodie.jpg",
	})

	if len(sink.errors) != 0 {
		t.Fatalf("error notices = %v", sink.errors)
	}
	if len(sink.infos) != 1 || !strings.Contains(sink.infos[0], "not a x hoodie") {
		t.Fatalf("info notices = %v", sink.infos)
	}
	if len(p.fills) != 3 {
		t.Errorf("filled %d catalog fields, want 3", len(p.fills))
	}
	joined := strings.Join(p.fills, "\n")
	if !strings.Contains(joined, "imjacoblopez") {
		t.Error("brand field not stamped with the constant brand")
	}

	gens, _ := historyStore.RecentGenerations(1)
	if len(gens) != 1 || !gens[0].Success || gens[0].Kind != string(types.KindProduct) {
		t.Errorf("history = %+v", gens)
	}
}

func TestProductCycleUnparseableAnswer(t *testing.T) {
	p := newFakeFeedPage(true)
	gen := &fakeGenerator{text: "sorry, no listing today"}
	a, sink, historyStore := newTestAgent(t, p, gen)

	a.handleTrigger(context.Background(), watcher.Trigger{
		Kind:     types.KindProduct,
		ImageURL: "https://cdn.example.com/hat.jpg",
	})

	if len(sink.errors) != 1 {
		t.Fatalf("error notices = %v", sink.errors)
	}
	if len(p.fills) != 0 {
		t.Error("form filled from an unparseable answer")
	}

	gens, _ := historyStore.RecentGenerations(1)
	if len(gens) != 1 || gens[0].Success {
		t.Errorf("history = %+v, want a failed row", gens)
	}
}

func TestProductCycleMissingImageURL(t *testing.T) {
	p := newFakeFeedPage(true)
	gen := &fakeGenerator{text: "unused"}
	a, sink, _ := newTestAgent(t, p, gen)

	a.handleTrigger(context.Background(), watcher.Trigger{Kind: types.KindProduct})

	if len(sink.errors) != 1 {
		t.Fatalf("error notices = %v", sink.errors)
	}
	if gen.calls != 0 {
		t.Error("provider called without an image URL")
	}
}

func TestHandleRequestValidateKey(t *testing.T) {
	p := newFakeFeedPage(true)
	a, _, _ := newTestAgent(t, p, &fakeGenerator{valid: true})

	res := a.HandleRequest(context.Background(), types.GenerationRequest{Kind: types.KindValidateKey})
	if !res.Success {
		t.Errorf("result = %+v", res)
	}

	a2, _, _ := newTestAgent(t, p, &fakeGenerator{valid: false})
	res = a2.HandleRequest(context.Background(), types.GenerationRequest{Kind: types.KindValidateKey})
	if res.Success {
		t.Errorf("result = %+v, want failure", res)
	}
}
