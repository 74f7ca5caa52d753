package locator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/imjacoblopez/replypilot/internal/page/pagetest"
)

func TestCascadeSelectors(t *testing.T) {
	got := ComposeInput.Selectors()
	if len(got) != len(ComposeInput) {
		t.Fatalf("Selectors() returned %d entries, want %d", len(got), len(ComposeInput))
	}
	if got[0] != ComposeInput[0].Selector {
		t.Errorf("Selectors()[0] = %q", got[0])
	}
}

func TestFirstMatch(t *testing.T) {
	tests := []struct {
		name     string
		idx      int
		wantName string
		wantOK   bool
	}{
		{"first strategy wins", 0, "compose-textarea", true},
		{"later strategy wins", 2, "layers-textbox-role", true},
		{"no match", -1, "", false},
		{"out of range index", 99, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &pagetest.Fake{
				EvalFn: func(js string, out any) error {
					return pagetest.Unmarshal(out, tt.idx)
				},
			}

			strategy, ok, err := ComposeInput.FirstMatch(context.Background(), fake, "")
			if err != nil {
				t.Fatalf("FirstMatch() error: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if strategy.Name != tt.wantName {
				t.Errorf("strategy = %q, want %q", strategy.Name, tt.wantName)
			}
		})
	}
}

func TestFirstMatchScoped(t *testing.T) {
	fake := &pagetest.Fake{
		EvalFn: func(js string, out any) error {
			return pagetest.Unmarshal(out, 0)
		},
	}

	scope := `article[data-rp-id="1"]`
	if _, _, err := Author.FirstMatch(context.Background(), fake, scope); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fake.Evals[0], scope) {
		t.Error("scope selector not passed to the page script")
	}
}

func TestFirstMatchEvalError(t *testing.T) {
	fake := &pagetest.Fake{
		EvalFn: func(string, any) error { return errors.New("page gone") },
	}

	if _, _, err := ComposeInput.FirstMatch(context.Background(), fake, ""); err == nil {
		t.Fatal("expected error")
	}
}
