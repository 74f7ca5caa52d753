package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/imjacoblopez/replypilot/internal/page/pagetest"
)

func TestAssembleText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		quoted string
		links  []string
		want   string
	}{
		{
			name: "plain text",
			text: "just a post",
			want: "just a post",
		},
		{
			name:   "quoted text appended",
			text:   "hot take",
			quoted: "original claim",
			want:   "hot take Quoted Tweet: original claim",
		},
		{
			name:   "quoted text already embedded is not duplicated",
			text:   "agreeing with original claim here",
			quoted: "original claim",
			want:   "agreeing with original claim here",
		},
		{
			name:  "outbound links appended",
			text:  "check this",
			links: []string{"https://example.com/post"},
			want:  "check this Links: https://example.com/post",
		},
		{
			name:  "platform links dropped",
			text:  "check this",
			links: []string{"https://x.com/foo/status/1", "https://twitter.com/bar"},
			want:  "check this",
		},
		{
			name: "whitespace collapsed",
			text: "too   much\n\nspace",
			want: "too much space",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssembleText(tt.text, tt.quoted, tt.links)
			if got != tt.want {
				t.Errorf("AssembleText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilterOutboundLinks(t *testing.T) {
	links := []string{
		"",
		"https://x.com/someone/status/123",
		"https://twitter.com/someone",
		"https://example.com/article",
		"https://blog.example.org",
	}

	got := FilterOutboundLinks(links)
	want := []string{"https://example.com/article", "https://blog.example.org"}

	if len(got) != len(want) {
		t.Fatalf("FilterOutboundLinks() returned %d links, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("link %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtract(t *testing.T) {
	fake := &pagetest.Fake{
		EvalFn: func(js string, out any) error {
			return pagetest.Unmarshal(out, map[string]any{
				"text":      "original post text",
				"author":    "someone",
				"parent":    "the post above in the thread",
				"quoted":    "a quoted post",
				"quotedBy":  "quoter",
				"links":     []string{"https://example.com"},
				"imageUrls": []string{},
			})
		},
	}

	e := New(nil)
	c, err := e.Extract(context.Background(), fake, `article[data-rp-id="1"]`)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if c.Author != "someone" {
		t.Errorf("Author = %q, want %q", c.Author, "someone")
	}
	if c.ParentText != "the post above in the thread" {
		t.Errorf("ParentText = %q", c.ParentText)
	}
	if c.QuotedText != "a quoted post" || c.QuotedAuthor != "quoter" {
		t.Errorf("quoted = %q by %q", c.QuotedText, c.QuotedAuthor)
	}
	if !strings.Contains(c.Text, "Quoted Tweet: a quoted post") {
		t.Errorf("Text missing quoted section: %q", c.Text)
	}
	if !strings.Contains(c.Text, "Links: https://example.com") {
		t.Errorf("Text missing links section: %q", c.Text)
	}
	if c.HasImages() {
		t.Errorf("expected no images, got %d", len(c.Images))
	}
	if c.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestExtractMissingNode(t *testing.T) {
	fake := &pagetest.Fake{
		EvalFn: func(js string, out any) error {
			return pagetest.Unmarshal(out, nil)
		},
	}

	e := New(nil)
	if _, err := e.Extract(context.Background(), fake, `article[data-rp-id="99"]`); err == nil {
		t.Fatal("expected error for missing post node")
	}
}

func TestFetchImagesSkipsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "bad") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	e := New(srv.Client())
	urls := []string{srv.URL + "/ok.jpg", srv.URL + "/bad.jpg", srv.URL + "/ok2.jpg"}

	images, kept := e.fetchImages(context.Background(), urls)
	if len(images) != 2 || len(kept) != 2 {
		t.Fatalf("got %d images and %d urls, want 2 and 2", len(images), len(kept))
	}
	for i, u := range kept {
		if strings.Contains(u, "bad") {
			t.Errorf("kept url %d is the failed one: %s", i, u)
		}
		if string(images[i]) != "image-bytes" {
			t.Errorf("image %d payload = %q", i, images[i])
		}
	}
}
