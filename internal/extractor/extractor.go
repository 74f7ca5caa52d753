// Package extractor reads a single post node from the live page and builds
// the generation context: text, author, thread/quote context and image
// payloads. Missing optional fields come back empty, never as errors.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/imjacoblopez/replypilot/internal/locator"
	"github.com/imjacoblopez/replypilot/internal/page"
	"github.com/imjacoblopez/replypilot/internal/types"
)

// maxImageBytes caps a single fetched image payload.
const maxImageBytes = 8 << 20

var whitespace = regexp.MustCompile(`\s+`)

// Extractor builds contexts from post nodes
type Extractor struct {
	client *http.Client
}

// New creates an extractor. The HTTP client is used for image fetches and
// should carry the session's cookie jar so media URLs resolve.
func New(client *http.Client) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Extractor{client: client}
}

// rawContext is the shape returned by the in-page extraction script
type rawContext struct {
	Text      string   `json:"text"`
	Author    string   `json:"author"`
	Parent    string   `json:"parent"`
	Quoted    string   `json:"quoted"`
	QuotedBy  string   `json:"quotedBy"`
	Links     []string `json:"links"`
	ImageURLs []string `json:"imageUrls"`
}

// Extract reads the post node matching handle (a selector scoping exactly
// one article) and produces a Context. Only the image fetches are awaited;
// a failed image is logged and skipped, never aborting extraction.
func (e *Extractor) Extract(ctx context.Context, p page.Page, handle string) (types.Context, error) {
	raw, err := e.readNode(ctx, p, handle)
	if err != nil {
		return types.Context{}, err
	}

	c := types.Context{
		Text:         AssembleText(raw.Text, raw.Quoted, raw.Links),
		Author:       raw.Author,
		ParentText:   raw.Parent,
		QuotedText:   raw.Quoted,
		QuotedAuthor: raw.QuotedBy,
		Timestamp:    time.Now(),
	}

	images, urls := e.fetchImages(ctx, raw.ImageURLs)
	if len(images) > 0 {
		c.Images = images
		c.ImageURLs = urls
	}

	return c, nil
}

// readNode runs the extraction script against the post node. Author and
// quote lookup walk their cascades in order; first non-empty match wins.
func (e *Extractor) readNode(ctx context.Context, p page.Page, handle string) (rawContext, error) {
	handleLit, err := json.Marshal(handle)
	if err != nil {
		return rawContext{}, err
	}
	authorSels, _ := json.Marshal(locator.Author.Selectors())
	quotedSels, _ := json.Marshal(locator.Quoted.Selectors())

	js := fmt.Sprintf(`
		(function() {
			const el = document.querySelector(%s);
			if (!el) return null;

			const text = el.querySelector('%s')?.textContent?.trim() || '';

			const firstMatch = (sels) => {
				for (const sel of sels) {
					const found = el.querySelector(sel);
					const t = found?.textContent?.trim();
					if (t) return { node: found, text: t };
				}
				return null;
			};

			const authorHit = firstMatch(%s);
			const author = authorHit ? authorHit.text : '';

			const quotedHit = firstMatch(%s);
			const quoted = quotedHit ? quotedHit.text : '';
			const quotedBy = quotedHit
				? (quotedHit.node.querySelector('%s')?.textContent?.trim() || '')
				: '';

			const parentArticle = el.closest('article')?.previousElementSibling;
			const parent = parentArticle?.querySelector('%s')?.textContent?.trim() || '';

			const links = Array.from(el.querySelectorAll('%s'))
				.map(a => a.href)
				.filter(Boolean);

			const imageUrls = Array.from(el.querySelectorAll('%s'))
				.map(img => img.src)
				.filter(Boolean);

			return { text, author, parent, quoted, quotedBy, links, imageUrls };
		})()
	`, handleLit, locator.PostText, authorSels, quotedSels,
		locator.Author[0].Selector, locator.PostText,
		locator.OutboundLinks, locator.PostMediaImg)

	var raw *rawContext
	if err := p.Eval(ctx, js, &raw); err != nil {
		return rawContext{}, fmt.Errorf("failed to read post node: %w", err)
	}
	if raw == nil {
		return rawContext{}, fmt.Errorf("post node not found: %s", handle)
	}
	return *raw, nil
}

// AssembleText combines the post text, quoted text and outbound links into
// the single context text, collapsing runs of whitespace. Quoted text is
// skipped when it is already a substring of the primary text.
func AssembleText(text, quoted string, links []string) string {
	full := text

	if quoted != "" && !strings.Contains(full, quoted) {
		full += "\nQuoted Tweet: " + quoted
	}

	if outbound := FilterOutboundLinks(links); len(outbound) > 0 {
		full += "\nLinks: " + strings.Join(outbound, ", ")
	}

	return strings.TrimSpace(whitespace.ReplaceAllString(full, " "))
}

// FilterOutboundLinks drops platform-internal links, keeping only links
// that point off X/Twitter.
func FilterOutboundLinks(links []string) []string {
	var out []string
	for _, href := range links {
		if href == "" {
			continue
		}
		if strings.Contains(href, "twitter.com") || strings.Contains(href, "x.com") {
			continue
		}
		out = append(out, href)
	}
	return out
}

// fetchImages downloads the referenced media concurrently. Failures are
// swallowed after logging; successes keep their source URL so the returned
// slices stay 1:1.
func (e *Extractor) fetchImages(ctx context.Context, urls []string) ([][]byte, []string) {
	if len(urls) == 0 {
		return nil, nil
	}

	type fetched struct {
		data []byte
		url  string
	}

	results := make([]*fetched, len(urls))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		g.Go(func() error {
			data, err := e.fetchImage(gctx, u)
			if err != nil {
				log.Printf("Failed to fetch image %s: %v", u, err)
				return nil
			}
			mu.Lock()
			results[i] = &fetched{data: data, url: u}
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	var images [][]byte
	var kept []string
	for _, r := range results {
		if r != nil {
			images = append(images, r.data)
			kept = append(kept, r.url)
		}
	}
	return images, kept
}

func (e *Extractor) fetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image body")
	}
	return data, nil
}
