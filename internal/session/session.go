// Package session owns the long-lived chromedp browser context the agent
// drives. Unlike a per-scrape browser, the session stays open for the whole
// run: the user browses X.com normally while the agent watches the page.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	cdpbrowser "github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	browseropts "github.com/imjacoblopez/replypilot/internal/browser"
)

const homeURL = "https://x.com/home"

// Session is the chromedp-backed implementation of page.Page.
type Session struct {
	ctx           context.Context
	allocCancel   context.CancelFunc
	browserCancel context.CancelFunc
}

// New launches the browser, grants clipboard access, injects the stored
// session cookies and navigates to the home feed.
func New(parent context.Context, headless bool, cookies []*network.Cookie) (*Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, browseropts.Options(headless)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:           browserCtx,
		allocCancel:   allocCancel,
		browserCancel: browserCancel,
	}

	// Clipboard access is needed for the paste injection strategy and the
	// manual-paste fallback.
	err := chromedp.Run(browserCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			return cdpbrowser.GrantPermissions([]cdpbrowser.PermissionType{
				cdpbrowser.PermissionTypeClipboardReadWrite,
				cdpbrowser.PermissionTypeClipboardSanitizedWrite,
			}).Do(ctx)
		}),
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to grant clipboard permissions: %w", err)
	}

	if err := s.injectCookies(browserCtx, cookies); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to inject cookies: %w", err)
	}

	if err := chromedp.Run(browserCtx, chromedp.Navigate(homeURL)); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to load home feed: %w", err)
	}

	return s, nil
}

// injectCookies sets cookies in the browser context
func (s *Session) injectCookies(ctx context.Context, cookies []*network.Cookie) error {
	return chromedp.Run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			for _, c := range cookies {
				err := network.SetCookie(c.Name, c.Value).
					WithDomain(c.Domain).
					WithPath(c.Path).
					WithSecure(c.Secure).
					WithHTTPOnly(c.HTTPOnly).
					WithSameSite(c.SameSite).
					Do(ctx)

				if err != nil {
					return err
				}
			}
			return nil
		}),
	)
}

// Context returns the browser context. It is canceled when the browser
// window closes or Close is called.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Close tears down the browser.
func (s *Session) Close() {
	s.browserCancel()
	s.allocCancel()
}

// Eval runs a JavaScript expression and unmarshals its result into out.
func (s *Session) Eval(ctx context.Context, js string, out any) error {
	return chromedp.Run(s.ctx,
		chromedp.Evaluate(js, out, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
	)
}

// Click dispatches a click on the first element matching the selector.
func (s *Session) Click(ctx context.Context, selector string) error {
	return chromedp.Run(s.ctx, chromedp.Click(selector, chromedp.ByQuery))
}

// Location returns the page's current URL.
func (s *Session) Location(ctx context.Context) (string, error) {
	var url string
	if err := chromedp.Run(s.ctx, chromedp.Location(&url)); err != nil {
		return "", err
	}
	return url, nil
}

// InsertText types text into the focused element via the CDP input layer.
func (s *Session) InsertText(ctx context.Context, text string) error {
	return chromedp.Run(s.ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			return input.InsertText(text).Do(ctx)
		}),
	)
}

// WriteClipboard places text on the system clipboard via the page.
func (s *Session) WriteClipboard(ctx context.Context, text string) error {
	lit, err := json.Marshal(text)
	if err != nil {
		return err
	}
	return s.Eval(ctx, fmt.Sprintf(`navigator.clipboard.writeText(%s)`, lit), nil)
}
