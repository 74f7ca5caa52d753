// Package auth handles the X.com session: interactive login and cookie
// persistence. The agent never sees the user's password, only the session
// cookies the browser ends up with.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"

	browseropts "github.com/imjacoblopez/replypilot/internal/browser"
)

// Manager handles X.com authentication
type Manager struct {
	cookieStore *CookieStore
}

// NewManager creates a new auth manager
func NewManager(cookieStore *CookieStore) *Manager {
	return &Manager{cookieStore: cookieStore}
}

// IsAuthenticated checks if we have valid stored credentials
func (m *Manager) IsAuthenticated() bool {
	return m.cookieStore.IsValid()
}

// Login opens a visible browser window for the user to log in to X.com and
// captures the session cookies once the home feed loads.
func (m *Manager) Login(ctx context.Context) error {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, browseropts.Options(false)...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if err := chromedp.Run(browserCtx, chromedp.Navigate("https://x.com/login")); err != nil {
		return fmt.Errorf("failed to navigate to login page: %w", err)
	}

	if err := m.waitForLogin(browserCtx); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cookies, err := m.extractCookies(browserCtx)
	if err != nil {
		return fmt.Errorf("failed to extract cookies: %w", err)
	}

	if err := m.cookieStore.Save(cookies); err != nil {
		return fmt.Errorf("failed to save cookies: %w", err)
	}

	return nil
}

// waitForLogin polls until the user has successfully logged in
func (m *Manager) waitForLogin(ctx context.Context) error {
	timeout := time.After(5 * time.Minute) // Give user 5 minutes to log in
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			return fmt.Errorf("login timeout exceeded")
		case <-ticker.C:
			var url string
			if err := chromedp.Run(ctx, chromedp.Location(&url)); err != nil {
				continue
			}

			if url != "https://x.com/home" && url != "https://twitter.com/home" {
				continue
			}

			// Home page alone is not enough; verify the auth cookie landed.
			cookies, err := m.extractCookies(ctx)
			if err != nil {
				continue
			}
			for _, c := range cookies {
				if c.Name == "auth_token" && c.Value != "" {
					return nil
				}
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// extractCookies gets all cookies from the browser
func (m *Manager) extractCookies(ctx context.Context) ([]*network.Cookie, error) {
	var cookies []*network.Cookie

	err := chromedp.Run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			cookies, err = storage.GetCookies().Do(ctx)
			return err
		}),
	)

	return cookies, err
}

// Logout clears stored credentials
func (m *Manager) Logout() error {
	return m.cookieStore.Clear()
}

// GetCookies returns the stored cookies for use in the agent session
func (m *Manager) GetCookies() ([]*network.Cookie, error) {
	return m.cookieStore.GetXCookies()
}
