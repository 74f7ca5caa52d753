// Package page defines the narrow surface the pipeline needs from the live
// browser page. The host DOM is an external, uncontrolled resource; nothing
// here promises stability beyond a single call.
package page

import "context"

// Page is implemented by the chromedp session and by test fakes.
type Page interface {
	// Eval runs a JavaScript expression in the page and unmarshals the
	// result into out (pass nil to discard it).
	Eval(ctx context.Context, js string, out any) error

	// Click dispatches a click on the first element matching the selector.
	Click(ctx context.Context, selector string) error

	// Location returns the page's current URL.
	Location(ctx context.Context) (string, error)

	// InsertText types text into the currently focused element via the
	// browser's input layer, as if entered from the keyboard.
	InsertText(ctx context.Context, text string) error

	// WriteClipboard places text on the system clipboard.
	WriteClipboard(ctx context.Context, text string) error
}
