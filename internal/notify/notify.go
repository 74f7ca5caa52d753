// Package notify surfaces user-facing messages for cycle outcomes. All
// failures are per-cycle and non-fatal; a notice is the only escalation.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/imjacoblopez/replypilot/internal/page"
)

// Sink delivers one message to the user.
type Sink interface {
	Deliver(ctx context.Context, msg string, isError bool)
}

// Notifier fans a message out to its sinks.
type Notifier struct {
	sinks []Sink
}

// New creates a notifier over the given sinks.
func New(sinks ...Sink) *Notifier {
	return &Notifier{sinks: sinks}
}

// Info delivers an informational message.
func (n *Notifier) Info(ctx context.Context, msg string) {
	for _, s := range n.sinks {
		s.Deliver(ctx, msg, false)
	}
}

// Error delivers a failure message.
func (n *Notifier) Error(ctx context.Context, msg string) {
	for _, s := range n.sinks {
		s.Deliver(ctx, msg, true)
	}
}

// LogSink writes notices to the process log.
type LogSink struct{}

// Deliver implements Sink.
func (LogSink) Deliver(_ context.Context, msg string, isError bool) {
	if isError {
		log.Printf("NOTICE (error): %s", msg)
	} else {
		log.Printf("NOTICE: %s", msg)
	}
}

// PageSink shows notices as a transient overlay in the live page, so the
// user sees them where they are working.
type PageSink struct {
	page page.Page
}

// NewPageSink creates a page-overlay sink.
func NewPageSink(p page.Page) *PageSink {
	return &PageSink{page: p}
}

// Deliver implements Sink.
func (s *PageSink) Deliver(ctx context.Context, msg string, isError bool) {
	msgLit, err := json.Marshal(msg)
	if err != nil {
		return
	}

	js := fmt.Sprintf(`
		(function() {
			const el = document.createElement('div');
			el.textContent = %s;
			el.style.cssText = 'position:fixed;bottom:24px;right:24px;z-index:99999;' +
				'padding:12px 16px;border-radius:8px;color:#fff;font-size:14px;' +
				'max-width:360px;background:%s;';
			document.body.appendChild(el);
			setTimeout(() => el.remove(), 6000);
		})()
	`, msgLit, bannerColor(isError))

	if err := s.page.Eval(ctx, js, nil); err != nil {
		log.Printf("Failed to show page notice: %v", err)
	}
}

func bannerColor(isError bool) string {
	if isError {
		return "#b3261e"
	}
	return "#1d9bf0"
}
