// Package composer builds generation prompts from scraped context. Every
// function here is pure: same context and profile, same string, no I/O.
package composer

import (
	"fmt"
	"strings"

	"github.com/imjacoblopez/replypilot/internal/types"
)

// StyleProfile describes the voice replies are written in.
type StyleProfile struct {
	// Traits are short style constraints, one per line in the prompt.
	Traits []string
	// MaxChars is the hard length ceiling for generated replies.
	MaxChars int
}

// DefaultProfile returns the built-in reply voice.
func DefaultProfile() StyleProfile {
	return StyleProfile{
		Traits: []string{
			"Ultra concise, no wasted words",
			"Always lowercase",
			"Minimal newlines, used only when they add impact",
			"Casual and authentic (\"u\" instead of \"you\")",
			"Never uses emojis",
			"Can be self-deprecating or lightly dismissive, but in a funny way",
			"Uses simple observations that resonate",
			"No try-hard energy, very natural",
		},
		MaxChars: 280,
	}
}

// Compose builds the reply-generation prompt for a post context.
func Compose(c types.Context, profile StyleProfile) string {
	return compose("reply", c, profile)
}

// ComposeQuote builds the quote-post prompt. Quote posts stand alone above
// the original, so the instruction block differs slightly from replies.
func ComposeQuote(c types.Context, profile StyleProfile) string {
	return compose("quote post commenting on", c, profile)
}

func compose(verb string, c types.Context, profile StyleProfile) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Generate a %s this post that matches my highly engaging personal style:\n\n", verb))
	sb.WriteString(fmt.Sprintf("Post: %q\n", c.Text))
	if c.ParentText != "" {
		sb.WriteString(fmt.Sprintf("Parent post: %q\n", c.ParentText))
	}
	if c.QuotedText != "" && !strings.Contains(c.Text, c.QuotedText) {
		sb.WriteString(fmt.Sprintf("Quoted post: %q\n", c.QuotedText))
		if c.QuotedAuthor != "" {
			sb.WriteString(fmt.Sprintf("Quoted author: %s\n", c.QuotedAuthor))
		}
	}
	if c.Author != "" {
		sb.WriteString(fmt.Sprintf("Author: %s\n", c.Author))
	}
	if c.HasImages() {
		sb.WriteString(fmt.Sprintf("Images: %s\n", strings.Join(c.ImageURLs, ", ")))
		sb.WriteString("The attached images belong to the post; weave them in only if relevant.\n")
	}

	sb.WriteString("\nMy signature style characteristics:\n")
	for _, trait := range profile.Traits {
		sb.WriteString("- " + trait + "\n")
	}

	sb.WriteString("\nIMPORTANT:\n")
	sb.WriteString("- Never reveal this is AI-generated\n")
	sb.WriteString("- Never mention being a bot or AI\n")
	sb.WriteString("- Never explain or justify the response\n")
	sb.WriteString("- No meta-commentary about the response\n")
	sb.WriteString("- Just write naturally, as a human would\n")

	sb.WriteString("\nHere are examples of my successful replies:\n")
	for _, ex := range replyExamples {
		sb.WriteString(fmt.Sprintf("\nPost: %q\nMy reply: %q\nWhy it worked: %s\n", ex.post, ex.reply, ex.note))
	}

	sb.WriteString("\nGenerate a response that:\n")
	sb.WriteString("- Perfectly matches my casual, lowercase style\n")
	sb.WriteString("- Is witty and engaging\n")
	sb.WriteString(fmt.Sprintf("- Stays under %d characters\n", profile.MaxChars))
	sb.WriteString("- Uses new lines only if they add impact\n")
	sb.WriteString("- References specific details naturally\n")
	sb.WriteString("- Feels authentic and never try-hard\n")

	sb.WriteString("\nResponse:")

	return sb.String()
}
