package genclient

import (
	"regexp"
	"strings"
)

// disclaimerPatterns match known meta-commentary the model sometimes
// appends despite the prompt's prohibition. Each is removed in order.
var disclaimerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\(this reply.*?\)`),
	regexp.MustCompile(`(?m)Note:.*$`),
	regexp.MustCompile(`(?m)This response.*$`),
	regexp.MustCompile(`(?m)Why this works.*$`),
	regexp.MustCompile(`(?m)As an AI.*$`),
	regexp.MustCompile(`(?m)I am.* AI.*$`),
	regexp.MustCompile(`(?m)AI-generated.*$`),
	regexp.MustCompile(`(?m)Generated by.*$`),
	regexp.MustCompile(`(?im)^.*i('m| am) (a |just a )?bot.*$`),
}

// Sanitize strips disclaimer and meta-commentary patterns and trims
// whitespace. It is idempotent: sanitizing already-sanitized text returns
// the same text.
func Sanitize(text string) string {
	for _, re := range disclaimerPatterns {
		text = re.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}
