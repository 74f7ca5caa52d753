package genclient

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "clean text untouched",
			in:   "honestly the best take ive seen today",
			want: "honestly the best take ive seen today",
		},
		{
			name: "parenthesized meta removed",
			in:   "love this (this reply matches your casual style)",
			want: "love this",
		},
		{
			name: "trailing note removed",
			in:   "love this\nNote: kept it under 280 characters",
			want: "love this",
		},
		{
			name: "why-this-works removed",
			in:   "nice one\nWhy this works: it references the post",
			want: "nice one",
		},
		{
			name: "ai disclaimer removed",
			in:   "good point\nAs an AI language model I cannot verify this",
			want: "good point",
		},
		{
			name: "bot admission removed",
			in:   "lol\nbtw i'm a bot",
			want: "lol",
		},
		{
			name: "whitespace trimmed",
			in:   "  spaced out  ",
			want: "spaced out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"plain reply",
		"reply (this reply is in your style)\nNote: short and casual",
		"As an AI, I think this",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
