package moderation

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// SanitizeText strips HTML markup and normalizes whitespace and control
// characters. The output is plain text; callers rendering it as HTML
// downstream must still escape it.
func SanitizeText(text string) string {
	if strings.ContainsAny(text, "<>&") {
		text = stripMarkup(text)
	}
	return normalizeWhitespace(text)
}

// stripMarkup tokenizes the input as HTML and keeps only text content,
// dropping script and style bodies entirely.
func stripMarkup(s string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skipDepth := 0

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if isHiddenElement(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isHiddenElement(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tokenizer.Text())
			}
		}
	}
}

func isHiddenElement(name string) bool {
	switch name {
	case "script", "style", "iframe", "object":
		return true
	}
	return false
}

// normalizeWhitespace collapses whitespace runs to single spaces and drops
// non-printable control characters.
func normalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false

	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
		case unicode.IsControl(r):
			// drop
		default:
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(r)
		}
	}

	return b.String()
}
