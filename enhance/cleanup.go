package enhance

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// noDescription is returned by the local cleanup for empty input. It matches
// the extraction engine's literal fallback so a missing description looks the
// same whichever engine produced it.
const noDescription = "No description available"

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	sentenceGapRe = regexp.MustCompile(`([.!?])([a-z])`)
	leadingLabel  = regexp.MustCompile(`(?i)^(enhanced description|description|rewritten description)\s*:\s*`)
)

// Cleanup is the deterministic local fallback: it tidies raw extracted text
// without any external call. It is idempotent on already-clean input.
func Cleanup(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return noDescription
	}

	text = stripTags(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	if text == "" {
		return noDescription
	}

	// "Welcome.we sell shoes" → "Welcome. we sell shoes": sites often jam
	// sentences together when text is pulled out of adjacent elements.
	text = sentenceGapRe.ReplaceAllString(text, "$1 $2")

	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	text = string(runes)

	if !strings.ContainsRune(".!?", rune(text[len(text)-1])) {
		text += "."
	}

	return truncateWithEllipsis(text, maxEnhancedLen)
}

// Sanitize normalizes a successful model response into bare prose.
func Sanitize(text string) string {
	text = strings.TrimSpace(text)
	text = stripWrappingQuotes(text)
	text = leadingLabel.ReplaceAllString(text, "")
	text = stripTags(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	return truncateWithEllipsis(text, maxEnhancedLen)
}

// stripWrappingQuotes removes one leading and one trailing quote character.
// The ends are handled independently so a half-quoted reply like `"Text.`
// still loses its stray quote.
func stripWrappingQuotes(s string) string {
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if len(s) > 0 && (s[len(s)-1] == '"' || s[len(s)-1] == '\'') {
		s = s[:len(s)-1]
	}
	return s
}

// stripTags extracts visible text from an HTML fragment. Input without
// markup passes through untouched.
func stripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	var b strings.Builder
	tz := html.NewTokenizer(strings.NewReader(s))
	for {
		switch tz.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(tz.Text())
		}
	}
}

// truncateWithEllipsis caps s at max characters, replacing the tail with an
// ellipsis marker when truncation happens. The output never exceeds max.
func truncateWithEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
