package common

import (
	"regexp"
	"strings"
)

var (
	doubleBold   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	numberedItem = regexp.MustCompile(`\b(\d+)\s*[).\-]+\s*`)
	// Matches a numbered item not already at the start of a line. The leading
	// capture excludes digits so "12. " is never split into "1" + "2. ".
	inlineItem = regexp.MustCompile(`([^\n\d])(\d+\. )`)
)

// NormalizeMrkdwn rewrites LLM output into Slack-flavored mrkdwn:
// **bold** becomes *bold*, numbered-list variants like "1)", "1)-" and "1.-"
// become "1. ", each numbered item starts on its own line, and trailing
// whitespace is trimmed per line. Applying it twice yields the same result.
func NormalizeMrkdwn(text string) string {
	if text == "" {
		return ""
	}

	out := doubleBold.ReplaceAllString(text, "*$1*")
	out = numberedItem.ReplaceAllString(out, "$1. ")
	out = inlineItem.ReplaceAllString(out, "$1\n$2")

	lines := strings.Split(out, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimRight(ln, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Shorten collapses all whitespace runs (newlines included) into single
// spaces and caps the result at maxLen characters, replacing the overflow
// with a single ellipsis. Lengths are counted in runes so multibyte text is
// never cut mid-character.
func Shorten(text string, maxLen int) string {
	if text == "" || maxLen <= 0 {
		return ""
	}
	s := strings.Join(strings.Fields(text), " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
