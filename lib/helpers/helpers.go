package helpers

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// Normalize lowercases text with unicode case folding rules so that
// Cyrillic and Latin keywords match the same way.
func Normalize(text string) string {
	return lower.String(text)
}

// ContainsAny reports whether normalized text contains any of the terms.
func ContainsAny(text string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatSince renders then relative to now, e.g. "3 hours ago".
func FormatSince(then, now time.Time) string {
	return humanize.RelTime(then, now, "ago", "from now")
}

// StartOfDay returns midnight of t's calendar date in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
