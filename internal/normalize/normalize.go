// Package normalize cleans raw document text before extraction: whitespace
// and control-character hygiene, currency marker unification, and canonical
// amount parsing.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reCurrency   = regexp.MustCompile(`(?i)(?:₹|\$|€|£|\bRs\.?|\bINR\b)\s*`)
	reNonAmount  = regexp.MustCompile(`[^\d.]`)
)

// Text cleans a raw document and splits it into normalized lines. Line
// breaks are preserved for context; within a line, whitespace runs collapse
// to a single space, control characters are dropped and currency markers are
// stripped so that amount tokens start at the digits.
func Text(raw string) []string {
	if raw == "" {
		return nil
	}
	s := reCRLF.ReplaceAllString(raw, "\n")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.ReplaceAll(s, "\f", "\n")
	s = reTabs.ReplaceAllString(s, " ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || unicode.IsPrint(r) {
			b.WriteRune(r)
		}
	}
	s = reCurrency.ReplaceAllString(b.String(), "")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(reMultiSpace.ReplaceAllString(line, " "))
		out = append(out, line)
	}
	return out
}

// Lines rejoins normalized lines; useful for archiving the cleaned text.
func Lines(lines []string) string {
	return strings.Join(lines, "\n")
}

// Amount converts a currency string like "25,960.00" to its float value.
// Returns false for anything that does not parse to a number.
func Amount(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	cleaned := reNonAmount.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
