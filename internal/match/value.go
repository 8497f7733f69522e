package match

import (
	"regexp"
	"strings"

	"github.com/insurelens/policy-parser/constants"
)

var (
	// Accepts ungrouped digit runs (25960) as well as western (25,960.00)
	// and Indian (1,00,000) digit grouping.
	reAmount = regexp.MustCompile(`^(?:\d+|\d{1,3}(?:,\d{2,3})+)(?:\.\d+)?$`)
	reDigits = regexp.MustCompile(`^\d{1,3}$`)
	reCode   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9/\-]{3,}$`)

	// Token scanners for the approximate tier.
	reAmountToken = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	reWordToken   = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9/\-]*`)
	hasDigit      = regexp.MustCompile(`\d`)
	hasLetter     = regexp.MustCompile(`[A-Za-z]`)
)

// NormalizeValue validates a captured token against the field's value kind
// and returns its canonical form. A false return means the token does not
// satisfy the kind and the match must be discarded.
func NormalizeValue(kind constants.ValueKind, raw string, enum []string) (string, bool) {
	tok := strings.TrimSpace(raw)
	if tok == "" {
		return "", false
	}
	switch kind {
	case constants.KindNumericCurrency:
		tok = strings.TrimRight(tok, ".,")
		if !reAmount.MatchString(tok) {
			return "", false
		}
		return strings.ReplaceAll(tok, ",", ""), true
	case constants.KindIntegerDuration:
		if !reDigits.MatchString(tok) {
			return "", false
		}
		trimmed := strings.TrimLeft(tok, "0")
		if trimmed == "" {
			trimmed = "0"
		}
		return trimmed, true
	case constants.KindAlphanumericCode:
		if !reCode.MatchString(tok) || !hasDigit.MatchString(tok) {
			return "", false
		}
		return strings.ToUpper(tok), true
	case constants.KindEnumeratedToken:
		norm := strings.ToLower(strings.Join(strings.Fields(tok), "-"))
		for _, e := range enum {
			if norm == strings.ToLower(e) {
				return strings.ToLower(e), true
			}
		}
		return "", false
	case constants.KindFreeText:
		tok = strings.Join(strings.Fields(tok), " ")
		if len(tok) < 2 || !hasLetter.MatchString(tok) {
			return "", false
		}
		return tok, true
	}
	return "", false
}

// scanToken finds a token in text satisfying the field's value kind.
// Numeric-currency takes the rightmost satisfying token (trailing totals are
// the convention in invoice-style layouts); other kinds take the first.
func scanToken(kind constants.ValueKind, text string, enum []string) (raw, norm string, ok bool) {
	switch kind {
	case constants.KindNumericCurrency:
		toks := reAmountToken.FindAllString(text, -1)
		for i := len(toks) - 1; i >= 0; i-- {
			if v, good := NormalizeValue(kind, toks[i], enum); good {
				return toks[i], v, true
			}
		}
	case constants.KindIntegerDuration:
		for _, t := range reAmountToken.FindAllString(text, -1) {
			if v, good := NormalizeValue(kind, t, enum); good {
				return t, v, true
			}
		}
	case constants.KindAlphanumericCode, constants.KindEnumeratedToken:
		for _, t := range reWordToken.FindAllString(text, -1) {
			if v, good := NormalizeValue(kind, t, enum); good {
				return t, v, true
			}
		}
	case constants.KindFreeText:
		t := strings.Trim(text, " :-")
		if v, good := NormalizeValue(kind, t, enum); good {
			return t, v, true
		}
	}
	return "", "", false
}
