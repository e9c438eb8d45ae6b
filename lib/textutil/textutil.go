package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Fold puts s in a form suitable for case-insensitive comparison: NFC
// normalized, case folded, with ZWNJ (common in Persian text) dropped.
func Fold(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\u200c", "")
	return cases.Fold().String(s)
}

// NormalizeName folds s and removes all whitespace.
func NormalizeName(name string) string {
	name = Fold(strings.TrimSpace(name))
	return whitespaceRegex.ReplaceAllString(name, "")
}

// ContainsAny reports whether any of `keywords` occurs in `text`, compared
// after folding.
func ContainsAny(text string, keywords []string) bool {
	text = Fold(text)
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(text, Fold(k)) {
			return true
		}
	}
	return false
}

// MatchName reports whether the normalized name contains any of the
// already-normalized matchers.
func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}
