package evaluate

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalize trims surrounding whitespace and case-folds s. With diacritic
// folding enabled it also strips combining marks after canonical decomposition.
// The same function is applied to both sides of every comparison.
func (e *Evaluator) normalize(s string) string {
	s = strings.TrimSpace(s)
	// Casers keep state, so each call gets its own.
	s = cases.Fold().String(s)
	if !e.foldDiacritics {
		return norm.NFC.String(s)
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
