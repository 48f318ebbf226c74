package textit

import "strings"

// diacriticReplacer fixes a small set of common mis-encoded glyphs
// found in Romanian PDFs and OCR output into their correct diacritics
// (§4.4). It is deliberately a pure, literal substitution — no other
// normalization happens here, so it stays idempotent and leaves every
// non-targeted character untouched (spec.md §8, invariant 4).
var diacriticReplacer = strings.NewReplacer(
	"ã", "ă",
	"Ã", "Ă",
	"º", "ș",
	"ª", "Ș",
	"þ", "ț",
	"Þ", "Ț",
	"\x02", "-",
)

// fixDiacritics applies the replacements above to s.
func fixDiacritics(s string) string {
	return diacriticReplacer.Replace(s)
}
