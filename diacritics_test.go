package textit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixDiacritics_ReplacesKnownGlyphs(t *testing.T) {
	got := fixDiacritics("continuÃãre")
	assert.Equal(t, "continuĂăre", got)
}

func TestFixDiacritics_EndOfLineDashArtifact(t *testing.T) {
	got := fixDiacritics("continu\x02")
	assert.Equal(t, "continu-", got)
}

func TestFixDiacritics_Idempotent(t *testing.T) {
	input := "Ã ã º ª þ Þ \x02 text unchanged 123"
	once := fixDiacritics(input)
	twice := fixDiacritics(once)
	assert.Equal(t, once, twice)
}

func TestFixDiacritics_PreservesUntargetedRunes(t *testing.T) {
	input := "Știință și tehnologie — 2024"
	got := fixDiacritics(input)
	assert.Equal(t, input, got)
}
