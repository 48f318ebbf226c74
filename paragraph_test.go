package textit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndsInTerminalPunctuation_Period(t *testing.T) {
	assert.True(t, endsInTerminalPunctuation("a sentence."))
}

func TestEndsInTerminalPunctuation_ClosingQuoteDefersToPriorChar(t *testing.T) {
	assert.True(t, endsInTerminalPunctuation(`he said "stop."`))
	assert.False(t, endsInTerminalPunctuation(`just a "quote"`))
}

func TestEndsInTerminalPunctuation_Empty(t *testing.T) {
	assert.False(t, endsInTerminalPunctuation(""))
}

func TestRegionTextLeftMargin_Mean(t *testing.T) {
	lines := []Line{
		{Box: BBox{Left: 0, Bottom: 0, Right: 10, Top: 10}},
		{Box: BBox{Left: 10, Bottom: 0, Right: 20, Top: 10}},
	}
	assert.Equal(t, 5.0, regionTextLeftMargin(lines))
}

func TestComputeLineFeatures_TooLeftRejectsIndentedLine(t *testing.T) {
	cfg := DefaultConfig()
	region := BBox{Left: 0, Bottom: 0, Right: 100, Top: 100}
	line := BBox{Left: 50, Bottom: 0, Right: 90, Top: 10}

	f := computeLineFeatures(region, 0, line, "Acest text incepe indentat corect aici", cfg)
	assert.True(t, f.TooLeft)
	assert.False(t, acceptLine(f, cfg))
}

func TestComputeLineFeatures_ParagraphStartOnUppercase(t *testing.T) {
	cfg := DefaultConfig()
	region := BBox{Left: 0, Bottom: 0, Right: 100, Top: 100}
	line := BBox{Left: 0, Bottom: 0, Right: 95, Top: 10}

	f := computeLineFeatures(region, 0, line, "Acesta este un paragraf obisnuit in limba romana.", cfg)
	assert.True(t, f.ParagraphStart)
	assert.True(t, acceptLine(f, cfg))
}

func TestComputeLineFeatures_EndsAbruptlyWithoutPunctuationRejected(t *testing.T) {
	cfg := DefaultConfig()
	region := BBox{Left: 0, Bottom: 0, Right: 100, Top: 100}
	line := BBox{Left: 0, Bottom: 0, Right: 50, Top: 10}

	f := computeLineFeatures(region, 0, line, "Acesta este un text care se opreste brusc", cfg)
	assert.True(t, f.EndsAbruptly)
	assert.False(t, f.Punctuation)
	assert.False(t, acceptLine(f, cfg))
}

func TestReferenceScrub_RemovesBracketedCitationsAndYearParens(t *testing.T) {
	in := "as reported [12, 15] and later (Smith 2003)."
	out := referenceScrub.ReplaceAllString(in, "")
	assert.Equal(t, "as reported and later.", out)
}

// TestReconstructParagraphsFromRegions_HyphenContinuation drives the
// paragraph state machine over synthetic fixtures to exercise the
// hyphen-join continuation case directly, without needing a real PDF
// behind Page.
func TestReconstructParagraphsFromRegions_HyphenContinuation(t *testing.T) {
	cfg := DefaultConfig()
	region := Region{Box: BBox{Left: 0, Bottom: 0, Right: 300, Top: 700}}

	groups := []regionLines{
		{
			Region: region,
			Lines: []Line{
				{Box: BBox{Left: 10, Bottom: 690, Right: 295, Top: 700}, Text: "Acest cuvant se desparte exem-"},
				{Box: BBox{Left: 10, Bottom: 680, Right: 295, Top: 690}, Text: "plu clar."},
			},
		},
	}

	finalLines, originalNLines := reconstructParagraphsFromRegions(groups, cfg)

	assert.Equal(t, 1, originalNLines)
	assert.Equal(t, []string{"Acest cuvant se desparte exemplu clar. "}, finalLines)
}

// TestReconstructParagraphsFromRegions_AbruptCloseThenReopen exercises a
// line that both ends abruptly with terminal punctuation (closing the
// paragraph being built) and a following paragraph-start line that
// reopens the state machine, both in the same region.
func TestReconstructParagraphsFromRegions_AbruptCloseThenReopen(t *testing.T) {
	cfg := DefaultConfig()
	region := Region{Box: BBox{Left: 0, Bottom: 0, Right: 300, Top: 700}}

	groups := []regionLines{
		{
			Region: region,
			Lines: []Line{
				{Box: BBox{Left: 10, Bottom: 690, Right: 250, Top: 700}, Text: "Primul paragraf se incheie brusc."},
				{Box: BBox{Left: 10, Bottom: 680, Right: 295, Top: 690}, Text: "Al doilea paragraf incepe aici."},
			},
		},
	}

	finalLines, originalNLines := reconstructParagraphsFromRegions(groups, cfg)

	assert.Equal(t, 2, originalNLines)
	assert.Equal(t, []string{
		"Primul paragraf se incheie brusc.",
		"Al doilea paragraf incepe aici. ",
	}, finalLines)
}
