package textit

import (
	"regexp"
	"strings"
	"unicode"
)

// lineFeatures is the per-line quality/shape vector the acceptance gate
// and paragraph state machine are driven by (spec.md §3, §4.7).
type lineFeatures struct {
	CharCount      int
	WordCount      int
	NonWordRatio   float64
	LowercaseRatio float64
	AllowlistRatio float64
	LineIndent     bool
	TooLeft        bool
	EndsAbruptly   bool
	Punctuation    bool
	ParagraphStart bool
}

// terminalPunctuation is the set of characters that close a sentence.
var terminalPunctuation = map[rune]struct{}{
	'.': {}, '!': {}, '?': {}, ':': {}, ';': {}, '…': {},
}

var closingQuotes = map[rune]struct{}{
	'"': {}, '”': {}, '»': {},
}

// endsInTerminalPunctuation mirrors the original's ends_in_punctuation:
// a trailing closing quote defers the check to the character before it.
func endsInTerminalPunctuation(line string) bool {
	runes := []rune(strings.TrimSpace(line))
	if len(runes) == 0 {
		return false
	}

	last := runes[len(runes)-1]
	if _, ok := terminalPunctuation[last]; ok {
		return true
	}

	if _, ok := closingQuotes[last]; ok {
		if len(runes) == 1 {
			return false
		}
		_, ok := terminalPunctuation[runes[len(runes)-2]]
		return ok
	}

	return false
}

// regionTextLeftMargin is the arithmetic mean of a region's line left
// coordinates (spec.md §4.7's "region's text-left-margin").
func regionTextLeftMargin(lines []Line) float64 {
	if len(lines) == 0 {
		return 0
	}
	var sum float64
	for _, l := range lines {
		sum += l.Box.Left
	}
	return sum / float64(len(lines))
}

// computeLineFeatures builds the feature vector for one stripped line
// within a region, per spec.md §4.7's quality_stats.
func computeLineFeatures(regionBox BBox, textLeftMargin float64, lineBox BBox, text string, cfg Config) lineFeatures {
	var f lineFeatures
	f.CharCount = len([]rune(text))

	words := strings.Fields(text)
	f.WordCount = len(words)

	var capWords, lowWords, nonWords int
	for _, w := range words {
		r := []rune(w)[0]
		switch {
		case unicode.IsUpper(r):
			capWords++
		case unicode.IsLower(r):
			lowWords++
		default:
			nonWords++
		}
	}
	_ = capWords
	if f.WordCount > 0 {
		f.NonWordRatio = float64(nonWords) / float64(f.WordCount)
		f.LowercaseRatio = float64(lowWords) / float64(f.WordCount)
	}

	f.AllowlistRatio = allowlistRatio(text)

	boxWidth := regionBox.Width()
	maxIndent := cfg.TooLeftFraction * boxWidth
	f.LineIndent = absFloat(lineBox.Left-textLeftMargin) >= 2
	f.TooLeft = absFloat(lineBox.Left-regionBox.Left) >= maxIndent
	f.EndsAbruptly = absFloat(lineBox.Right-regionBox.Right) >= cfg.EndsAbruptlyMargin
	f.Punctuation = endsInTerminalPunctuation(text)

	if text != "" {
		first := []rune(text)[0]
		f.ParagraphStart = unicode.IsUpper(first) || first == '-' || first == '—'
	}

	return f
}

// acceptLine applies the acceptance gate of spec.md §4.7: reject a
// line if any disqualifying condition holds.
func acceptLine(f lineFeatures, cfg Config) bool {
	if f.AllowlistRatio <= 0.95 {
		return false
	}
	if f.NonWordRatio >= cfg.NonWordInitialMax {
		return false
	}
	if f.LowercaseRatio < cfg.LowercaseInitialMin {
		return false
	}
	if f.EndsAbruptly && !f.Punctuation {
		return false
	}
	if f.TooLeft {
		return false
	}
	return true
}

// referenceScrub removes in-text bracketed numeric citations and
// parenthesized year-bearing fragments, ported verbatim from the
// original's remove_references pattern.
var referenceScrub = regexp.MustCompile(
	`( ?(\[[0-9]+((-?[0-9]+)?(, ?[0-9]+)*)\])+)` +
		`|( ?\([0-9]+((-?[0-9]+)?(, ?[0-9]+)*)\))` +
		`|( ?\([^\)]*[0-9][0-9][0-9][0-9].?\))`,
)

// regionLines pairs a region with its already-assembled lines, the unit
// reconstructParagraphsFromRegions iterates over. Splitting this out of
// Page keeps the state machine itself free of pdfium calls, so it can
// be driven directly from synthetic fixtures in tests.
type regionLines struct {
	Region Region
	Lines  []Line
}

// reconstructParagraphs runs the paragraph state machine over a
// document's full (page, region, line) tree in order (spec.md §4.7).
func reconstructParagraphs(pages []*Page, cfg Config) (finalLines []string, originalNLines int, err error) {
	var groups []regionLines

	for _, page := range pages {
		regions, regionsErr := page.Regions() // boxes per region, reading order
		if regionsErr != nil {
			return nil, 0, regionsErr
		}

		for _, region := range regions {
			lines, linesErr := page.LinesForRegion(region)
			if linesErr != nil {
				return nil, 0, linesErr
			}
			groups = append(groups, regionLines{Region: region, Lines: lines})
		}
	}

	finalLines, originalNLines = reconstructParagraphsFromRegions(groups, cfg)
	return finalLines, originalNLines, nil
}

// reconstructParagraphsFromRegions is the paragraph state machine
// proper (spec.md §4.7), operating on already-assembled region/line
// groups. The continuation glyph drop and stripped-text append both
// mirror the original's actual behavior (spec.md §9's two preserved
// open questions).
func reconstructParagraphsFromRegions(groups []regionLines, cfg Config) (finalLines []string, originalNLines int) {
	var paragraphs []string
	var buffer strings.Builder
	building := false

	for _, group := range groups {
		textLeftMargin := regionTextLeftMargin(group.Lines)

		for _, line := range group.Lines {
			text := strings.TrimSpace(line.Text)
			f := computeLineFeatures(group.Region.Box, textLeftMargin, line.Box, text, cfg)
			if !acceptLine(f, cfg) {
				continue
			}

			if f.ParagraphStart {
				building = true
			}

			if !building {
				continue
			}

			if f.EndsAbruptly && f.Punctuation {
				buffer.WriteString(text)
				paragraphs = append(paragraphs, buffer.String())
				buffer.Reset()
				building = false
				continue
			}

			runes := []rune(text)
			if len(runes) > 0 {
				last := runes[len(runes)-1]
				if last == '—' || last == '-' || last == '\x02' {
					buffer.WriteString(string(runes[:len(runes)-1]))
					continue
				}
			}
			buffer.WriteString(text)
			buffer.WriteString(" ")
		}
	}

	if buffer.Len() > 0 {
		paragraphs = append(paragraphs, buffer.String())
	}

	originalNLines = len(paragraphs)

	joined := strings.Join(paragraphs, "\n")
	joined = referenceScrub.ReplaceAllString(joined, "")

	return strings.Split(joined, "\n"), originalNLines
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
