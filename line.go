package textit

import (
	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

// Line is an encompassing box over a contiguous run of same-line boxes
// within a region, plus the line's extracted, repaired text (§3).
type Line struct {
	Box  BBox
	Text string
}

// assembleLines sweeps a region's reading-order boxes into lines using
// the strict same-line predicate (§4.1), then extracts each line's text
// from the page's text layer. Adapted from the teacher's line-sweep
// shape (structure.go's groupWordsIntoLinesBaseline) and the exact
// assembly algorithm of the Python original's Page._compute_lines.
func assembleLines(instance pdfium.Pdfium, textPage references.FPDF_TEXTPAGE, region Region) ([]Line, error) {
	boxes := region.Boxes
	if len(boxes) == 0 {
		return nil, nil
	}

	var lines []Line
	current := []BBox{boxes[0]}

	flush := func() error {
		box := Encompass(current)
		text, err := boundedText(instance, textPage, box)
		if err != nil {
			return err
		}
		text = norm.NFC.String(text)
		text = fixDiacritics(text)
		lines = append(lines, Line{Box: box, Text: text})
		return nil
	}

	for i := 1; i < len(boxes); i++ {
		prev := boxes[i-1]
		next := boxes[i]
		if SameLine(prev, next) {
			current = append(current, next)
			continue
		}
		if err := flush(); err != nil {
			return nil, err
		}
		current = []BBox{next}
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return lines, nil
}

// boundedText queries the page's text layer for the text contained
// within box.
func boundedText(instance pdfium.Pdfium, textPage references.FPDF_TEXTPAGE, box BBox) (string, error) {
	resp, err := instance.FPDFText_GetBoundedText(&requests.FPDFText_GetBoundedText{
		TextPage: textPage,
		Left:     box.Left,
		Top:      box.Top,
		Right:    box.Right,
		Bottom:   box.Bottom,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to get bounded text")
	}
	return resp.Text, nil
}
