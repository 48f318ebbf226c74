package textit

import "math"

// BBox is an axis-aligned bounding box in PDF user-space coordinates.
// The origin is bottom-left; Top >= Bottom and Right >= Left for any
// non-empty box.
type BBox struct {
	Left, Bottom, Right, Top float64
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Top - b.Bottom
}

// Empty reports whether the box has no area.
func (b BBox) Empty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// RectangleDistance computes the L1-like gap between two rectangles:
// zero if their projections overlap on an axis, otherwise the positive
// gap on that axis. This is not Euclidean center-to-center distance;
// touching or overlapping rectangles have distance 0.
func RectangleDistance(a, b BBox) float64 {
	var horizontal float64
	switch {
	case a.Right < b.Left:
		horizontal = b.Left - a.Right
	case b.Right < a.Left:
		horizontal = a.Left - b.Right
	default:
		horizontal = 0
	}

	var vertical float64
	switch {
	case a.Top < b.Bottom:
		vertical = b.Bottom - a.Top
	case b.Top < a.Bottom:
		vertical = a.Bottom - b.Top
	default:
		vertical = 0
	}

	return horizontal + vertical
}

// Encompass returns the minimal box enclosing every box in boxes. It
// panics if boxes is empty; callers must guard the empty case.
func Encompass(boxes []BBox) BBox {
	result := boxes[0]
	for _, b := range boxes[1:] {
		result.Left = math.Min(result.Left, b.Left)
		result.Bottom = math.Min(result.Bottom, b.Bottom)
		result.Right = math.Max(result.Right, b.Right)
		result.Top = math.Max(result.Top, b.Top)
	}
	return result
}

// SameLine is the strict same-line predicate used by line assembly
// (§4.1, §4.4). Two boxes are on the same line when their vertical
// overlap is at least half of either box's height (with a 2-unit slack
// for sub-pixel jitter), and the second box's right edge is not
// entirely left of the first box's left edge.
func SameLine(a, b BBox) bool {
	if b.Right < a.Left {
		return false
	}

	h1 := a.Top - a.Bottom
	h2 := b.Top - b.Bottom

	overlapTop := math.Min(a.Top, b.Top)
	overlapBottom := math.Max(a.Bottom, b.Bottom)
	overlap := math.Max(0, overlapTop-overlapBottom)

	return overlap >= 0.5*h1-2 || overlap >= 0.5*h2-2
}

// relaxedSameLine is used only while estimating the clustering epsilon
// (§4.3): two boxes are "relaxed same line" when the vertical midpoint
// of either one falls within the other's vertical extent.
func relaxedSameLine(a, b BBox) bool {
	m1 := (a.Bottom + a.Top) / 2
	m2 := (b.Bottom + b.Top) / 2
	return (a.Bottom <= m2 && m2 <= a.Top) || (b.Bottom <= m1 && m1 <= b.Top)
}

// clampFloat restricts value to [lo, hi].
func clampFloat(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
