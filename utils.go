package textit

import "sort"

// calculateMedian returns the sorted middle element of values, i.e. the
// Python original's `distances[len(distances) // 2]` — the upper-middle
// element of an even-length list, not the textbook average of the two
// middle elements. Adapted from the teacher's helper of the same name
// (utils.go); geometry/rotation helpers that had no SPEC_FULL.md
// consumer (rect rotation, angle inference, rect containment) were not
// carried over — see DESIGN.md for the full accounting of dropped
// teacher helpers.
func calculateMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return sorted[len(sorted)/2]
}
