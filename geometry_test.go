package textit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectangleDistance_SelfIsZero(t *testing.T) {
	r := BBox{Left: 10, Bottom: 20, Right: 30, Top: 40}
	assert.Equal(t, 0.0, RectangleDistance(r, r))
}

func TestRectangleDistance_Symmetric(t *testing.T) {
	a := BBox{Left: 0, Bottom: 0, Right: 10, Top: 10}
	b := BBox{Left: 20, Bottom: 20, Right: 30, Top: 30}
	assert.Equal(t, RectangleDistance(a, b), RectangleDistance(b, a))
}

func TestRectangleDistance_Touching(t *testing.T) {
	a := BBox{Left: 0, Bottom: 0, Right: 10, Top: 10}
	b := BBox{Left: 10, Bottom: 0, Right: 20, Top: 10}
	assert.Equal(t, 0.0, RectangleDistance(a, b))
}

func TestRectangleDistance_Gap(t *testing.T) {
	a := BBox{Left: 0, Bottom: 0, Right: 10, Top: 10}
	b := BBox{Left: 15, Bottom: 0, Right: 25, Top: 10}
	assert.Equal(t, 5.0, RectangleDistance(a, b))
}

func TestRectangleDistance_DiagonalGap(t *testing.T) {
	a := BBox{Left: 0, Bottom: 0, Right: 10, Top: 10}
	b := BBox{Left: 15, Bottom: 15, Right: 25, Top: 25}
	assert.Equal(t, 10.0, RectangleDistance(a, b))
}

func TestEncompass(t *testing.T) {
	boxes := []BBox{
		{Left: 0, Bottom: 0, Right: 10, Top: 10},
		{Left: 5, Bottom: -5, Right: 20, Top: 8},
	}
	got := Encompass(boxes)
	require.Equal(t, BBox{Left: 0, Bottom: -5, Right: 20, Top: 10}, got)
}

func TestSameLine_OverlappingBoxes(t *testing.T) {
	a := BBox{Left: 0, Bottom: 0, Right: 10, Top: 10}
	b := BBox{Left: 11, Bottom: 1, Right: 20, Top: 9}
	assert.True(t, SameLine(a, b))
}

func TestSameLine_RightmostEntirelyLeft(t *testing.T) {
	a := BBox{Left: 20, Bottom: 0, Right: 30, Top: 10}
	b := BBox{Left: 0, Bottom: 0, Right: 10, Top: 10}
	assert.False(t, SameLine(a, b))
}

func TestSameLine_DifferentLines(t *testing.T) {
	a := BBox{Left: 0, Bottom: 0, Right: 10, Top: 10}
	b := BBox{Left: 0, Bottom: 20, Right: 10, Top: 30}
	assert.False(t, SameLine(a, b))
}

func TestRelaxedSameLine_MidpointWithinExtent(t *testing.T) {
	a := BBox{Left: 0, Bottom: 0, Right: 10, Top: 10}
	b := BBox{Left: 0, Bottom: 4, Right: 10, Top: 20}
	assert.True(t, relaxedSameLine(a, b))
}

func TestClampFloat(t *testing.T) {
	assert.Equal(t, 5.0, clampFloat(1, 5, 15))
	assert.Equal(t, 15.0, clampFloat(20, 5, 15))
	assert.Equal(t, 8.0, clampFloat(8, 5, 15))
}
