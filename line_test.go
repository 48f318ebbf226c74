package textit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleLines_EmptyRegion(t *testing.T) {
	lines, err := assembleLines(nil, "", Region{})
	assert.NoError(t, err)
	assert.Nil(t, lines)
}

// End-to-end line assembly against a real text page is covered by the
// skip-gated fixture tests in document_test.go; assembleLines' only
// pure-Go decision point (the same-line sweep boundary) is exercised by
// TestSameLine_* in geometry_test.go.
