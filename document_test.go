package textit_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	textit "github.com/cs-pub-ro/textit-go"
)

// setupPDFium initialises a pdfium instance for testing.
func setupPDFium(t *testing.T) pdfium.Pdfium {
	t.Helper()

	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
	})

	instance, err := pool.GetInstance(time.Second * 30)
	require.NoError(t, err)

	return instance
}

func TestDocument_Extract_CleanSingleColumn(t *testing.T) {
	instance := setupPDFium(t)

	testPDFPath := filepath.Join("testdata", "simple.pdf")
	if _, err := os.Stat(testPDFPath); os.IsNotExist(err) {
		t.Skip("Test PDF not found, skipping test")
		return
	}

	result, meta := textit.Extract(context.Background(), testPDFPath, instance, textit.AllPages, textit.DefaultConfig())
	require.True(t, result.IsOk())
	assert.False(t, meta.OCR)
	assert.False(t, meta.Decrypted)
	assert.Empty(t, meta.DropReason)
}

func TestDocument_Open_MissingFileYieldsDropReason(t *testing.T) {
	instance := setupPDFium(t)

	result, meta := textit.Extract(context.Background(), filepath.Join("testdata", "does-not-exist.pdf"), instance, textit.AllPages, textit.DefaultConfig())
	assert.False(t, result.IsOk())
	assert.NotEmpty(t, meta.DropReason)
}
