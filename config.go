package textit

import (
	"log"
	"os"
)

// Config controls every tunable of the PDF reconstruction pipeline. The
// zero value is not useful; use DefaultConfig to get the constants this
// module was calibrated against.
type Config struct {
	// ClusteringThreshold is the maximum number of text boxes a page may
	// have before region clustering is skipped in favor of a single
	// whole-page region (§4.3).
	ClusteringThreshold int

	// EpsilonMin and EpsilonMax clamp the adaptive clustering distance
	// (§4.3).
	EpsilonMin float64
	EpsilonMax float64

	// ModeFrequencyThreshold is the minimum occurrence count for the
	// modal nearest-inter-line distance to be trusted over the median
	// (§4.3).
	ModeFrequencyThreshold int

	// BrokenCharRatio is the allowlisted-character ratio below which a
	// non-empty page is considered broken (§4.5).
	BrokenCharRatio float64

	// BrokenPageSample is the number of leading pages inspected when
	// deciding whether a document is broken (§4.5).
	BrokenPageSample int

	// EndsAbruptlyMargin is the fixed distance (in PDF user-space units)
	// from a region's right margin beyond which a line is considered to
	// end abruptly (§4.7). The source keeps this as a literal constant
	// rather than a proportion of region width; spec.md flags this as a
	// tuning target, not a redesign, so the default preserves it.
	EndsAbruptlyMargin float64

	// TooLeftFraction is the fraction of region width a line may be
	// indented past the region's left margin before it is rejected as
	// "too left" (§4.7).
	TooLeftFraction float64

	// NonWordInitialMax and LowercaseInitialMin are the acceptance-gate
	// thresholds on word-initial casing (§4.7).
	NonWordInitialMax   float64
	LowercaseInitialMin float64

	// OCRBinary and DecryptBinary name the external tools invoked by the
	// OCR fallback driver (§4.6). They are looked up on PATH unless an
	// absolute path is given.
	OCRBinary     string
	DecryptBinary string

	// OCRLanguage is the language code passed to the OCR tool (§4.6).
	OCRLanguage string

	// MaxImageMegapixels caps the OCR tool's rasterization resolution
	// (§6).
	MaxImageMegapixels int

	// ScratchDir is the process-local directory used for OCR/decryption
	// temp files. An empty value uses the OS default temp directory.
	ScratchDir string

	// Logger receives diagnostic messages (pages that fail to load and
	// are skipped). It is never a package-level global; each Document gets
	// its own, constructed here or injected by a caller running one
	// logger per worker process (§5, §9 design note).
	Logger *log.Logger
}

// DefaultConfig returns the literal constants spec.md calibrates the
// pipeline against.
func DefaultConfig() Config {
	return Config{
		ClusteringThreshold:    4000,
		EpsilonMin:             5,
		EpsilonMax:             15,
		ModeFrequencyThreshold: 5,
		BrokenCharRatio:        0.95,
		BrokenPageSample:       10,
		EndsAbruptlyMargin:     25,
		TooLeftFraction:        0.10,
		NonWordInitialMax:      0.35,
		LowercaseInitialMin:    0.35,
		OCRBinary:              "ocrmypdf",
		DecryptBinary:          "qpdf",
		OCRLanguage:            "ron",
		MaxImageMegapixels:     900,
		Logger:                 log.New(os.Stderr, "", log.LstdFlags),
	}
}
