package textit

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// PageRange selects which pages of a document to process (spec.md
// §4.8). The zero value selects every page. Start/Stop form a
// half-open [Start, Stop) interval with the given Step; when resolved
// against an open document, Start is clamped into [0, pageCount) and
// Stop into [0, pageCount], so every selected index is a valid page.
type PageRange struct {
	set   bool
	Start int
	Stop  int
	Step  int
}

// AllPages is the unset page range: every page, in order.
var AllPages = PageRange{}

// SinglePage selects exactly one page index.
func SinglePage(index int) PageRange {
	return PageRange{set: true, Start: index, Stop: index + 1, Step: 1}
}

// Range selects a half-open [start, stop) interval with the given
// step.
func Range(start, stop, step int) PageRange {
	return PageRange{set: true, Start: start, Stop: stop, Step: step}
}

// resolve clamps start into [0, pageCount) and the exclusive stop into
// [0, pageCount], and fills in a default step of 1.
func (r PageRange) resolve(pageCount int) (start, stop, step int) {
	if !r.set {
		return 0, pageCount, 1
	}

	step = r.Step
	if step == 0 {
		step = 1
	}

	start = clampFloatInt(r.Start, 0, pageCount-1)
	stop = clampFloatInt(r.Stop, 0, pageCount)
	return start, stop, step
}

func clampFloatInt(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// PageContent is one entry of Document.Contents(): a page's index,
// size, and region/line tree (spec.md §4.8).
type PageContent struct {
	Index   int
	Width   float64
	Height  float64
	Regions []Region
	Lines   []Line
}

// Document is the PDF façade: lazy per-page pipeline caching, page-
// range selection, and the single entry point Extract (spec.md §4.8).
type Document struct {
	instance  pdfium.Pdfium
	doc       references.FPDF_DOCUMENT
	path      string
	cfg       Config
	pageCount int
	pageRange PageRange

	pages    []*Page
	pagesSet bool

	brokenSet bool
	broken    bool
}

// Open loads the PDF at path and resolves the given page range against
// its page count. The caller must call Close when done.
func Open(instance pdfium.Pdfium, path string, pageRange PageRange, cfg Config) (*Document, error) {
	docResp, err := instance.OpenDocument(&requests.OpenDocument{
		FilePath: &path,
	})
	if err != nil {
		return nil, err
	}

	countResp, err := instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: docResp.Document,
	})
	if err != nil {
		instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: docResp.Document})
		return nil, errors.Wrap(err, "failed to get page count")
	}

	return &Document{
		instance:  instance,
		doc:       docResp.Document,
		path:      path,
		cfg:       cfg,
		pageCount: countResp.PageCount,
		pageRange: pageRange,
	}, nil
}

// Close releases every opened page and the document handle.
func (d *Document) Close() {
	for _, p := range d.pages {
		p.close()
	}
	d.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: d.doc})
}

// Pages lazily loads and returns every page in the resolved range, in
// order.
func (d *Document) Pages() ([]*Page, error) {
	if d.pagesSet {
		return d.pages, nil
	}

	start, stop, step := d.pageRange.resolve(d.pageCount)

	var pages []*Page
	for i := start; i < stop; i += step {
		page, err := newPage(d.instance, d.doc, i, d.cfg)
		if err != nil {
			if isFailedToLoadPageError(err) {
				d.cfg.Logger.Printf("failed to load page %d of %q, skipping", i, d.path)
				continue
			}
			return nil, err
		}
		pages = append(pages, page)
	}

	d.pages = pages
	d.pagesSet = true
	return d.pages, nil
}

func isFailedToLoadPageError(err error) bool {
	return strings.Contains(err.Error(), "Failed to load page")
}

// Contents returns the ordered (page-index, size, region/line tree)
// view of the document (spec.md §4.8).
func (d *Document) Contents() ([]PageContent, error) {
	pages, err := d.Pages()
	if err != nil {
		return nil, err
	}

	contents := make([]PageContent, 0, len(pages))
	for _, p := range pages {
		regions, err := p.Regions()
		if err != nil {
			return nil, err
		}
		lines, err := p.Lines()
		if err != nil {
			return nil, err
		}
		contents = append(contents, PageContent{
			Index:   p.Index,
			Width:   p.Width,
			Height:  p.Height,
			Regions: regions,
			Lines:   lines,
		})
	}
	return contents, nil
}

// BrokenDocument reports whether, among the first ten pages, at least
// min(3, pageCount) are broken or at least min(3, pageCount) are empty
// (spec.md §4.5).
func (d *Document) BrokenDocument() (bool, error) {
	if d.brokenSet {
		return d.broken, nil
	}

	pages, err := d.Pages()
	if err != nil {
		return false, err
	}

	sample := pages
	if len(sample) > d.cfg.BrokenPageSample {
		sample = sample[:d.cfg.BrokenPageSample]
	}

	var brokenCount, emptyCount int
	for _, p := range sample {
		broken, err := p.Broken()
		if err != nil {
			return false, err
		}
		if broken {
			brokenCount++
			continue
		}
		empty, err := p.Empty()
		if err != nil {
			return false, err
		}
		if empty {
			emptyCount++
		}
	}

	threshold := d.pageCount
	if threshold > 3 {
		threshold = 3
	}

	d.broken = brokenCount >= threshold || emptyCount >= threshold
	d.brokenSet = true
	return d.broken, nil
}

// Extract is the document façade's single entry point (spec.md §4.8):
// it runs triage, the OCR fallback branch if the document is broken,
// and the paragraph reconstructor, returning a Result alongside a
// Metadata record that is populated even on failure.
func Extract(ctx context.Context, path string, instance pdfium.Pdfium, pageRange PageRange, cfg Config) (Result[[]string], Metadata) {
	meta := Metadata{}

	doc, err := Open(instance, path, pageRange, cfg)
	if err != nil {
		meta.DropReason = classifyLoaderError(err)
		return Err[[]string](wrapExtraction(path, err)), meta
	}
	defer doc.Close()

	broken, err := doc.BrokenDocument()
	if err != nil {
		meta.DropReason = DropReasonTextExtractionFailure
		return Err[[]string](wrapExtraction(path, err)), meta
	}

	activeDoc := doc
	if broken {
		meta.OCR = true

		outputPath, decrypted, ocrErr := applyOCR(ctx, path, cfg)
		meta.Decrypted = decrypted
		if ocrErr != nil {
			meta.DropReason = DropReasonTextExtractionFailure
			return Err[[]string](wrapExtraction(path, ocrErr)), meta
		}
		defer os.RemoveAll(filepath.Dir(outputPath))

		ocrDoc, err := Open(instance, outputPath, pageRange, cfg)
		if err != nil {
			meta.DropReason = classifyLoaderError(err)
			return Err[[]string](wrapExtraction(path, err)), meta
		}
		defer ocrDoc.Close()

		activeDoc = ocrDoc
	}

	pages, err := activeDoc.Pages()
	if err != nil {
		meta.DropReason = DropReasonTextExtractionFailure
		return Err[[]string](wrapExtraction(path, err)), meta
	}

	lines, originalNLines, err := reconstructParagraphs(pages, cfg)
	if err != nil {
		meta.DropReason = DropReasonTextExtractionFailure
		return Err[[]string](wrapExtraction(path, err)), meta
	}
	meta.OriginalNLines = originalNLines

	return Ok(lines), meta
}
