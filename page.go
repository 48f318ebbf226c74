package textit

import (
	"strings"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// Page is a single PDF page's lazily-computed derived structure: a
// region/line tree, assembled text, and the triage flags that drive the
// OCR-fallback decision (spec.md §3, §4.5). Page is not safe for
// concurrent use — the pipeline contract (spec.md §5) is single-threaded
// per document, so caches below are plain nil-checked fields rather than
// sync.Once cells.
type Page struct {
	Index  int
	Width  float64
	Height float64

	instance pdfium.Pdfium
	ref      references.FPDF_PAGE
	cfg      Config

	textPage    references.FPDF_TEXTPAGE
	textPageSet bool

	regions      []Region
	regionsSet   bool
	forcedBroken bool

	lines    []Line
	linesSet bool

	text    string
	textSet bool

	empty    bool
	emptySet bool

	broken    bool
	brokenSet bool
}

// newPage opens the page library handle and reads its size; it does not
// extract text boxes or run clustering yet.
func newPage(instance pdfium.Pdfium, doc references.FPDF_DOCUMENT, index int, cfg Config) (*Page, error) {
	pageResp, err := instance.FPDF_LoadPage(&requests.FPDF_LoadPage{
		Document: doc,
		Index:    index,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load page")
	}

	widthResp, err := instance.FPDF_GetPageWidthF(&requests.FPDF_GetPageWidthF{
		Page: requests.Page{ByReference: &pageResp.Page},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page width")
	}

	heightResp, err := instance.FPDF_GetPageHeightF(&requests.FPDF_GetPageHeightF{
		Page: requests.Page{ByReference: &pageResp.Page},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page height")
	}

	return &Page{
		Index:    index,
		Width:    float64(widthResp.PageWidth),
		Height:   float64(heightResp.PageHeight),
		instance: instance,
		ref:      pageResp.Page,
		cfg:      cfg,
	}, nil
}

// loadTextPage opens the page's text layer on first access and reuses
// the handle for every subsequent bounded-text query.
func (p *Page) loadTextPage() (references.FPDF_TEXTPAGE, error) {
	if p.textPageSet {
		return p.textPage, nil
	}

	resp, err := p.instance.FPDFText_LoadPage(&requests.FPDFText_LoadPage{
		Page: requests.Page{ByReference: &p.ref},
	})
	if err != nil {
		return references.FPDF_TEXTPAGE(""), errors.Wrap(err, "failed to load text page")
	}

	p.textPage = resp.TextPage
	p.textPageSet = true
	return p.textPage, nil
}

// close releases the underlying pdfium page (and text page, if opened)
// handles.
func (p *Page) close() {
	if p.textPageSet {
		_, _ = p.instance.FPDFText_ClosePage(&requests.FPDFText_ClosePage{
			TextPage: p.textPage,
		})
	}
	_, _ = p.instance.FPDF_ClosePage(&requests.FPDF_ClosePage{
		Page: requests.Page{ByReference: &p.ref},
	})
}

// Regions returns the page's region tree, computing it on first access.
// A recoverable pdfium page-object failure yields zero regions rather
// than propagating (spec.md §4.2/§7); any other failure is returned.
func (p *Page) Regions() ([]Region, error) {
	if p.regionsSet {
		return p.regions, nil
	}

	boxes, forcedBroken, err := extractTextBoxes(p.instance, p.ref)
	if err != nil {
		return nil, err
	}

	p.forcedBroken = forcedBroken
	p.regions = clusterPage(boxes, p.cfg)
	p.regionsSet = true
	return p.regions, nil
}

// Lines returns every line on the page, region by region, in reading
// order, computing the whole page's line tree on first access.
func (p *Page) Lines() ([]Line, error) {
	if p.linesSet {
		return p.lines, nil
	}

	regions, err := p.Regions()
	if err != nil {
		return nil, err
	}

	if len(regions) == 0 {
		p.lines = nil
		p.linesSet = true
		return p.lines, nil
	}

	textPage, err := p.loadTextPage()
	if err != nil {
		return nil, err
	}

	var all []Line
	for _, region := range regions {
		lines, err := assembleLines(p.instance, textPage, region)
		if err != nil {
			return nil, err
		}
		all = append(all, lines...)
	}

	p.lines = all
	p.linesSet = true
	return p.lines, nil
}

// LinesForRegion assembles the lines belonging to a single region. The
// paragraph reconstructor needs per-region line lists (to compute each
// region's text-left-margin independently), whereas Lines/Text flatten
// every region together.
func (p *Page) LinesForRegion(region Region) ([]Line, error) {
	textPage, err := p.loadTextPage()
	if err != nil {
		return nil, err
	}
	return assembleLines(p.instance, textPage, region)
}

// Text returns the page's full assembled text (all regions, all lines,
// joined with newlines), computing it on first access.
func (p *Page) Text() (string, error) {
	if p.textSet {
		return p.text, nil
	}

	lines, err := p.Lines()
	if err != nil {
		return "", err
	}

	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text
	}

	p.text = strings.Join(texts, "\n")
	p.textSet = true
	return p.text, nil
}

// Empty reports whether the page's assembled text is empty (spec.md
// §4.5).
func (p *Page) Empty() (bool, error) {
	if p.emptySet {
		return p.empty, nil
	}

	text, err := p.Text()
	if err != nil {
		return false, err
	}

	p.empty = text == ""
	p.emptySet = true
	return p.empty, nil
}

// Broken reports whether the page's assembled text is non-empty but its
// allowlisted-character ratio falls strictly below cfg.BrokenCharRatio
// (spec.md §4.5).
func (p *Page) Broken() (bool, error) {
	if p.brokenSet {
		return p.broken, nil
	}

	// Ensure Regions() has run so forcedBroken (the recoverable
	// "no page objects" pdfium failure, §4.2) is populated.
	if _, err := p.Regions(); err != nil {
		return false, err
	}
	if p.forcedBroken {
		p.broken = true
		p.brokenSet = true
		return p.broken, nil
	}

	empty, err := p.Empty()
	if err != nil {
		return false, err
	}
	if empty {
		p.broken = false
		p.brokenSet = true
		return p.broken, nil
	}

	p.broken = allowlistRatio(p.text) < p.cfg.BrokenCharRatio
	p.brokenSet = true
	return p.broken, nil
}
