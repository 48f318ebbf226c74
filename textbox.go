package textit

import (
	"sort"
	"strings"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/enums"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// extractTextBoxes enumerates a page's text-bearing objects and returns
// their bounding boxes, deduplicated and ordered along the reading-order
// spine described in §4.2: topmost first, then leftmost, ties broken by
// bottom then right. pdfium already reports object bounds in
// bottom-left-origin user-space coordinates, matching BBox directly —
// unlike the teacher's top-left Rect, no Y-flip is needed here.
//
// A recoverable "no page objects" pdfium failure yields zero boxes, a
// true forcedBroken flag, and a nil error, per §4.2/§7: the caller marks
// the page broken instead of propagating. A page that simply has no
// text objects (no error at all) is not forced broken — it is left to
// the ordinary empty/broken-ratio triage in page.go.
func extractTextBoxes(instance pdfium.Pdfium, page references.FPDF_PAGE) (boxes []BBox, forcedBroken bool, err error) {
	countResp, err := instance.FPDFPage_CountObjects(&requests.FPDFPage_CountObjects{
		Page: requests.Page{ByReference: &page},
	})
	if err != nil {
		if isNoPageObjectsError(err) {
			return nil, true, nil
		}
		return nil, false, errors.Wrap(err, "failed to count page objects")
	}

	var raw []BBox

	for i := 0; i < countResp.Count; i++ {
		objResp, err := instance.FPDFPage_GetObject(&requests.FPDFPage_GetObject{
			Page:  requests.Page{ByReference: &page},
			Index: i,
		})
		if err != nil {
			continue
		}

		typeResp, err := instance.FPDFPageObj_GetType(&requests.FPDFPageObj_GetType{
			PageObject: objResp.PageObject,
		})
		if err != nil || typeResp.Type != enums.FPDF_PAGEOBJ_TEXT {
			continue
		}

		boundsResp, err := instance.FPDFPageObj_GetBounds(&requests.FPDFPageObj_GetBounds{
			PageObject: objResp.PageObject,
		})
		if err != nil {
			continue
		}

		raw = append(raw, BBox{
			Left:   float64(boundsResp.Left),
			Bottom: float64(boundsResp.Bottom),
			Right:  float64(boundsResp.Right),
			Top:    float64(boundsResp.Top),
		})
	}

	return dedupAndSortBoxes(raw), false, nil
}

// dedupAndSortBoxes strictly deduplicates boxes by tuple identity
// (§3 invariant iii) and orders them along the reading-order spine
// (§4.2): topmost first, then leftmost, ties broken by bottom then
// right.
func dedupAndSortBoxes(raw []BBox) []BBox {
	seen := make(map[BBox]struct{}, len(raw))
	var unique []BBox
	for _, box := range raw {
		if _, dup := seen[box]; dup {
			continue
		}
		seen[box] = struct{}{}
		unique = append(unique, box)
	}

	sort.Slice(unique, func(i, j int) bool {
		a, b := unique[i], unique[j]
		ka := sortKey{negTop: -a.Top, left: a.Left, bottom: a.Bottom, right: a.Right}
		kb := sortKey{negTop: -b.Top, left: b.Left, bottom: b.Bottom, right: b.Right}
		return ka.less(kb)
	})

	return unique
}

// sortKey is the (-top, left, bottom, right) reading-order key from §4.2.
type sortKey struct {
	negTop, left, bottom, right float64
}

func (k sortKey) less(other sortKey) bool {
	if k.negTop != other.negTop {
		return k.negTop < other.negTop
	}
	if k.left != other.left {
		return k.left < other.left
	}
	if k.bottom != other.bottom {
		return k.bottom < other.bottom
	}
	return k.right < other.right
}

// isNoPageObjectsError reports whether err is the recoverable pdfium
// failure documented in §4.2/§7 ("Failed to get number of page
// objects").
func isNoPageObjectsError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Failed to get number of page objects") ||
		strings.Contains(msg, "no page objects")
}
