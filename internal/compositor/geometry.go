package compositor

import (
	ierr "github.com/pcist/pcist-backend/internal/errors"
)

// All geometry is in PDF points (1" = 72pt) on A4 paper.
const (
	pageWidth  = 595.28
	pageHeight = 841.89

	marginTop    = 20 * ptPerMM // 20mm
	marginBottom = 20 * ptPerMM
	marginSide   = 15 * ptPerMM

	ptPerMM = 72.0 / 25.4

	logoSizePt   = 70
	logoCorner   = 12
	accentRuleH  = 2
	cornerMarkPt = 48

	// Signature block geometry, shared by all compositors.
	sigLineWidth  = 150.0
	sigBlockH     = 64.0
	sigZoneHeight = 96.0

	// Mode-B slicing.
	sliceCropMargin = 18 * ptPerMM // trimmed off every source page edge
	sliceOverlap    = 34.0         // ~2 text lines; keeps a line off the page seam
	sliceMinViable  = 72.0         // a band shorter than this is deferred
	sliceMaxZoom    = 1.35
)

func contentWidth() float64 {
	return pageWidth - 2*marginSide
}

// SignatureAlign is the horizontal placement of one signature block.
type SignatureAlign int

const (
	SignLeft SignatureAlign = iota
	SignCenter
	SignRight
)

// signatureSlots maps the signatory count to block placements:
// 0 none, 1 right, 2 left+right, 3 left+center+right. Counts above three
// are the caller's bug; the input is truncated before reaching here.
func signatureSlots(n int) []SignatureAlign {
	switch n {
	case 0:
		return nil
	case 1:
		return []SignatureAlign{SignRight}
	case 2:
		return []SignatureAlign{SignLeft, SignRight}
	default:
		return []SignatureAlign{SignLeft, SignCenter, SignRight}
	}
}

// slotX returns the left edge of a signature block of width w.
func slotX(align SignatureAlign, w float64) float64 {
	switch align {
	case SignLeft:
		return marginSide
	case SignCenter:
		return (pageWidth - w) / 2
	default:
		return pageWidth - marginSide - w
	}
}

// sliceBand is one vertical band of scaled source content mapped onto one
// output page.
type sliceBand struct {
	Start  float64 // offset into the scaled content, pt
	Height float64
	Final  bool
}

// planSlices cuts totalH of scaled content into bands of at most bandH.
// Consecutive bands overlap by `overlap`, subtracted from the advance so
// nothing is skipped. A non-final remainder shorter than minViable is
// deferred whole to the next band by shrinking the current one. The final
// band must leave `reserve` free, so its height is capped at
// bandH - reserve.
//
// Invariant: the advances (height minus overlap for every band but the
// last, plus the last band's full height) sum to exactly totalH.
func planSlices(totalH, bandH, overlap, minViable, reserve float64) ([]sliceBand, error) {
	if totalH <= 0 {
		return nil, ierr.NewError("no content to paginate").
			Mark(ierr.ErrPagination)
	}
	finalCap := bandH - reserve
	if bandH <= overlap || finalCap <= overlap {
		return nil, ierr.NewError("slice height does not exceed overlap").
			WithHintf("band %.1fpt, overlap %.1fpt, reserve %.1fpt", bandH, overlap, reserve).
			Mark(ierr.ErrPagination)
	}

	var bands []sliceBand
	pos := 0.0
	for {
		remaining := totalH - pos
		if remaining <= finalCap {
			bands = append(bands, sliceBand{Start: pos, Height: remaining, Final: true})
			return bands, nil
		}

		h := bandH
		// Shrink this band when the leftover after it would be a sliver,
		// pushing a full minViable worth of content to the next band.
		if after := remaining - (h - overlap); after < minViable {
			h = remaining - minViable + overlap
		}

		advance := h - overlap
		if advance <= 0 {
			return nil, ierr.NewError("slicing makes no forward progress").
				WithHintf("band %.1fpt, overlap %.1fpt", h, overlap).
				Mark(ierr.ErrPagination)
		}

		bands = append(bands, sliceBand{Start: pos, Height: h})
		pos += advance
	}
}
