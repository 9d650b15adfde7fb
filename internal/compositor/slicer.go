package compositor

import (
	"bytes"
	"context"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"

	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/types"
)

// firstContentTop is where content begins under the letterhead and the
// date/serial line.
const firstContentTop = marginTop + headerHeight + 24

// sourcePage is one imported page with its crop/scale transform resolved.
type sourcePage struct {
	tpl     int
	width   float64 // raw page width, pt
	crop    float64 // trimmed off each edge, pt
	scale   float64
	scaledW float64
	scaledH float64
}

// WrapPDF renders a mode-B document: every page of the uploaded PDF is
// cropped, scaled and sliced into vertical bands, one band per branded
// output page. Bands overlap so a text line cut by the seam repeats whole
// on the next page.
func (s *service) WrapPDF(ctx context.Context, in StatementInput) (*Result, error) {
	if len(in.SourcePDF) == 0 {
		return nil, ierr.NewError("source pdf is empty").
			WithHint("upload a pdf to wrap").
			Mark(ierr.ErrValidation)
	}

	stamp, err := s.serial.Allocate(ctx, types.DocumentKindStatement, Stamp{Serial: in.Serial, DateStr: in.DateStr})
	if err != nil {
		return nil, err
	}
	logos, err := s.assets.Logos()
	if err != nil {
		return nil, err
	}
	signers := in.Authorizers.Truncated()

	pdf := newDocument()
	// Fresh importer per call: the package-level gofpdi helpers share one
	// global importer, which would leak a previous request's pages into
	// this one and race under concurrent wraps.
	imp := gofpdi.NewImporter()
	pages, err := importSource(imp, pdf, in.SourcePDF)
	if err != nil {
		return nil, err
	}

	contH := pageHeight - marginBottom - contPageTop
	firstH := pageHeight - marginBottom - firstContentTop

	outPage := 0
	for i, sp := range pages {
		reserve := 0.0
		if i == len(pages)-1 && len(signers) > 0 {
			reserve = sigZoneHeight
		}

		var bands []sliceBand
		if i == 0 {
			bands, err = planWithLead(sp.scaledH, firstH, contH, sliceOverlap, sliceMinViable, reserve)
		} else {
			bands, err = planSlices(sp.scaledH, contH, sliceOverlap, sliceMinViable, reserve)
		}
		if err != nil {
			return nil, err
		}

		for _, band := range bands {
			pdf.AddPage()
			yTop := contPageTop
			if outPage == 0 {
				yTop = firstContentTop
			}
			s.drawBand(pdf, imp, sp, band, yTop)

			drawCornerOrnaments(pdf)
			if outPage == 0 {
				s.drawHeader(pdf, logos, in.ContactEmail, in.ContactPhone, in.Address)
				drawMeta(pdf, marginTop+headerHeight, stamp)
			}
			if i == len(pages)-1 && band.Final && len(signers) > 0 {
				drawSignatures(pdf, pageHeight-marginBottom-sigBlockH, signers)
			}
			outPage++
		}
	}

	out, err := renderOutput(pdf, types.DocumentKindStatement)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("composed wrapped pdf", "serial", stamp.Serial,
		"source_pages", len(pages), "output_pages", outPage, "signers", len(signers))
	return &Result{PDF: out, Serial: stamp.Serial, DateStr: stamp.DateStr}, nil
}

// drawBand places the imported template so the band's slice of scaled
// content lands between yTop and yTop+band.Height, then masks everything
// outside that window.
func (s *service) drawBand(pdf *gofpdf.Fpdf, imp *gofpdi.Importer, sp sourcePage, band sliceBand, yTop float64) {
	xOffset := marginSide + (contentWidth()-sp.scaledW)/2

	tx := xOffset - sp.crop*sp.scale
	ty := yTop - sp.crop*sp.scale - band.Start
	imp.UseImportedTemplate(pdf, sp.tpl, tx, ty, sp.width*sp.scale, 0)

	// White out everything outside the band window.
	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(0, 0, pageWidth, yTop, "F")
	bottom := yTop + band.Height
	pdf.Rect(0, bottom, pageWidth, pageHeight-bottom, "F")
	pdf.Rect(0, 0, xOffset, pageHeight, "F")
	pdf.Rect(xOffset+sp.scaledW, 0, pageWidth-xOffset-sp.scaledW, pageHeight, "F")
}

// importSource parses the uploaded PDF and imports every page as a
// template, resolving each page's crop and zoom. The importer panics on
// malformed input, which surfaces here as ErrSourcePDF.
func importSource(imp *gofpdi.Importer, pdf *gofpdf.Fpdf, src []byte) (pages []sourcePage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ierr.NewErrorf("failed to parse source pdf: %v", r).
				WithHint("the uploaded file is not a readable pdf").
				Mark(ierr.ErrSourcePDF)
		}
	}()

	var rs io.ReadSeeker = bytes.NewReader(src)
	first := imp.ImportPageFromStream(pdf, &rs, 1, "/MediaBox")

	sizes := imp.GetPageSizes()
	if len(sizes) == 0 {
		return nil, ierr.NewError("source pdf has no pages").
			Mark(ierr.ErrSourcePDF)
	}

	for n := 1; n <= len(sizes); n++ {
		box, ok := sizes[n]["/MediaBox"]
		if !ok {
			return nil, ierr.NewErrorf("source pdf page %d has no media box", n).
				Mark(ierr.ErrSourcePDF)
		}
		w, h := box["w"], box["h"]

		crop := sliceCropMargin
		if w <= 2*crop || h <= 2*crop {
			crop = 0
		}
		cropW := w - 2*crop
		cropH := h - 2*crop

		scale := contentWidth() / cropW
		if scale > sliceMaxZoom {
			scale = sliceMaxZoom
		}

		tpl := first
		if n > 1 {
			tpl = imp.ImportPageFromStream(pdf, &rs, n, "/MediaBox")
		}
		pages = append(pages, sourcePage{
			tpl:     tpl,
			width:   w,
			crop:    crop,
			scale:   scale,
			scaledW: cropW * scale,
			scaledH: cropH * scale,
		})
	}
	return pages, nil
}

// planWithLead plans bands where the first band has its own, shorter
// height (the page that also carries the letterhead) and the rest use the
// uniform band height.
func planWithLead(totalH, leadH, bandH, overlap, minViable, reserve float64) ([]sliceBand, error) {
	if totalH <= 0 {
		return nil, ierr.NewError("no content to paginate").
			Mark(ierr.ErrPagination)
	}
	if totalH <= leadH-reserve {
		return []sliceBand{{Start: 0, Height: totalH, Final: true}}, nil
	}
	advance := leadH - overlap
	if advance <= 0 {
		return nil, ierr.NewError("lead slice does not exceed overlap").
			WithHintf("lead %.1fpt, overlap %.1fpt", leadH, overlap).
			Mark(ierr.ErrPagination)
	}

	rest, err := planSlices(totalH-advance, bandH, overlap, minViable, reserve)
	if err != nil {
		return nil, err
	}
	bands := make([]sliceBand, 0, len(rest)+1)
	bands = append(bands, sliceBand{Start: 0, Height: leadH})
	for _, b := range rest {
		b.Start += advance
		bands = append(bands, b)
	}
	return bands, nil
}
