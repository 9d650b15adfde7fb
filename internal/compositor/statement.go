package compositor

import (
	"context"
	"strings"

	"github.com/jung-kurt/gofpdf"

	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/types"
)

const (
	bodyFontSize = 12.0
	bodyLineH    = 18.0
	paraSpacing  = 8.0

	// Continuation pages start below a slim top band instead of the full
	// letterhead.
	contPageTop = marginTop + 20
)

// bodyLine is one wrapped line of the statement body, tagged with the
// paragraph it came from so justification can be re-applied per paragraph
// after pagination.
type bodyLine struct {
	text string
	para int
}

// Statement renders a mode-A document: the body text laid out on branded
// letterhead with explicit pagination. The signature zone is reserved on
// the final page only.
func (s *service) Statement(ctx context.Context, in StatementInput) (*Result, error) {
	if strings.TrimSpace(in.Body) == "" {
		return nil, ierr.NewError("statement body is empty").
			WithHint("body is required for statement generation").
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
	pdf.SetFont("Helvetica", "", bodyFontSize)
	lines := wrapBody(pdf, in.Body)

	pages, err := paginateLines(lines, len(signers) > 0)
	if err != nil {
		return nil, err
	}

	for pageIdx, page := range pages {
		pdf.AddPage()
		drawCornerOrnaments(pdf)

		y := contPageTop
		if pageIdx == 0 {
			s.drawHeader(pdf, logos, in.ContactEmail, in.ContactPhone, in.Address)
			y = drawMeta(pdf, marginTop+headerHeight, stamp)
		}

		renderPageLines(pdf, y, page)

		last := pageIdx == len(pages)-1
		if last && len(signers) > 0 {
			drawSignatures(pdf, pageHeight-marginBottom-sigBlockH, signers)
		}
	}

	out, err := renderOutput(pdf, types.DocumentKindStatement)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("composed statement", "serial", stamp.Serial, "pages", len(pages), "signers", len(signers))
	return &Result{PDF: out, Serial: stamp.Serial, DateStr: stamp.DateStr}, nil
}

// wrapBody splits the body into paragraphs on blank lines and wraps each
// to the content width with the current font, so pagination works on the
// exact lines the renderer will produce.
func wrapBody(pdf *gofpdf.Fpdf, body string) []bodyLine {
	var lines []bodyLine
	for para, p := range splitParagraphs(body) {
		for _, l := range pdf.SplitText(p, contentWidth()) {
			lines = append(lines, bodyLine{text: l, para: para})
		}
	}
	return lines
}

// splitParagraphs breaks the body on runs of blank lines. A single newline
// inside a paragraph is a soft break and re-flows with the wrap.
func splitParagraphs(body string) []string {
	var paras []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			paras = append(paras, strings.Join(cur, " "))
			cur = nil
		}
	}
	for _, line := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return paras
}

// paginateLines assigns wrapped lines to pages. The first page loses the
// letterhead height, and the last page additionally reserves the signature
// zone when the document is signed.
func paginateLines(lines []bodyLine, signed bool) ([][]bodyLine, error) {
	firstCap := pageCapacity(firstContentTop, 0)
	contCap := pageCapacity(contPageTop, 0)
	if firstCap < 1 || contCap < 1 {
		return nil, ierr.NewError("page geometry leaves no room for body text").
			Mark(ierr.ErrPagination)
	}

	var pages [][]bodyLine
	rest := lines
	for len(rest) > 0 {
		capacity := contCap
		if len(pages) == 0 {
			capacity = firstCap
		}
		n := min(capacity, len(rest))
		pages = append(pages, rest[:n])
		rest = rest[n:]
	}
	if len(pages) == 0 {
		pages = [][]bodyLine{nil}
	}

	if !signed {
		return pages, nil
	}

	// Shrink the last page to fit the signature zone, spilling overflow
	// onto a fresh page.
	lastCap := pageCapacity(contPageTop, sigZoneHeight)
	if len(pages) == 1 {
		lastCap = pageCapacity(firstContentTop, sigZoneHeight)
	}
	if lastCap < 0 {
		return nil, ierr.NewError("signature zone does not fit on a page").
			Mark(ierr.ErrPagination)
	}
	last := pages[len(pages)-1]
	if len(last) > lastCap {
		pages[len(pages)-1] = last[:lastCap]
		pages = append(pages, last[lastCap:])
	}
	return pages, nil
}

// pageCapacity is the number of body lines that fit on a page whose
// content starts at top, with `reserve` kept free at the bottom. Paragraph
// spacing is amortized by padding the line height slightly.
func pageCapacity(top, reserve float64) int {
	usable := pageHeight - marginBottom - reserve - top
	return int(usable / (bodyLineH + paraSpacing/4))
}

// renderPageLines writes one page worth of lines, regrouping consecutive
// lines of the same paragraph so MultiCell re-wraps and justifies them as
// a unit.
func renderPageLines(pdf *gofpdf.Fpdf, y float64, page []bodyLine) {
	pdf.SetFont("Helvetica", "", bodyFontSize)
	inkBlack.text(pdf)
	pdf.SetXY(marginSide, y)

	i := 0
	for i < len(page) {
		j := i
		for j < len(page) && page[j].para == page[i].para {
			j++
		}
		chunk := make([]string, 0, j-i)
		for _, l := range page[i:j] {
			chunk = append(chunk, l.text)
		}
		pdf.SetX(marginSide)
		pdf.MultiCell(contentWidth(), bodyLineH, strings.Join(chunk, " "), "", "J", false)
		pdf.SetY(pdf.GetY() + paraSpacing)
		i = j
	}
}
