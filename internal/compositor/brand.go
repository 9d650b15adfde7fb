package compositor

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"

	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/types"
)

// Accent palette.
var (
	accentDark  = rgb{11, 94, 215}
	accentLight = rgb{158, 197, 254}
	inkBlack    = rgb{33, 37, 41}
	inkMuted    = rgb{90, 98, 104}
)

type rgb struct{ r, g, b int }

func (c rgb) text(pdf *gofpdf.Fpdf) { pdf.SetTextColor(c.r, c.g, c.b) }
func (c rgb) draw(pdf *gofpdf.Fpdf) { pdf.SetDrawColor(c.r, c.g, c.b) }
func (c rgb) fill(pdf *gofpdf.Fpdf) { pdf.SetFillColor(c.r, c.g, c.b) }

// headerHeight is the vertical space consumed by drawHeader, from the top
// margin to the baseline below the accent rule.
const headerHeight = logoSizePt + 34

// drawHeader paints the letterhead on the current page: both club logos
// with rounded corners, the organization name, address and contact line
// between them, and a gradient rule underneath.
func (s *service) drawHeader(pdf *gofpdf.Fpdf, logos *LogoSet, contactEmail, contactPhone, address string) {
	top := marginTop

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("logo-left", opts, bytes.NewReader(logos.Left))
	pdf.RegisterImageOptionsReader("logo-right", opts, bytes.NewReader(logos.Right))

	pdf.ClipRoundedRect(marginSide, top, logoSizePt, logoSizePt, logoCorner, false)
	pdf.ImageOptions("logo-left", marginSide, top, logoSizePt, logoSizePt, false, opts, 0, "")
	pdf.ClipEnd()

	rx := pageWidth - marginSide - logoSizePt
	pdf.ClipRoundedRect(rx, top, logoSizePt, logoSizePt, logoCorner, false)
	pdf.ImageOptions("logo-right", rx, top, logoSizePt, logoSizePt, false, opts, 0, "")
	pdf.ClipEnd()

	// Name and address centered between the logos.
	innerX := marginSide + logoSizePt + 8
	innerW := pageWidth - 2*innerX

	pdf.SetFont("Helvetica", "B", 17)
	accentDark.text(pdf)
	pdf.SetXY(innerX, top+6)
	pdf.CellFormat(innerW, 20, s.cfg.OrgName, "", 2, "C", false, 0, "")

	if address == "" {
		address = s.cfg.DefaultAddress
	}
	pdf.SetFont("Helvetica", "", 10)
	inkMuted.text(pdf)
	pdf.SetX(innerX)
	pdf.CellFormat(innerW, 14, address, "", 2, "C", false, 0, "")

	if contactEmail != "" || contactPhone != "" {
		contact := contactEmail
		if contactPhone != "" {
			if contact != "" {
				contact += "  |  "
			}
			contact += contactPhone
		}
		pdf.SetX(innerX)
		pdf.CellFormat(innerW, 14, contact, "", 2, "C", false, 0, "")
	}

	ruleY := top + logoSizePt + 14
	pdf.LinearGradient(marginSide, ruleY, contentWidth(), accentRuleH,
		accentDark.r, accentDark.g, accentDark.b,
		accentLight.r, accentLight.g, accentLight.b,
		0, 0, 1, 0)
}

// drawMeta writes the date on the left and the serial on the right,
// returning the y just below the line.
func drawMeta(pdf *gofpdf.Fpdf, y float64, stamp Stamp) float64 {
	pdf.SetFont("Helvetica", "", 11)
	inkBlack.text(pdf)
	pdf.SetXY(marginSide, y)
	pdf.CellFormat(contentWidth()/2, 16, "Date: "+stamp.DateStr, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentWidth()/2, 16, "SN: "+stamp.Serial, "", 1, "R", false, 0, "")
	return y + 24
}

// drawSignatures lays the signatory blocks along the given baseline.
// Placement follows the count: one signs on the right, two flank the
// page, three fill left, center and right.
func drawSignatures(pdf *gofpdf.Fpdf, baseY float64, signers []types.Authorizer) {
	slots := signatureSlots(len(signers))
	for i, align := range slots {
		x := slotX(align, sigLineWidth)

		accentDark.draw(pdf)
		pdf.SetLineWidth(1)
		pdf.Line(x, baseY, x+sigLineWidth, baseY)

		pdf.SetFont("Helvetica", "B", 11)
		inkBlack.text(pdf)
		pdf.SetXY(x, baseY+4)
		pdf.CellFormat(sigLineWidth, 14, signers[i].Name, "", 2, "C", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		inkMuted.text(pdf)
		pdf.SetX(x)
		pdf.CellFormat(sigLineWidth, 12, signers[i].Role, "", 2, "C", false, 0, "")
		pdf.SetX(x)
		pdf.CellFormat(sigLineWidth, 12, "pcIST", "", 2, "C", false, 0, "")
	}
}

// drawCornerOrnaments paints the light triangular accents in the bottom
// corners of the current page.
func drawCornerOrnaments(pdf *gofpdf.Fpdf) {
	accentLight.fill(pdf)
	pdf.Polygon([]gofpdf.PointType{
		{X: 0, Y: pageHeight},
		{X: cornerMarkPt, Y: pageHeight},
		{X: 0, Y: pageHeight - cornerMarkPt},
	}, "F")
	pdf.Polygon([]gofpdf.PointType{
		{X: pageWidth, Y: pageHeight},
		{X: pageWidth - cornerMarkPt, Y: pageHeight},
		{X: pageWidth, Y: pageHeight - cornerMarkPt},
	}, "F")
}

func newDocument() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(marginSide, marginTop, marginSide)
	pdf.SetAutoPageBreak(false, marginBottom)
	return pdf
}

func renderOutput(pdf *gofpdf.Fpdf, kind types.DocumentKind) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("failed to render %s pdf", kind).
			Mark(ierr.ErrRendering)
	}
	return buf.Bytes(), nil
}
