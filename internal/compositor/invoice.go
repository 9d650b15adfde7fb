package compositor

import (
	"context"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/pcist/pcist-backend/internal/domain/invoice"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/types"
)

// Invoice table column widths, summing to the content width.
var invoiceCols = []struct {
	title string
	width float64
	align string
}{
	{"Description", contentWidth() - 270, "L"},
	{"Qty", 50, "C"},
	{"Unit Price", 110, "R"},
	{"Total", 110, "R"},
}

const (
	invoiceRowH    = 22.0
	invoiceHeaderH = 24.0
)

// Invoice renders the tabular invoice. The issue date is preserved
// verbatim on regeneration while the "generated on" footer always shows
// the current date, so a re-download is honest about both.
func (s *service) Invoice(ctx context.Context, in InvoiceInput) (*InvoiceResult, error) {
	if len(in.LineItems) == 0 {
		return nil, ierr.NewError("invoice has no line items").
			WithHint("at least one line item is required").
			Mark(ierr.ErrValidation)
	}

	stamp, err := s.serial.Allocate(ctx, types.DocumentKindInvoice, Stamp{Serial: in.Serial, DateStr: in.IssueDateStr})
	if err != nil {
		return nil, err
	}
	logos, err := s.assets.Logos()
	if err != nil {
		return nil, err
	}

	pdf := newDocument()
	pdf.AddPage()
	drawCornerOrnaments(pdf)
	s.drawHeader(pdf, logos, in.ContactEmail, in.ContactPhone, in.Address)
	y := drawMeta(pdf, marginTop+headerHeight, stamp)

	pdf.SetFont("Helvetica", "B", 15)
	accentDark.text(pdf)
	pdf.SetXY(marginSide, y)
	pdf.CellFormat(contentWidth(), 20, "INVOICE", "", 1, "C", false, 0, "")
	y += 32

	y = s.drawInvoiceTable(pdf, y, in.LineItems)

	grand := in.LineItems.GrandTotal()
	y = drawGrandTotal(pdf, y, grand)

	generatedAt := FormatDate(s.serial.now())
	pdf.SetFont("Helvetica", "I", 9)
	inkMuted.text(pdf)
	pdf.SetXY(marginSide, y+10)
	pdf.CellFormat(contentWidth(), 12, "Generated on "+generatedAt, "", 1, "L", false, 0, "")

	if in.AuthorizerName != "" {
		sigY := y + 70
		if maxY := pageHeight - marginBottom - sigBlockH; sigY > maxY {
			sigY = maxY
		}
		drawSignatures(pdf, sigY, []types.Authorizer{
			{Name: in.AuthorizerName, Role: in.AuthorizerDesignation},
		})
	}

	out, err := renderOutput(pdf, types.DocumentKindInvoice)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("composed invoice", "serial", stamp.Serial,
		"line_items", len(in.LineItems), "grand_total", grand.StringFixed(2))
	return &InvoiceResult{
		PDF:             out,
		Serial:          stamp.Serial,
		IssueDateStr:    stamp.DateStr,
		GeneratedAtStr:  generatedAt,
		GrandTotalMinor: grand.StringFixed(2),
	}, nil
}

// drawInvoiceTable renders the header row and every line item, breaking to
// a fresh page (table header repeated) when a row would cross the bottom
// margin.
func (s *service) drawInvoiceTable(pdf *gofpdf.Fpdf, y float64, items invoice.LineItems) float64 {
	y = drawInvoiceTableHeader(pdf, y)

	for _, li := range items {
		if y+invoiceRowH > pageHeight-marginBottom-sigZoneHeight {
			pdf.AddPage()
			drawCornerOrnaments(pdf)
			y = drawInvoiceTableHeader(pdf, contPageTop)
		}

		cells := []string{
			li.Description,
			li.Quantity.String(),
			li.UnitPrice.StringFixed(2),
			li.Total.StringFixed(2),
		}

		pdf.SetFont("Helvetica", "", 10)
		inkBlack.text(pdf)
		pdf.SetXY(marginSide, y)
		for c, col := range invoiceCols {
			pdf.CellFormat(col.width, invoiceRowH, cells[c], "B", 0, col.align, false, 0, "")
		}
		y += invoiceRowH
	}
	return y
}

func drawInvoiceTableHeader(pdf *gofpdf.Fpdf, y float64) float64 {
	accentDark.fill(pdf)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginSide, y)
	for _, col := range invoiceCols {
		pdf.CellFormat(col.width, invoiceHeaderH, col.title, "", 0, col.align, true, 0, "")
	}
	return y + invoiceHeaderH
}

func drawGrandTotal(pdf *gofpdf.Fpdf, y float64, grand decimal.Decimal) float64 {
	labelW := invoiceCols[0].width + invoiceCols[1].width + invoiceCols[2].width

	pdf.SetFont("Helvetica", "B", 11)
	inkBlack.text(pdf)
	pdf.SetXY(marginSide, y)
	pdf.CellFormat(labelW, invoiceRowH, "Grand Total", "", 0, "R", false, 0, "")
	accentDark.text(pdf)
	pdf.CellFormat(invoiceCols[3].width, invoiceRowH, grand.StringFixed(2), "T", 1, "R", false, 0, "")
	return y + invoiceRowH
}
