package compositor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcist/pcist-backend/internal/config"
	"github.com/pcist/pcist-backend/internal/domain/invoice"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/types"
)

func writeTestLogo(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 11, G: 94, B: 215, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func newTestCompositor(t *testing.T) (Compositor, *stubCounter) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.GetDefaultConfig()
	cfg.Compositor.AssetsDir = dir
	writeTestLogo(t, filepath.Join(dir, cfg.Compositor.LeftLogoFile), 50, 64)
	writeTestLogo(t, filepath.Join(dir, cfg.Compositor.RightLogoFile), 64, 64)

	log, err := logger.NewLogger()
	require.NoError(t, err)

	counter := &stubCounter{}
	return New(cfg, counter, log), counter
}

func TestStatementRendersBrandedPDF(t *testing.T) {
	comp, _ := newTestCompositor(t)

	res, err := comp.Statement(context.Background(), StatementInput{
		Body: "To whom it may concern,\n\nThis is to certify that the bearer is a member in good standing of the club.\n\nIssued on request.",
		Authorizers: types.Authorizers{
			{Name: "Jane Rahman", Role: "President"},
			{Name: "Karim Ahmed", Role: "General Secretary"},
		},
		ContactEmail: "club@pcist.example",
		ContactPhone: "+880 1700 000000",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(res.PDF, []byte("%PDF")))
	assert.True(t, ValidSerial(res.Serial))
	assert.NotEmpty(t, res.DateStr)
}

func TestStatementLongBodyPaginates(t *testing.T) {
	comp, _ := newTestCompositor(t)

	para := "The quick brown fox jumps over the lazy dog and keeps running well past the margin. "
	body := ""
	for i := 0; i < 40; i++ {
		body += para + para + "\n"
	}

	res, err := comp.Statement(context.Background(), StatementInput{
		Body:        body,
		Authorizers: types.Authorizers{{Name: "Jane Rahman", Role: "President"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(res.PDF, []byte("%PDF")))
}

func TestWrapBodySplitsParagraphsOnBlankLines(t *testing.T) {
	pdf := newDocument()
	pdf.SetFont("Helvetica", "", bodyFontSize)

	lines := wrapBody(pdf, "first line\nstill the first paragraph\n\nsecond paragraph")
	require.NotEmpty(t, lines)

	// A lone newline is a soft break, so both leading lines share one
	// paragraph; the blank line starts the next.
	assert.Equal(t, 0, lines[0].para)
	assert.Equal(t, 1, lines[len(lines)-1].para)

	var first []string
	for _, l := range lines {
		if l.para == 0 {
			first = append(first, l.text)
		}
	}
	assert.Contains(t, strings.Join(first, " "), "still the first paragraph")
}

func TestStatementRejectsEmptyBody(t *testing.T) {
	comp, _ := newTestCompositor(t)

	_, err := comp.Statement(context.Background(), StatementInput{Body: "   \n  "})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestStatementReusesProvidedStamp(t *testing.T) {
	comp, counter := newTestCompositor(t)

	res, err := comp.Statement(context.Background(), StatementInput{
		Body:    "Reissued copy.",
		Serial:  "pcIST-2024-0042",
		DateStr: "31 December 2024",
	})
	require.NoError(t, err)
	assert.Equal(t, "pcIST-2024-0042", res.Serial)
	assert.Equal(t, "31 December 2024", res.DateStr)
	assert.Zero(t, counter.next)
}

func TestStatementMissingLogoFails(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Compositor.AssetsDir = t.TempDir() // no logo files

	log, err := logger.NewLogger()
	require.NoError(t, err)
	comp := New(cfg, &stubCounter{}, log)

	_, err = comp.Statement(context.Background(), StatementInput{Body: "hello"})
	require.Error(t, err)
	assert.True(t, ierr.IsAsset(err))
}

func TestWrapPDFSlicesSource(t *testing.T) {
	comp, _ := newTestCompositor(t)

	src := buildSourcePDF(t, 2)
	res, err := comp.WrapPDF(context.Background(), StatementInput{
		SourcePDF:   src,
		Authorizers: types.Authorizers{{Name: "Jane Rahman", Role: "President"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(res.PDF, []byte("%PDF")))
	assert.True(t, ValidSerial(res.Serial))
}

func TestWrapPDFRejectsEmptySource(t *testing.T) {
	comp, _ := newTestCompositor(t)

	_, err := comp.WrapPDF(context.Background(), StatementInput{})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestWrapPDFRejectsMalformedSource(t *testing.T) {
	comp, _ := newTestCompositor(t)

	_, err := comp.WrapPDF(context.Background(), StatementInput{
		SourcePDF: []byte("this is not a pdf at all"),
	})
	require.Error(t, err)
	assert.True(t, ierr.IsSourcePDF(err))
}

func TestWrapPDFRejectsMalformedSourceAfterSuccess(t *testing.T) {
	comp, _ := newTestCompositor(t)

	// A successful wrap must not leave importer state behind that lets a
	// later malformed upload pass.
	_, err := comp.WrapPDF(context.Background(), StatementInput{
		SourcePDF: buildSourcePDF(t, 2),
	})
	require.NoError(t, err)

	_, err = comp.WrapPDF(context.Background(), StatementInput{
		SourcePDF: []byte("this is not a pdf at all"),
	})
	require.Error(t, err)
	assert.True(t, ierr.IsSourcePDF(err))
}

func TestInvoiceComputesGrandTotal(t *testing.T) {
	comp, _ := newTestCompositor(t)

	items := invoice.LineItems{
		{Description: "Contest registration", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(150), Total: decimal.NewFromInt(450)},
		{Description: "T-shirt", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("249.50"), Total: decimal.RequireFromString("499.00")},
	}

	res, err := comp.Invoice(context.Background(), InvoiceInput{
		LineItems:             items,
		AuthorizerName:        "Jane Rahman",
		AuthorizerDesignation: "Treasurer",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(res.PDF, []byte("%PDF")))
	assert.Equal(t, "949.00", res.GrandTotalMinor)
	assert.Equal(t, "INV", res.Serial[:3])
	assert.NotEmpty(t, res.GeneratedAtStr)
}

func TestInvoicePreservesIssueDate(t *testing.T) {
	comp, counter := newTestCompositor(t)

	res, err := comp.Invoice(context.Background(), InvoiceInput{
		LineItems: invoice.LineItems{
			{Description: "Workshop fee", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100), Total: decimal.NewFromInt(100)},
		},
		Serial:       "INV-2024-0009",
		IssueDateStr: "01 February 2024",
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-0009", res.Serial)
	assert.Equal(t, "01 February 2024", res.IssueDateStr)
	assert.Zero(t, counter.next)
}

func TestInvoiceColumnsFitContentWidth(t *testing.T) {
	sum := 0.0
	for _, col := range invoiceCols {
		sum += col.width
	}
	assert.InDelta(t, contentWidth(), sum, 0.01)
	assert.LessOrEqual(t, marginSide+sum, float64(pageWidth))
}

func TestInvoiceRejectsEmptyItems(t *testing.T) {
	comp, _ := newTestCompositor(t)

	_, err := comp.Invoice(context.Background(), InvoiceInput{})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

// buildSourcePDF produces a simple multi-page PDF to feed the slicer.
func buildSourcePDF(t *testing.T, pages int) []byte {
	t.Helper()
	pdf := newDocument()
	pdf.SetFont("Helvetica", "", 12)
	for p := 0; p < pages; p++ {
		pdf.AddPage()
		pdf.SetXY(marginSide, marginTop)
		for i := 0; i < 30; i++ {
			pdf.CellFormat(contentWidth(), 18, "Source document line", "", 1, "L", false, 0, "")
		}
	}
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}
