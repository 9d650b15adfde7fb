package service

import (
	"context"
	"fmt"

	"github.com/pcist/pcist-backend/internal/compositor"
	"github.com/pcist/pcist-backend/internal/testutil"
)

// newTestParams wires ServiceParams from the in-memory stores and mocks
// of the base suite. DB stays nil so withTx runs inline.
func newTestParams(b *testutil.BaseServiceTestSuite, comp compositor.Compositor) ServiceParams {
	stores := b.GetStores()
	return ServiceParams{
		Logger:     b.GetLogger(),
		Config:     b.GetConfig(),
		S3:         b.GetS3(),
		Email:      b.GetEmail(),
		Push:       b.GetPush(),
		Compositor: comp,

		UserRepo:      stores.UserRepo,
		EventRepo:     stores.EventRepo,
		GalleryRepo:   stores.GalleryRepo,
		ChatRepo:      stores.ChatRepo,
		StatementRepo: stores.StatementRepo,
		InvoiceRepo:   stores.InvoiceRepo,
		CounterRepo:   stores.CounterRepo,
	}
}

// stubCompositor returns canned documents and records its inputs, so
// service tests do not depend on logo assets on disk.
type stubCompositor struct {
	allocated     int
	lastStatement compositor.StatementInput
	lastInvoice   compositor.InvoiceInput
	err           error
}

func (c *stubCompositor) stamp(serial, dateStr string) (string, string) {
	if serial != "" && dateStr != "" {
		return serial, dateStr
	}
	c.allocated++
	return fmt.Sprintf("pcIST-2025-%04d", c.allocated), "07 March 2025"
}

func (c *stubCompositor) Statement(_ context.Context, in compositor.StatementInput) (*compositor.Result, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.lastStatement = in
	serial, dateStr := c.stamp(in.Serial, in.DateStr)
	return &compositor.Result{
		PDF:     []byte("%PDF-1.4 statement " + serial),
		Serial:  serial,
		DateStr: dateStr,
	}, nil
}

func (c *stubCompositor) WrapPDF(_ context.Context, in compositor.StatementInput) (*compositor.Result, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.lastStatement = in
	serial, dateStr := c.stamp(in.Serial, in.DateStr)
	return &compositor.Result{
		PDF:     []byte("%PDF-1.4 wrapped " + serial),
		Serial:  serial,
		DateStr: dateStr,
	}, nil
}

func (c *stubCompositor) Invoice(_ context.Context, in compositor.InvoiceInput) (*compositor.InvoiceResult, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.lastInvoice = in
	serial, dateStr := in.Serial, in.IssueDateStr
	if serial == "" || dateStr == "" {
		c.allocated++
		serial = fmt.Sprintf("INV-2025-%04d", c.allocated)
		dateStr = "07 March 2025"
	}
	return &compositor.InvoiceResult{
		PDF:             []byte("%PDF-1.4 invoice " + serial),
		Serial:          serial,
		IssueDateStr:    dateStr,
		GeneratedAtStr:  "07 March 2025",
		GrandTotalMinor: in.LineItems.GrandTotal().StringFixed(2),
	}, nil
}
