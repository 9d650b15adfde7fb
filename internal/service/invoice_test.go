package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/pcist/pcist-backend/internal/api/dto"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/testutil"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	compositor     *stubCompositor
	invoiceService InvoiceService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.compositor = &stubCompositor{}
	s.invoiceService = NewInvoiceService(newTestParams(&s.BaseServiceTestSuite, s.compositor))
}

func (s *InvoiceServiceSuite) createRequest() *dto.CreateInvoiceRequest {
	return &dto.CreateInvoiceRequest{
		Products: []dto.LineItemRequest{
			{Description: "Contest T-shirts", Quantity: decimal.NewFromInt(30), UnitPrice: decimal.NewFromFloat(12.50)},
			{Description: "Trophies", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromFloat(45.00)},
		},
		AuthorizerName:        "Dr. Rahman",
		AuthorizerDesignation: "Moderator",
	}
}

func (s *InvoiceServiceSuite) TestCreateComputesGrandTotal() {
	resp, err := s.invoiceService.Create(s.GetContext(), s.createRequest())
	s.NoError(err)
	s.Equal("INV-2025-0001", resp.Serial)
	s.Equal("510.00", resp.GrandTotal.StringFixed(2))
	s.Require().Len(resp.Products, 2)
	s.Equal("375.00", resp.Products[0].Total.StringFixed(2))
	s.Equal("135.00", resp.Products[1].Total.StringFixed(2))
}

func (s *InvoiceServiceSuite) TestCreateRejectsNonPositiveQuantity() {
	req := s.createRequest()
	req.Products[0].Quantity = decimal.Zero
	_, err := s.invoiceService.Create(s.GetContext(), req)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestCreateRejectsNegativeUnitPrice() {
	req := s.createRequest()
	req.Products[0].UnitPrice = decimal.NewFromInt(-1)
	_, err := s.invoiceService.Create(s.GetContext(), req)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestCreateRejectsEmptyProducts() {
	req := s.createRequest()
	req.Products = nil
	_, err := s.invoiceService.Create(s.GetContext(), req)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestCreateSendsEmailAttachment() {
	req := s.createRequest()
	req.ReceiverEmail = "vendor@example.com"
	req.SendEmail = true

	resp, err := s.invoiceService.Create(s.GetContext(), req)
	s.NoError(err)
	s.True(resp.SentViaEmail)
	s.NotNil(resp.SentAt)

	sent := s.GetEmail().LastSent()
	s.Require().NotNil(sent)
	s.Equal("vendor@example.com", sent.To)
	s.Require().Len(sent.Attachments, 1)
	s.Equal(resp.Serial+".pdf", sent.Attachments[0].Filename)
}

func (s *InvoiceServiceSuite) TestCreateSendEmailNeedsReceiver() {
	req := s.createRequest()
	req.SendEmail = true
	_, err := s.invoiceService.Create(s.GetContext(), req)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestDownloadPreservesIssueDate() {
	resp, err := s.invoiceService.Create(s.GetContext(), s.createRequest())
	s.Require().NoError(err)

	dl, err := s.invoiceService.Download(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Equal(resp.Serial+".pdf", dl.Filename)

	// The regeneration reuses the issued identity instead of stamping a
	// fresh one.
	s.Equal(resp.Serial, s.compositor.lastInvoice.Serial)
	s.Equal(resp.IssueDateStr, s.compositor.lastInvoice.IssueDateStr)

	stored, err := s.invoiceService.GetByID(s.GetContext(), resp.ID)
	s.NoError(err)
	s.NotNil(stored.DownloadedAt)
	s.Equal(resp.IssueDateStr, stored.IssueDateStr)
}

func (s *InvoiceServiceSuite) TestListReturnsCreated() {
	_, err := s.invoiceService.Create(s.GetContext(), s.createRequest())
	s.Require().NoError(err)
	_, err = s.invoiceService.Create(s.GetContext(), s.createRequest())
	s.Require().NoError(err)

	list, err := s.invoiceService.List(s.GetContext(), nil)
	s.NoError(err)
	s.Len(list, 2)
}
