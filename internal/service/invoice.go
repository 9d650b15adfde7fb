package service

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/pcist/pcist-backend/internal/api/dto"
	"github.com/pcist/pcist-backend/internal/compositor"
	"github.com/pcist/pcist-backend/internal/domain/invoice"
	"github.com/pcist/pcist-backend/internal/email"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/types"
)

type InvoiceService interface {
	Create(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	List(ctx context.Context, filter *types.Filter) ([]*dto.InvoiceResponse, error)
	// Download re-renders the invoice with its issue date preserved and
	// marks it downloaded.
	Download(ctx context.Context, id string) (*dto.DocumentDownload, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{ServiceParams: params}
}

func (s *invoiceService) Create(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	items := req.ToLineItems()
	res, err := s.Compositor.Invoice(ctx, compositor.InvoiceInput{
		LineItems:             items,
		AuthorizerName:        req.AuthorizerName,
		AuthorizerDesignation: req.AuthorizerDesignation,
		ContactEmail:          req.ContactEmail,
		ContactPhone:          req.ContactPhone,
		Address:               req.Address,
	})
	if err != nil {
		return nil, err
	}

	inv := &invoice.Invoice{
		ID:                    types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		Serial:                res.Serial,
		LineItems:             items,
		Grand:                 items.GrandTotal(),
		AuthorizerName:        req.AuthorizerName,
		AuthorizerDesignation: req.AuthorizerDesignation,
		ContactEmail:          req.ContactEmail,
		ContactPhone:          req.ContactPhone,
		Address:               req.Address,
		IssueDateStr:          res.IssueDateStr,
		BaseModel:             types.GetDefaultBaseModel(ctx),
	}

	if req.SendEmail {
		if err := s.deliver(ctx, inv, req.ReceiverEmail, res.PDF); err != nil {
			return nil, err
		}
	}

	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("invoice created",
		"invoice_id", inv.ID, "serial", inv.Serial, "grand_total", inv.Grand.StringFixed(2), "sent", inv.SentViaEmail)
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) deliver(ctx context.Context, inv *invoice.Invoice, to string, pdf []byte) error {
	subject := "Invoice " + inv.Serial
	body := fmt.Sprintf("<p>Please find attached invoice <strong>%s</strong> issued on %s. Grand total: %s.</p>",
		inv.Serial, inv.IssueDateStr, inv.Grand.StringFixed(2))

	_, err := s.Email.SendWithAttachments(ctx, to, subject, body, []email.Attachment{{
		Filename:    inv.Serial + ".pdf",
		ContentType: "application/pdf",
		Content:     pdf,
	}})
	if err != nil {
		return ierr.WithError(err).
			WithHint("invoice was rendered but could not be emailed").
			Mark(ierr.ErrHTTPClient)
	}

	now := time.Now().UTC()
	inv.SentViaEmail = true
	inv.SentAt = &now
	return nil
}

func (s *invoiceService) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) List(ctx context.Context, filter *types.Filter) ([]*dto.InvoiceResponse, error) {
	if filter == nil {
		f := types.GetDefaultFilter()
		filter = &f
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	invs, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return lo.Map(invs, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
		return dto.NewInvoiceResponse(inv)
	}), nil
}

func (s *invoiceService) Download(ctx context.Context, id string) (*dto.DocumentDownload, error) {
	inv, err := s.InvoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := s.Compositor.Invoice(ctx, compositor.InvoiceInput{
		LineItems:             inv.LineItems,
		AuthorizerName:        inv.AuthorizerName,
		AuthorizerDesignation: inv.AuthorizerDesignation,
		ContactEmail:          inv.ContactEmail,
		ContactPhone:          inv.ContactPhone,
		Address:               inv.Address,
		Serial:                inv.Serial,
		IssueDateStr:          inv.IssueDateStr,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	inv.DownloadedAt = &now
	inv.UpdatedAt = now
	inv.UpdatedBy = types.GetUserID(ctx)
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	return &dto.DocumentDownload{
		Filename: inv.Serial + ".pdf",
		PDF:      res.PDF,
	}, nil
}
