package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pcist/pcist-backend/internal/domain/invoice"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/validator"
)

type LineItemRequest struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type CreateInvoiceRequest struct {
	Products              []LineItemRequest `json:"products" validate:"required,min=1"`
	AuthorizerName        string            `json:"authorizerName" validate:"required"`
	AuthorizerDesignation string            `json:"authorizerDesignation"`
	ReceiverEmail         string            `json:"receiverEmail"`
	ContactEmail          string            `json:"contactEmail"`
	ContactPhone          string            `json:"contactPhone"`
	Address               string            `json:"address"`
	SendEmail             bool              `json:"sendEmail"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	for _, p := range r.Products {
		if p.Quantity.IsNegative() || p.Quantity.IsZero() {
			return ierr.NewError("line item quantity must be positive").
				WithHint("every product needs a positive quantity").
				Mark(ierr.ErrValidation)
		}
		if p.UnitPrice.IsNegative() {
			return ierr.NewError("line item unit price must not be negative").
				Mark(ierr.ErrValidation)
		}
	}
	if r.SendEmail && r.ReceiverEmail == "" {
		return ierr.NewError("receiverEmail is required to send the invoice").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToLineItems fixes each line total at creation time.
func (r *CreateInvoiceRequest) ToLineItems() invoice.LineItems {
	items := make(invoice.LineItems, 0, len(r.Products))
	for _, p := range r.Products {
		items = append(items, invoice.LineItem{
			Description: p.Description,
			Quantity:    p.Quantity,
			UnitPrice:   p.UnitPrice,
			Total:       p.Quantity.Mul(p.UnitPrice).Round(2),
		})
	}
	return items
}

type InvoiceResponse struct {
	ID                    string            `json:"id"`
	Serial                string            `json:"serial"`
	Products              invoice.LineItems `json:"products"`
	GrandTotal            decimal.Decimal   `json:"grandTotal"`
	AuthorizerName        string            `json:"authorizerName"`
	AuthorizerDesignation string            `json:"authorizerDesignation"`
	IssueDateStr          string            `json:"dateStr"`
	SentViaEmail          bool              `json:"sentViaEmail"`
	SentAt                *time.Time        `json:"sentAt,omitempty"`
	DownloadedAt          *time.Time        `json:"downloadedAt,omitempty"`
	CreatedAt             time.Time         `json:"createdAt"`
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:                    inv.ID,
		Serial:                inv.Serial,
		Products:              inv.LineItems,
		GrandTotal:            inv.Grand,
		AuthorizerName:        inv.AuthorizerName,
		AuthorizerDesignation: inv.AuthorizerDesignation,
		IssueDateStr:          inv.IssueDateStr,
		SentViaEmail:          inv.SentViaEmail,
		SentAt:                inv.SentAt,
		DownloadedAt:          inv.DownloadedAt,
		CreatedAt:             inv.CreatedAt,
	}
}
