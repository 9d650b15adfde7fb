package postgres

import (
	"context"
	"database/sql"

	"github.com/pcist/pcist-backend/internal/domain/invoice"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/postgres"
	"github.com/pcist/pcist-backend/internal/types"
)

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

const invoiceColumns = `id, serial, line_items, grand_total,
	authorizer_name, authorizer_designation, contact_email, contact_phone, address,
	issue_date_str, sent_via_email, sent_at, downloaded_at,
	status, created_at, updated_at, created_by, updated_by`

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	r.logger.Debugw("creating invoice", "invoice_id", inv.ID, "serial", inv.Serial)

	_, err := r.db.Querier(ctx).ExecContext(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		inv.ID, inv.Serial, inv.LineItems, inv.Grand,
		inv.AuthorizerName, inv.AuthorizerDesignation, inv.ContactEmail, inv.ContactPhone, inv.Address,
		inv.IssueDateStr, inv.SentViaEmail, inv.SentAt, inv.DownloadedAt,
		inv.Status, inv.CreatedAt, inv.UpdatedAt, inv.CreatedBy, inv.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("an invoice with this serial already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithMessage("failed to create invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	err := r.db.Querier(ctx).GetContext(ctx, &inv, `
		SELECT `+invoiceColumns+` FROM invoices
		WHERE id = $1 AND status != $2`,
		id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHintf("invoice %s not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithMessage("failed to get invoice").
			Mark(ierr.ErrDatabase)
	}
	return &inv, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx, `
		UPDATE invoices SET
			sent_via_email = $2, sent_at = $3, downloaded_at = $4,
			status = $5, updated_at = $6, updated_by = $7
		WHERE id = $1`,
		inv.ID, inv.SentViaEmail, inv.SentAt, inv.DownloadedAt,
		inv.Status, inv.UpdatedAt, inv.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithMessage("failed to update invoice").
			Mark(ierr.ErrDatabase)
	}
	return requireRowChanged(res, "invoice")
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.Filter) ([]*invoice.Invoice, error) {
	var invs []*invoice.Invoice
	err := r.db.Querier(ctx).SelectContext(ctx, &invs, `
		SELECT `+invoiceColumns+` FROM invoices
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		types.StatusPublished, filter.GetLimit(), filter.GetOffset())
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to list invoices").
			Mark(ierr.ErrDatabase)
	}
	return invs, nil
}
