package postgres

import (
	"context"
	"database/sql"

	"github.com/pcist/pcist-backend/internal/domain/statement"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/postgres"
	"github.com/pcist/pcist-backend/internal/types"
)

type statementRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewStatementRepository(db *postgres.DB, logger *logger.Logger) statement.Repository {
	return &statementRepository{db: db, logger: logger}
}

const statementColumns = `id, receiver_email, subject, body, authorizers,
	contact_email, contact_phone, address, serial, date_str,
	sent, sent_at, downloaded_at, pdf_url, pdf_key,
	status, created_at, updated_at, created_by, updated_by`

func (r *statementRepository) Create(ctx context.Context, st *statement.Statement) error {
	r.logger.Debugw("creating statement", "statement_id", st.ID, "serial", st.Serial)

	_, err := r.db.Querier(ctx).ExecContext(ctx, `
		INSERT INTO statements (`+statementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		st.ID, st.ReceiverEmail, st.Subject, st.Body, st.Authorizers,
		st.ContactEmail, st.ContactPhone, st.Address, st.Serial, st.DateStr,
		st.Sent, st.SentAt, st.DownloadedAt, st.PDFURL, st.PDFKey,
		st.Status, st.CreatedAt, st.UpdatedAt, st.CreatedBy, st.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("a statement with this serial already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithMessage("failed to create statement").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *statementRepository) GetByID(ctx context.Context, id string) (*statement.Statement, error) {
	var st statement.Statement
	err := r.db.Querier(ctx).GetContext(ctx, &st, `
		SELECT `+statementColumns+` FROM statements
		WHERE id = $1 AND status != $2`,
		id, types.StatusDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHintf("statement %s not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithMessage("failed to get statement").
			Mark(ierr.ErrDatabase)
	}
	return &st, nil
}

func (r *statementRepository) Update(ctx context.Context, st *statement.Statement) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx, `
		UPDATE statements SET
			sent = $2, sent_at = $3, downloaded_at = $4,
			pdf_url = $5, pdf_key = $6,
			status = $7, updated_at = $8, updated_by = $9
		WHERE id = $1`,
		st.ID, st.Sent, st.SentAt, st.DownloadedAt,
		st.PDFURL, st.PDFKey,
		st.Status, st.UpdatedAt, st.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithMessage("failed to update statement").
			Mark(ierr.ErrDatabase)
	}
	return requireRowChanged(res, "statement")
}

func (r *statementRepository) List(ctx context.Context, filter *types.Filter) ([]*statement.Statement, error) {
	var sts []*statement.Statement
	err := r.db.Querier(ctx).SelectContext(ctx, &sts, `
		SELECT `+statementColumns+` FROM statements
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		types.StatusPublished, filter.GetLimit(), filter.GetOffset())
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to list statements").
			Mark(ierr.ErrDatabase)
	}
	return sts, nil
}
