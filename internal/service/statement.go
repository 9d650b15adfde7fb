package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/pcist/pcist-backend/internal/api/dto"
	"github.com/pcist/pcist-backend/internal/compositor"
	"github.com/pcist/pcist-backend/internal/domain/statement"
	"github.com/pcist/pcist-backend/internal/email"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/s3"
	"github.com/pcist/pcist-backend/internal/types"
)

type StatementService interface {
	// Generate renders a statement (mode A from text, mode B from an
	// uploaded PDF), persists it and optionally emails it.
	Generate(ctx context.Context, req *dto.GenerateStatementRequest) (*dto.StatementResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StatementResponse, error)
	List(ctx context.Context, filter *types.Filter) ([]*dto.StatementResponse, error)
	// Download returns the PDF bytes for streaming, named after the
	// serial, and marks the statement downloaded.
	Download(ctx context.Context, id string) (*dto.DocumentDownload, error)
}

type statementService struct {
	ServiceParams
}

func NewStatementService(params ServiceParams) StatementService {
	return &statementService{ServiceParams: params}
}

func (s *statementService) Generate(ctx context.Context, req *dto.GenerateStatementRequest) (*dto.StatementResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	authorizers, err := req.NormalizedAuthorizers()
	if err != nil {
		return nil, err
	}

	in := compositor.StatementInput{
		Body:         req.Body,
		SourcePDF:    req.SourcePDF,
		Authorizers:  authorizers,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
	}

	var res *compositor.Result
	if len(req.SourcePDF) > 0 {
		res, err = s.Compositor.WrapPDF(ctx, in)
	} else {
		res, err = s.Compositor.Statement(ctx, in)
	}
	if err != nil {
		return nil, err
	}

	st := &statement.Statement{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STATEMENT),
		ReceiverEmail: req.ReceiverEmail,
		Subject:       req.Subject,
		Authorizers:   authorizers,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Address:       req.Address,
		Serial:        res.Serial,
		DateStr:       res.DateStr,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	if strings.TrimSpace(req.Body) != "" {
		st.Body = sql.NullString{String: req.Body, Valid: true}
	}

	// Keep a rendered copy so later downloads serve the bytes that were
	// actually issued.
	if s.S3 != nil {
		key := s3.DocumentKey(res.Serial, res.PDF)
		url, err := s.S3.Upload(ctx, s3.BucketDocuments, key, res.PDF, "application/pdf")
		if err != nil {
			return nil, err
		}
		st.PDFKey = key
		st.PDFURL = url
	}

	if req.SendEmail {
		if err := s.deliver(ctx, st, res.PDF); err != nil {
			return nil, err
		}
	}

	if err := s.StatementRepo.Create(ctx, st); err != nil {
		return nil, err
	}

	s.Logger.Infow("statement generated",
		"statement_id", st.ID, "serial", st.Serial, "mode", lo.Ternary(st.Body.Valid, "text", "pdf"), "sent", st.Sent)
	return dto.NewStatementResponse(st), nil
}

// deliver emails the rendered PDF as an attachment named after its serial.
func (s *statementService) deliver(ctx context.Context, st *statement.Statement, pdf []byte) error {
	subject := st.Subject
	if subject == "" {
		subject = "Official statement " + st.Serial
	}
	body := fmt.Sprintf("<p>Please find attached the official statement <strong>%s</strong> issued on %s.</p>",
		st.Serial, st.DateStr)

	_, err := s.Email.SendWithAttachments(ctx, st.ReceiverEmail, subject, body, []email.Attachment{{
		Filename:    st.Serial + ".pdf",
		ContentType: "application/pdf",
		Content:     pdf,
	}})
	if err != nil {
		return ierr.WithError(err).
			WithHint("statement was rendered but could not be emailed").
			Mark(ierr.ErrHTTPClient)
	}

	now := time.Now().UTC()
	st.Sent = true
	st.SentAt = &now
	return nil
}

func (s *statementService) GetByID(ctx context.Context, id string) (*dto.StatementResponse, error) {
	st, err := s.StatementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewStatementResponse(st), nil
}

func (s *statementService) List(ctx context.Context, filter *types.Filter) ([]*dto.StatementResponse, error) {
	if filter == nil {
		f := types.GetDefaultFilter()
		filter = &f
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	sts, err := s.StatementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return lo.Map(sts, func(st *statement.Statement, _ int) *dto.StatementResponse {
		return dto.NewStatementResponse(st)
	}), nil
}

func (s *statementService) Download(ctx context.Context, id string) (*dto.DocumentDownload, error) {
	st, err := s.StatementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf, err := s.statementPDF(ctx, st)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	st.DownloadedAt = &now
	st.UpdatedAt = now
	st.UpdatedBy = types.GetUserID(ctx)
	if err := s.StatementRepo.Update(ctx, st); err != nil {
		return nil, err
	}

	return &dto.DocumentDownload{
		Filename: st.Serial + ".pdf",
		PDF:      pdf,
	}, nil
}

// statementPDF prefers the stored copy; a text statement without one is
// re-rendered with its serial and date reused verbatim. A wrapped upload
// has no retained source, so the stored copy is the only option.
func (s *statementService) statementPDF(ctx context.Context, st *statement.Statement) ([]byte, error) {
	if s.S3 != nil && st.PDFKey != "" {
		return s.S3.Get(ctx, s3.BucketDocuments, st.PDFKey)
	}

	if !st.Body.Valid {
		return nil, ierr.NewError("stored copy unavailable").
			WithHint("this statement was generated from an uploaded pdf and its stored copy is gone").
			Mark(ierr.ErrNotFound)
	}

	res, err := s.Compositor.Statement(ctx, compositor.StatementInput{
		Body:         st.Body.String,
		Authorizers:  st.Authorizers,
		ContactEmail: st.ContactEmail,
		ContactPhone: st.ContactPhone,
		Address:      st.Address,
		Serial:       st.Serial,
		DateStr:      st.DateStr,
	})
	if err != nil {
		return nil, err
	}
	return res.PDF, nil
}
