package dto

import (
	"strings"
	"time"

	"github.com/pcist/pcist-backend/internal/domain/statement"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/types"
	"github.com/pcist/pcist-backend/internal/validator"
)

// AuthorizerRequest is one signatory in the array form.
type AuthorizerRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// GenerateStatementRequest drives both statement modes. Body is the
// mode-A free text; the mode-B source PDF arrives as a multipart file and
// is attached by the handler. Signatories arrive either as the
// Authorizers array or through the legacy flat fields; both at once is
// ambiguous and rejected.
type GenerateStatementRequest struct {
	ReceiverEmail string `form:"receiverEmail" json:"receiverEmail"`
	Subject       string `form:"subject" json:"subject"`
	Body          string `form:"statement" json:"statement"`
	ContactEmail  string `form:"contactEmail" json:"contactEmail"`
	ContactPhone  string `form:"contactPhone" json:"contactPhone"`
	Address       string `form:"address" json:"address"`

	Authorizers []AuthorizerRequest `json:"authorizers"`

	// Legacy flat signatory fields kept for older clients.
	AuthorizedBy    string `form:"authorizedBy" json:"authorizedBy"`
	AuthorizerRole  string `form:"authorizerRole" json:"authorizerRole"`
	AuthorizerName2 string `form:"authorizerName2" json:"authorizerName2"`
	AuthorizerRole2 string `form:"authorizerRole2" json:"authorizerRole2"`
	AuthorizerName3 string `form:"authorizerName3" json:"authorizerName3"`
	AuthorizerRole3 string `form:"authorizerRole3" json:"authorizerRole3"`

	// SendEmail also delivers the rendered PDF to ReceiverEmail.
	SendEmail bool `form:"sendEmail" json:"sendEmail"`

	// SourcePDF is set by the handler from the uploaded file (mode B).
	SourcePDF []byte `json:"-"`
}

func (r *GenerateStatementRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if strings.TrimSpace(r.Body) == "" && len(r.SourcePDF) == 0 {
		return ierr.NewError("either statement text or a pdf file is required").
			Mark(ierr.ErrValidation)
	}
	if strings.TrimSpace(r.Body) != "" && len(r.SourcePDF) > 0 {
		return ierr.NewError("statement text and a pdf file are mutually exclusive").
			WithHint("send either the statement text or the pdf upload, not both").
			Mark(ierr.ErrValidation)
	}
	if r.SendEmail && r.ReceiverEmail == "" {
		return ierr.NewError("receiverEmail is required to send the statement").
			Mark(ierr.ErrValidation)
	}
	_, err := r.NormalizedAuthorizers()
	return err
}

// NormalizedAuthorizers folds the two accepted signatory shapes into one
// list. The legacy flat fields and the array form may not be mixed.
func (r *GenerateStatementRequest) NormalizedAuthorizers() (types.Authorizers, error) {
	legacy := types.Authorizers{
		{Name: r.AuthorizedBy, Role: r.AuthorizerRole},
		{Name: r.AuthorizerName2, Role: r.AuthorizerRole2},
		{Name: r.AuthorizerName3, Role: r.AuthorizerRole3},
	}.Truncated()

	if len(r.Authorizers) > 0 && len(legacy) > 0 {
		return nil, ierr.NewError("conflicting authorizer fields").
			WithHint("use either the authorizers array or the authorizedBy fields, not both").
			Mark(ierr.ErrValidation)
	}

	if len(r.Authorizers) > 0 {
		out := make(types.Authorizers, 0, len(r.Authorizers))
		for _, a := range r.Authorizers {
			out = append(out, types.Authorizer{Name: a.Name, Role: a.Role})
		}
		return out.Truncated(), nil
	}
	return legacy, nil
}

type StatementResponse struct {
	ID            string            `json:"id"`
	ReceiverEmail string            `json:"receiverEmail,omitempty"`
	Subject       string            `json:"subject"`
	Body          string            `json:"statement,omitempty"`
	Authorizers   types.Authorizers `json:"authorizers"`
	Serial        string            `json:"serial"`
	DateStr       string            `json:"dateStr"`
	Sent          bool              `json:"sent"`
	SentAt        *time.Time        `json:"sentAt,omitempty"`
	DownloadedAt  *time.Time        `json:"downloadedAt,omitempty"`
	PDFURL        string            `json:"pdfUrl,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

func NewStatementResponse(st *statement.Statement) *StatementResponse {
	return &StatementResponse{
		ID:            st.ID,
		ReceiverEmail: st.ReceiverEmail,
		Subject:       st.Subject,
		Body:          st.Body.String,
		Authorizers:   st.Authorizers,
		Serial:        st.Serial,
		DateStr:       st.DateStr,
		Sent:          st.Sent,
		SentAt:        st.SentAt,
		DownloadedAt:  st.DownloadedAt,
		PDFURL:        st.PDFURL,
		CreatedAt:     st.CreatedAt,
	}
}

// DocumentDownload is a rendered PDF ready to stream to the client as an
// attachment named after its serial.
type DocumentDownload struct {
	Filename string
	PDF      []byte
}
