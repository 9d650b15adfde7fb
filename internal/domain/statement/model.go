package statement

import (
	"database/sql"
	"time"

	"github.com/pcist/pcist-backend/internal/types"
)

// Statement is one generated official letter. Body is null when the
// document was built by wrapping an uploaded PDF instead of laying out
// free text.
type Statement struct {
	ID            string            `db:"id" json:"id"`
	ReceiverEmail string            `db:"receiver_email" json:"receiverEmail,omitempty"`
	Subject       string            `db:"subject" json:"subject"`
	Body          sql.NullString    `db:"body" json:"statement,omitempty"`
	Authorizers   types.Authorizers `db:"authorizers" json:"authorizers"`
	ContactEmail  string            `db:"contact_email" json:"contactEmail"`
	ContactPhone  string            `db:"contact_phone" json:"contactPhone"`
	Address       string            `db:"address" json:"address"`

	Serial  string `db:"serial" json:"serial"`
	DateStr string `db:"date_str" json:"dateStr"`

	Sent         bool       `db:"sent" json:"sent"`
	SentAt       *time.Time `db:"sent_at" json:"sentAt,omitempty"`
	DownloadedAt *time.Time `db:"downloaded_at" json:"downloadedAt,omitempty"`

	// Stored rendered copy: object URL plus the content-addressed key.
	PDFURL string `db:"pdf_url" json:"pdfUrl,omitempty"`
	PDFKey string `db:"pdf_key" json:"pdfPublicId,omitempty"`

	types.BaseModel
}
