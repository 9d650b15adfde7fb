// Package compositor renders the club's official documents: free-text
// statements laid out on branded letterhead, branded wrappers around
// uploaded PDFs, and tabular invoices. It only ever reads the document
// counter; persisting and delivering the rendered bytes is the caller's
// job.
package compositor

import (
	"context"
	"time"

	"github.com/pcist/pcist-backend/internal/config"
	"github.com/pcist/pcist-backend/internal/domain/counter"
	"github.com/pcist/pcist-backend/internal/domain/invoice"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/types"
)

// StatementInput is the normalized input for both statement modes. Body is
// used by Statement (mode A); SourcePDF by WrapPDF (mode B).
type StatementInput struct {
	Body         string
	SourcePDF    []byte
	Authorizers  types.Authorizers
	ContactEmail string
	ContactPhone string
	Address      string

	// Pre-allocated identity. Leave zero to allocate fresh; supply both
	// fields to reuse verbatim so an email attachment and a stored copy
	// carry identical serial/date text.
	Serial  string
	DateStr string
}

// InvoiceInput feeds the invoice compositor. IssueDateStr is reused
// verbatim when regenerating a stored invoice.
type InvoiceInput struct {
	LineItems             invoice.LineItems
	AuthorizerName        string
	AuthorizerDesignation string
	ContactEmail          string
	ContactPhone          string
	Address               string

	Serial       string
	IssueDateStr string
}

// Result is a finished document buffer plus the identity threaded through
// the rendering.
type Result struct {
	PDF     []byte
	Serial  string
	DateStr string
}

// InvoiceResult additionally reports the computed grand total and the
// always-now generation date, distinct from the preserved issue date.
type InvoiceResult struct {
	PDF             []byte
	Serial          string
	IssueDateStr    string
	GeneratedAtStr  string
	GrandTotalMinor string // formatted with 2 decimal places
}

// Compositor is the document rendering service.
type Compositor interface {
	Statement(ctx context.Context, in StatementInput) (*Result, error)
	WrapPDF(ctx context.Context, in StatementInput) (*Result, error)
	Invoice(ctx context.Context, in InvoiceInput) (*InvoiceResult, error)
}

type service struct {
	cfg    config.CompositorConfig
	assets *AssetNormalizer
	serial *SerialAllocator
	logger *logger.Logger
}

// New builds a Compositor. Logo assets are loaded and normalized lazily on
// first render and then cached; a missing asset fails the first generation.
func New(cfg *config.Configuration, counters counter.Repository, log *logger.Logger) Compositor {
	return &service{
		cfg:    cfg.Compositor,
		assets: NewAssetNormalizer(cfg.Compositor),
		serial: NewSerialAllocator(counters, time.Now),
		logger: log,
	}
}
