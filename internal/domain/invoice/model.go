package invoice

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/pcist/pcist-backend/internal/types"
)

// LineItem is one billed row. Total is Quantity x UnitPrice, fixed at
// creation so a stored invoice re-renders with the amounts it was issued
// with even if pricing logic changes later.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// LineItems is stored as a JSONB column.
type LineItems []LineItem

func (ls LineItems) Value() (driver.Value, error) {
	if ls == nil {
		ls = LineItems{}
	}
	return json.Marshal(ls)
}

func (ls *LineItems) Scan(src interface{}) error {
	if src == nil {
		*ls = LineItems{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return errors.Newf("unsupported line items column type %T", src)
	}
	return json.Unmarshal(b, ls)
}

// GrandTotal sums the line totals rounded to 2 decimal places.
func (ls LineItems) GrandTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range ls {
		sum = sum.Add(li.Total)
	}
	return sum.Round(2)
}

// Invoice is one generated bill. IssueDateStr is the date the invoice was
// issued and survives regeneration; the "generated on" date is always the
// moment of rendering and is not persisted.
type Invoice struct {
	ID        string          `db:"id" json:"id"`
	Serial    string          `db:"serial" json:"serial"`
	LineItems LineItems       `db:"line_items" json:"products"`
	Grand     decimal.Decimal `db:"grand_total" json:"grandTotal"`

	AuthorizerName        string `db:"authorizer_name" json:"authorizerName"`
	AuthorizerDesignation string `db:"authorizer_designation" json:"authorizerDesignation"`
	ContactEmail          string `db:"contact_email" json:"contactEmail"`
	ContactPhone          string `db:"contact_phone" json:"contactPhone"`
	Address               string `db:"address" json:"address"`

	IssueDateStr string `db:"issue_date_str" json:"dateStr"`

	SentViaEmail bool       `db:"sent_via_email" json:"sentViaEmail"`
	SentAt       *time.Time `db:"sent_at" json:"sentAt,omitempty"`
	DownloadedAt *time.Time `db:"downloaded_at" json:"downloadedAt,omitempty"`

	types.BaseModel
}
