package compositor

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/pcist/pcist-backend/internal/domain/counter"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/types"
)

// dateLayout renders "07 March 2025".
const dateLayout = "02 January 2006"

var serialPattern = regexp.MustCompile(`^(pcIST|INV)-\d{4}-\d{4}$`)

// Stamp is a serial/date pair threaded unchanged through rendering,
// persistence and the delivery file name.
type Stamp struct {
	Serial  string
	DateStr string
}

// SerialAllocator issues document serials like pcIST-2025-0007 backed by an
// atomic per-kind, per-year counter, so concurrent generations never
// collide.
type SerialAllocator struct {
	counters counter.Repository
	now      func() time.Time
}

func NewSerialAllocator(counters counter.Repository, now func() time.Time) *SerialAllocator {
	return &SerialAllocator{counters: counters, now: now}
}

// Allocate returns a fresh stamp for kind, or the provided one verbatim
// when both fields are already set.
func (a *SerialAllocator) Allocate(ctx context.Context, kind types.DocumentKind, provided Stamp) (Stamp, error) {
	if provided.Serial != "" && provided.DateStr != "" {
		return provided, nil
	}
	if provided.Serial != "" || provided.DateStr != "" {
		return Stamp{}, ierr.NewError("serial and date must be supplied together").
			WithHint("either supply both serial and dateStr or neither").
			Mark(ierr.ErrValidation)
	}

	now := a.now()
	seq, err := a.counters.Next(ctx, kind, now.Year())
	if err != nil {
		return Stamp{}, ierr.WithError(err).
			WithMessage("failed to advance document counter").
			Mark(ierr.ErrDatabase)
	}

	return Stamp{
		Serial:  FormatSerial(kind, now.Year(), seq),
		DateStr: FormatDate(now),
	}, nil
}

// FormatSerial renders <prefix>-<year>-<zero-padded sequence>.
func FormatSerial(kind types.DocumentKind, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%04d", kind.SerialPrefix(), year, seq)
}

// FormatDate renders the localized date string used on documents.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ValidSerial reports whether s matches the document serial format.
func ValidSerial(s string) bool {
	return serialPattern.MatchString(s)
}
