package counter

import (
	"context"

	"github.com/pcist/pcist-backend/internal/types"
)

// Repository hands out per-kind, per-year document sequence numbers. Next
// must be atomic: two concurrent calls may never observe the same value.
type Repository interface {
	Next(ctx context.Context, kind types.DocumentKind, year int) (int64, error)
}
