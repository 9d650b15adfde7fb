package gallery

import (
	"context"

	"github.com/pcist/pcist-backend/internal/types"
)

type Repository interface {
	Create(ctx context.Context, image *Image) error
	List(ctx context.Context, filter *types.Filter) ([]*Image, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Image, error)
}
