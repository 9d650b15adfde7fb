package invoice

import (
	"context"

	"github.com/pcist/pcist-backend/internal/types"
)

type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id string) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	List(ctx context.Context, filter *types.Filter) ([]*Invoice, error)
}
