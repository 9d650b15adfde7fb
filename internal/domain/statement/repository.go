package statement

import (
	"context"

	"github.com/pcist/pcist-backend/internal/types"
)

type Repository interface {
	Create(ctx context.Context, st *Statement) error
	GetByID(ctx context.Context, id string) (*Statement, error)
	Update(ctx context.Context, st *Statement) error
	List(ctx context.Context, filter *types.Filter) ([]*Statement, error)
}
