package chat

import (
	"context"

	"github.com/pcist/pcist-backend/internal/types"
)

type Repository interface {
	Create(ctx context.Context, msg *Message) error
	// List returns messages newest first.
	List(ctx context.Context, filter *types.Filter) ([]*Message, error)
}
