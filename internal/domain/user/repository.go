package user

import (
	"context"
	"time"

	"github.com/pcist/pcist-backend/internal/types"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByClassRoll(ctx context.Context, classRoll int) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetBySlug(ctx context.Context, slug string) (*User, error)
	Update(ctx context.Context, user *User) error
	List(ctx context.Context, filter *types.Filter) ([]*User, error)
	// ExpireMemberships deactivates every membership whose expiry is at or
	// before now and returns how many rows changed.
	ExpireMemberships(ctx context.Context, now time.Time) (int64, error)
}
