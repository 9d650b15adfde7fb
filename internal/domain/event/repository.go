package event

import (
	"context"

	"github.com/pcist/pcist-backend/internal/types"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter *types.Filter) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error

	AddRegistration(ctx context.Context, reg *Registration) error
	GetRegistration(ctx context.Context, eventID, userID string) (*Registration, error)
	ListRegistrations(ctx context.Context, eventID string) ([]*Registration, error)
	SetPaymentDone(ctx context.Context, eventID, userID string, done bool) error
}
