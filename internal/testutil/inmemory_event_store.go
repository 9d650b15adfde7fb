package testutil

import (
	"context"
	"sync"

	"github.com/pcist/pcist-backend/internal/domain/event"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/types"
)

type InMemoryEventStore struct {
	mu            sync.RWMutex
	events        map[string]*event.Event
	registrations map[string]*event.Registration // keyed by eventID + "/" + userID
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		events:        make(map[string]*event.Event),
		registrations: make(map[string]*event.Registration),
	}
}

func (r *InMemoryEventStore) Create(ctx context.Context, ev *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *ev
	r.events[ev.ID] = &cp
	return nil
}

func (r *InMemoryEventStore) GetByID(ctx context.Context, id string) (*event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ev, exists := r.events[id]; exists && ev.Status != types.StatusDeleted {
		cp := *ev
		return &cp, nil
	}
	return nil, ierr.NewError("event not found").Mark(ierr.ErrNotFound)
}

func (r *InMemoryEventStore) List(ctx context.Context, filter *types.Filter) ([]*event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*event.Event
	for _, ev := range r.events {
		if ev.Status == types.StatusPublished {
			cp := *ev
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *InMemoryEventStore) Update(ctx context.Context, ev *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[ev.ID]; !exists {
		return ierr.NewError("event not found").Mark(ierr.ErrNotFound)
	}
	cp := *ev
	r.events[ev.ID] = &cp
	return nil
}

func (r *InMemoryEventStore) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ev, exists := r.events[id]
	if !exists || ev.Status == types.StatusDeleted {
		return ierr.NewError("event not found").Mark(ierr.ErrNotFound)
	}
	ev.Status = types.StatusDeleted
	return nil
}

func (r *InMemoryEventStore) AddRegistration(ctx context.Context, reg *event.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := reg.EventID + "/" + reg.UserID
	if _, exists := r.registrations[key]; exists {
		return ierr.NewError("already registered").Mark(ierr.ErrAlreadyExists)
	}
	cp := *reg
	r.registrations[key] = &cp
	return nil
}

func (r *InMemoryEventStore) GetRegistration(ctx context.Context, eventID, userID string) (*event.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if reg, exists := r.registrations[eventID+"/"+userID]; exists {
		cp := *reg
		return &cp, nil
	}
	return nil, ierr.NewError("registration not found").Mark(ierr.ErrNotFound)
}

func (r *InMemoryEventStore) ListRegistrations(ctx context.Context, eventID string) ([]*event.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*event.Registration
	for _, reg := range r.registrations {
		if reg.EventID == eventID {
			cp := *reg
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *InMemoryEventStore) SetPaymentDone(ctx context.Context, eventID, userID string, done bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, exists := r.registrations[eventID+"/"+userID]
	if !exists {
		return ierr.NewError("registration not found").Mark(ierr.ErrNotFound)
	}
	reg.PaymentDone = done
	return nil
}
