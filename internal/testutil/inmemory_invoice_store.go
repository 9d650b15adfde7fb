package testutil

import (
	"context"
	"sync"

	"github.com/pcist/pcist-backend/internal/domain/invoice"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/types"
)

type InMemoryInvoiceStore struct {
	mu       sync.RWMutex
	invoices map[string]*invoice.Invoice
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		invoices: make(map[string]*invoice.Invoice),
	}
}

func (r *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.invoices {
		if existing.Serial == inv.Serial {
			return ierr.NewError("invoice serial already exists").Mark(ierr.ErrAlreadyExists)
		}
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *InMemoryInvoiceStore) GetByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if inv, exists := r.invoices[id]; exists && inv.Status != types.StatusDeleted {
		cp := *inv
		return &cp, nil
	}
	return nil, ierr.NewError("invoice not found").Mark(ierr.ErrNotFound)
}

func (r *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.invoices[inv.ID]; !exists {
		return ierr.NewError("invoice not found").Mark(ierr.ErrNotFound)
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *InMemoryInvoiceStore) List(ctx context.Context, filter *types.Filter) ([]*invoice.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*invoice.Invoice
	for _, inv := range r.invoices {
		if inv.Status == types.StatusPublished {
			cp := *inv
			result = append(result, &cp)
		}
	}
	return result, nil
}
