package testutil

import (
	"context"
	"sync"

	"github.com/pcist/pcist-backend/internal/domain/statement"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/types"
)

type InMemoryStatementStore struct {
	mu         sync.RWMutex
	statements map[string]*statement.Statement
}

func NewInMemoryStatementStore() *InMemoryStatementStore {
	return &InMemoryStatementStore{
		statements: make(map[string]*statement.Statement),
	}
}

func (r *InMemoryStatementStore) Create(ctx context.Context, st *statement.Statement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.statements {
		if existing.Serial == st.Serial {
			return ierr.NewError("statement serial already exists").Mark(ierr.ErrAlreadyExists)
		}
	}
	cp := *st
	r.statements[st.ID] = &cp
	return nil
}

func (r *InMemoryStatementStore) GetByID(ctx context.Context, id string) (*statement.Statement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if st, exists := r.statements[id]; exists && st.Status != types.StatusDeleted {
		cp := *st
		return &cp, nil
	}
	return nil, ierr.NewError("statement not found").Mark(ierr.ErrNotFound)
}

func (r *InMemoryStatementStore) Update(ctx context.Context, st *statement.Statement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.statements[st.ID]; !exists {
		return ierr.NewError("statement not found").Mark(ierr.ErrNotFound)
	}
	cp := *st
	r.statements[st.ID] = &cp
	return nil
}

func (r *InMemoryStatementStore) List(ctx context.Context, filter *types.Filter) ([]*statement.Statement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*statement.Statement
	for _, st := range r.statements {
		if st.Status == types.StatusPublished {
			cp := *st
			result = append(result, &cp)
		}
	}
	return result, nil
}
