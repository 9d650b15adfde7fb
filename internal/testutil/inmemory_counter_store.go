package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/pcist/pcist-backend/internal/types"
)

type InMemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewInMemoryCounterStore() *InMemoryCounterStore {
	return &InMemoryCounterStore{
		counters: make(map[string]int64),
	}
}

func (r *InMemoryCounterStore) Next(ctx context.Context, kind types.DocumentKind, year int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%s/%d", kind, year)
	r.counters[key]++
	return r.counters[key], nil
}
