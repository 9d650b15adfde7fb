package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/pcist/pcist-backend/internal/domain/chat"
	"github.com/pcist/pcist-backend/internal/types"
)

type InMemoryChatStore struct {
	mu       sync.RWMutex
	messages []*chat.Message
}

func NewInMemoryChatStore() *InMemoryChatStore {
	return &InMemoryChatStore{}
}

func (r *InMemoryChatStore) Create(ctx context.Context, msg *chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *msg
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *InMemoryChatStore) List(ctx context.Context, filter *types.Filter) ([]*chat.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*chat.Message, 0, len(r.messages))
	for _, msg := range r.messages {
		cp := *msg
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SentAt.After(result[j].SentAt)
	})

	offset := filter.GetOffset()
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit := filter.GetLimit(); len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
