package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/pcist/pcist-backend/internal/domain/user"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/types"
)

type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		users: make(map[string]*user.User),
	}
}

func (r *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.ID]; exists {
		return ierr.NewError("user already exists").Mark(ierr.ErrAlreadyExists)
	}
	for _, existing := range r.users {
		if existing.Status == types.StatusDeleted {
			continue
		}
		if existing.ClassRoll == u.ClassRoll || existing.Email == u.Email || existing.Slug == u.Slug {
			return ierr.NewError("user already exists").Mark(ierr.ErrAlreadyExists)
		}
	}

	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *InMemoryUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, exists := r.users[id]; exists && u.Status != types.StatusDeleted {
		cp := *u
		return &cp, nil
	}
	return nil, ierr.NewError("user not found").Mark(ierr.ErrNotFound)
}

func (r *InMemoryUserStore) GetByClassRoll(ctx context.Context, classRoll int) (*user.User, error) {
	return r.find(func(u *user.User) bool { return u.ClassRoll == classRoll })
}

func (r *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.find(func(u *user.User) bool { return u.Email == email })
}

func (r *InMemoryUserStore) GetBySlug(ctx context.Context, slug string) (*user.User, error) {
	return r.find(func(u *user.User) bool { return u.Slug == slug })
}

func (r *InMemoryUserStore) find(match func(*user.User) bool) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Status != types.StatusDeleted && match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ierr.NewError("user not found").Mark(ierr.ErrNotFound)
}

func (r *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.ID]; !exists {
		return ierr.NewError("user not found").Mark(ierr.ErrNotFound)
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *InMemoryUserStore) List(ctx context.Context, filter *types.Filter) ([]*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*user.User
	for _, u := range r.users {
		if u.Status == types.StatusPublished {
			cp := *u
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *InMemoryUserStore) ExpireMemberships(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, u := range r.users {
		if u.Membership && u.MembershipExpiresAt != nil && !u.MembershipExpiresAt.After(now) {
			u.Membership = false
			n++
		}
	}
	return n, nil
}
