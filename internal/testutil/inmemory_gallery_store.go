package testutil

import (
	"context"
	"sync"

	"github.com/pcist/pcist-backend/internal/domain/gallery"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/types"
)

type InMemoryGalleryStore struct {
	mu     sync.RWMutex
	images map[string]*gallery.Image
}

func NewInMemoryGalleryStore() *InMemoryGalleryStore {
	return &InMemoryGalleryStore{
		images: make(map[string]*gallery.Image),
	}
}

func (r *InMemoryGalleryStore) Create(ctx context.Context, img *gallery.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.images {
		if existing.PublicID == img.PublicID {
			return ierr.NewError("image already exists").Mark(ierr.ErrAlreadyExists)
		}
	}
	cp := *img
	r.images[img.ID] = &cp
	return nil
}

func (r *InMemoryGalleryStore) List(ctx context.Context, filter *types.Filter) ([]*gallery.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*gallery.Image
	for _, img := range r.images {
		if img.Status == types.StatusPublished {
			cp := *img
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *InMemoryGalleryStore) ListByEvent(ctx context.Context, eventID string) ([]*gallery.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*gallery.Image
	for _, img := range r.images {
		if img.Status == types.StatusPublished && img.EventID == eventID {
			cp := *img
			result = append(result, &cp)
		}
	}
	return result, nil
}
