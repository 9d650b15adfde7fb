package postgres

import (
	"context"

	"github.com/pcist/pcist-backend/internal/domain/gallery"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/postgres"
	"github.com/pcist/pcist-backend/internal/types"
)

type galleryRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewGalleryRepository(db *postgres.DB, logger *logger.Logger) gallery.Repository {
	return &galleryRepository{db: db, logger: logger}
}

const galleryColumns = `id, public_id, event_id, url, caption,
	status, created_at, updated_at, created_by, updated_by`

func (r *galleryRepository) Create(ctx context.Context, img *gallery.Image) error {
	r.logger.Debugw("creating gallery image", "image_id", img.ID, "public_id", img.PublicID)

	_, err := r.db.Querier(ctx).ExecContext(ctx, `
		INSERT INTO gallery_images (`+galleryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		img.ID, img.PublicID, img.EventID, img.URL, img.Caption,
		img.Status, img.CreatedAt, img.UpdatedAt, img.CreatedBy, img.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("an image with this public id already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithMessage("failed to create gallery image").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *galleryRepository) List(ctx context.Context, filter *types.Filter) ([]*gallery.Image, error) {
	var images []*gallery.Image
	err := r.db.Querier(ctx).SelectContext(ctx, &images, `
		SELECT `+galleryColumns+` FROM gallery_images
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		types.StatusPublished, filter.GetLimit(), filter.GetOffset())
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to list gallery images").
			Mark(ierr.ErrDatabase)
	}
	return images, nil
}

func (r *galleryRepository) ListByEvent(ctx context.Context, eventID string) ([]*gallery.Image, error) {
	var images []*gallery.Image
	err := r.db.Querier(ctx).SelectContext(ctx, &images, `
		SELECT `+galleryColumns+` FROM gallery_images
		WHERE event_id = $1 AND status = $2
		ORDER BY created_at DESC`,
		eventID, types.StatusPublished)
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to list event gallery images").
			Mark(ierr.ErrDatabase)
	}
	return images, nil
}
