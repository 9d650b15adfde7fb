package service

import (
	"context"

	"github.com/h2non/filetype"
	"github.com/samber/lo"

	"github.com/pcist/pcist-backend/internal/api/dto"
	"github.com/pcist/pcist-backend/internal/domain/gallery"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/s3"
	"github.com/pcist/pcist-backend/internal/types"
)

type GalleryService interface {
	Upload(ctx context.Context, req *dto.UploadImageRequest) (*dto.ImageResponse, error)
	List(ctx context.Context, filter *types.Filter) ([]*dto.ImageResponse, error)
	ListByEvent(ctx context.Context, eventID string) ([]*dto.ImageResponse, error)
}

type galleryService struct {
	ServiceParams
}

func NewGalleryService(params ServiceParams) GalleryService {
	return &galleryService{ServiceParams: params}
}

// Upload sniffs the file type, stores the image in S3 under a short
// public id and records it.
func (s *galleryService) Upload(ctx context.Context, req *dto.UploadImageRequest) (*dto.ImageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(req.Data) == 0 {
		return nil, ierr.NewError("image file is required").
			Mark(ierr.ErrValidation)
	}

	kind, err := filetype.Match(req.Data)
	if err != nil || !filetype.IsImage(req.Data) {
		return nil, ierr.NewError("uploaded file is not an image").
			WithHint("only image files can be added to the gallery").
			Mark(ierr.ErrValidation)
	}

	if req.EventID != "" {
		if _, err := s.EventRepo.GetByID(ctx, req.EventID); err != nil {
			return nil, err
		}
	}

	publicID := types.GenerateShortID()
	key := publicID + "." + kind.Extension

	var url string
	if s.S3 != nil {
		url, err = s.S3.Upload(ctx, s3.BucketGallery, key, req.Data, kind.MIME.Value)
		if err != nil {
			return nil, err
		}
	}

	img := &gallery.Image{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_IMAGE),
		PublicID:  publicID,
		EventID:   req.EventID,
		URL:       url,
		Caption:   req.Caption,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	if err := s.GalleryRepo.Create(ctx, img); err != nil {
		return nil, err
	}

	s.Logger.Infow("gallery image uploaded", "image_id", img.ID, "public_id", publicID, "bytes", len(req.Data))
	return dto.NewImageResponse(img), nil
}

func (s *galleryService) List(ctx context.Context, filter *types.Filter) ([]*dto.ImageResponse, error) {
	if filter == nil {
		f := types.GetDefaultFilter()
		filter = &f
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	images, err := s.GalleryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return lo.Map(images, func(img *gallery.Image, _ int) *dto.ImageResponse {
		return dto.NewImageResponse(img)
	}), nil
}

func (s *galleryService) ListByEvent(ctx context.Context, eventID string) ([]*dto.ImageResponse, error) {
	images, err := s.GalleryRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return lo.Map(images, func(img *gallery.Image, _ int) *dto.ImageResponse {
		return dto.NewImageResponse(img)
	}), nil
}
