package dto

import (
	"time"

	"github.com/pcist/pcist-backend/internal/domain/gallery"
	"github.com/pcist/pcist-backend/internal/validator"
)

// UploadImageRequest carries the multipart metadata; the handler attaches
// the file bytes.
type UploadImageRequest struct {
	EventID string `form:"eventId" json:"eventId"`
	Caption string `form:"caption" json:"caption"`

	Data []byte `json:"-"`
}

func (r *UploadImageRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ImageResponse struct {
	ID        string    `json:"id"`
	PublicID  string    `json:"publicId"`
	EventID   string    `json:"eventId,omitempty"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewImageResponse(img *gallery.Image) *ImageResponse {
	return &ImageResponse{
		ID:        img.ID,
		PublicID:  img.PublicID,
		EventID:   img.EventID,
		URL:       img.URL,
		Caption:   img.Caption,
		CreatedAt: img.CreatedAt,
	}
}
