package gallery

import (
	"github.com/pcist/pcist-backend/internal/types"
)

// Image is one uploaded gallery picture. PublicID is the short,
// content-addressed handle exposed to clients and used as the S3 key.
type Image struct {
	ID       string `db:"id" json:"id"`
	PublicID string `db:"public_id" json:"publicId"`
	EventID  string `db:"event_id" json:"eventId,omitempty"`
	URL      string `db:"url" json:"url"`
	Caption  string `db:"caption" json:"caption,omitempty"`

	types.BaseModel
}
