package dto

import (
	"github.com/pcist/pcist-backend/internal/validator"
)

type PostMessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

func (r *PostMessageRequest) Validate() error {
	return validator.ValidateRequest(r)
}
