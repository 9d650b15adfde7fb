package dto

import (
	"github.com/pcist/pcist-backend/internal/validator"
)

type BroadcastRequest struct {
	Title string            `json:"title" validate:"required"`
	Body  string            `json:"body" validate:"required"`
	Data  map[string]string `json:"data"`
}

func (r *BroadcastRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type NotifyDeviceRequest struct {
	Token string            `json:"token" validate:"required"`
	Title string            `json:"title" validate:"required"`
	Body  string            `json:"body" validate:"required"`
	Data  map[string]string `json:"data"`
}

func (r *NotifyDeviceRequest) Validate() error {
	return validator.ValidateRequest(r)
}
