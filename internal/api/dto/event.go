package dto

import (
	"time"

	"github.com/pcist/pcist-backend/internal/domain/event"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/validator"
)

type CreateEventRequest struct {
	Name           string    `json:"eventName" validate:"required"`
	EventType      string    `json:"eventType" validate:"required"`
	Date           time.Time `json:"date" validate:"required"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	NeedMembership bool      `json:"needMembership"`
}

func (r *CreateEventRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type UpdateEventRequest struct {
	Name           *string    `json:"eventName"`
	EventType      *string    `json:"eventType"`
	Date           *time.Time `json:"date"`
	Location       *string    `json:"location"`
	Description    *string    `json:"description"`
	NeedMembership *bool      `json:"needMembership"`
}

func (r *UpdateEventRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the set fields onto the event.
func (r *UpdateEventRequest) Apply(ev *event.Event) {
	if r.Name != nil {
		ev.Name = *r.Name
	}
	if r.EventType != nil {
		ev.EventType = *r.EventType
	}
	if r.Date != nil {
		ev.Date = *r.Date
	}
	if r.Location != nil {
		ev.Location = *r.Location
	}
	if r.Description != nil {
		ev.Description = *r.Description
	}
	if r.NeedMembership != nil {
		ev.NeedMembership = *r.NeedMembership
	}
}

type RegisterSoloRequest struct {
	EventID string `json:"eventId" validate:"required"`
}

func (r *RegisterSoloRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type RegisterTeamRequest struct {
	EventID  string   `json:"eventId" validate:"required"`
	TeamName string   `json:"teamName" validate:"required"`
	Members  []string `json:"members" validate:"required,min=1"`
}

func (r *RegisterTeamRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(r.Members))
	for _, id := range r.Members {
		if id == "" {
			return ierr.NewError("team member id must not be empty").
				Mark(ierr.ErrValidation)
		}
		if _, dup := seen[id]; dup {
			return ierr.NewError("duplicate team member").
				WithHint("each member may appear only once in a team").
				Mark(ierr.ErrValidation)
		}
		seen[id] = struct{}{}
	}
	return nil
}

type SetPaymentRequest struct {
	EventID string `json:"eventId" validate:"required"`
	UserID  string `json:"userId" validate:"required"`
	Done    bool   `json:"paymentStatus"`
}

func (r *SetPaymentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type EventResponse struct {
	*event.Event
}

type RegistrationsResponse struct {
	Solo  []*event.Registration `json:"solo"`
	Teams []*event.Team         `json:"teams"`
}
