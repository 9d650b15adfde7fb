package event

import (
	"time"

	"github.com/pcist/pcist-backend/internal/types"
)

// Event is a club activity members can register for, solo or as a team.
type Event struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"eventName"`
	EventType      string    `db:"event_type" json:"eventType"`
	Date           time.Time `db:"date" json:"date"`
	Location       string    `db:"location" json:"location"`
	Description    string    `db:"description" json:"description"`
	NeedMembership bool      `db:"need_membership" json:"needMembership"`

	types.BaseModel
}

// Registration links one user to one event. Team registrations share a
// TeamID; solo registrations leave it empty.
type Registration struct {
	ID          string    `db:"id" json:"id"`
	EventID     string    `db:"event_id" json:"eventId"`
	UserID      string    `db:"user_id" json:"userId"`
	Name        string    `db:"name" json:"name"`
	TeamID      string    `db:"team_id" json:"teamId,omitempty"`
	TeamName    string    `db:"team_name" json:"teamName,omitempty"`
	PaymentDone bool      `db:"payment_done" json:"paymentStatus"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Team groups the registrations sharing a TeamID for list responses.
type Team struct {
	TeamID   string          `json:"teamId"`
	TeamName string          `json:"teamName"`
	Members  []*Registration `json:"members"`
}
