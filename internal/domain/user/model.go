package user

import (
	"time"

	"github.com/lib/pq"
	"github.com/pcist/pcist-backend/internal/types"
)

// User is a registered club member. ClassRoll is the institute roll number
// and the primary login handle.
type User struct {
	ID            string `db:"id" json:"id"`
	ClassRoll     int    `db:"class_roll" json:"classroll"`
	Email         string `db:"email" json:"email"`
	EmailVerified bool   `db:"email_verified" json:"is_email_verified"`
	PasswordHash  string `db:"password_hash" json:"-"`
	Slug          string `db:"slug" json:"slug"`

	Name         string `db:"name" json:"name"`
	Phone        string `db:"phone" json:"phone"`
	Gender       string `db:"gender" json:"gender"`
	TShirt       string `db:"tshirt" json:"tshirt"`
	Batch        string `db:"batch" json:"batch"`
	Dept         string `db:"dept" json:"dept"`
	ProfileImage string `db:"profile_image" json:"profileimage"`

	// Competitive-programming judge handles.
	CFHandle  string `db:"cf_handle" json:"cfhandle"`
	ATCHandle string `db:"atc_handle" json:"atchandle"`
	CCHandle  string `db:"cc_handle" json:"cchandle"`

	Badges       pq.StringArray `db:"badges" json:"badges"`
	Certificates pq.StringArray `db:"certificates" json:"certificates"`

	Role                types.Role `db:"role" json:"role"`
	Membership          bool       `db:"membership" json:"membership"`
	MembershipExpiresAt *time.Time `db:"membership_expires_at" json:"membershipExpiresAt,omitempty"`

	types.BaseModel
}

func (u *User) IsAdmin() bool {
	return u.Role == types.RoleAdmin
}

// HasActiveMembership reports whether the paid membership is active at t.
func (u *User) HasActiveMembership(t time.Time) bool {
	if !u.Membership {
		return false
	}
	if u.MembershipExpiresAt == nil {
		return true
	}
	return u.MembershipExpiresAt.After(t)
}
