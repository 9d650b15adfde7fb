package dto

import (
	"time"

	"github.com/pcist/pcist-backend/internal/domain/user"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/types"
	"github.com/pcist/pcist-backend/internal/validator"
)

type UpdateProfileRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Gender       string `json:"gender"`
	TShirt       string `json:"tshirt"`
	Batch        string `json:"batch"`
	Dept         string `json:"dept"`
	ProfileImage string `json:"profileimage"`
	CFHandle     string `json:"cfhandle"`
	ATCHandle    string `json:"atchandle"`
	CCHandle     string `json:"cchandle"`
}

func (r *UpdateProfileRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// GrantMembershipRequest activates a paid membership for 1, 2 or 3 months.
type GrantMembershipRequest struct {
	UserID string `json:"userId" validate:"required"`
	Months int    `json:"months" validate:"required"`
}

func (r *GrantMembershipRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Months < 1 || r.Months > 3 {
		return ierr.NewError("months must be 1, 2 or 3").
			WithHint("membership can be granted for 1, 2 or 3 months").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type UserResponse struct {
	ID                  string     `json:"id"`
	ClassRoll           int        `json:"classroll"`
	Email               string     `json:"email"`
	EmailVerified       bool       `json:"is_email_verified"`
	Slug                string     `json:"slug"`
	Name                string     `json:"name"`
	Phone               string     `json:"phone"`
	Gender              string     `json:"gender"`
	TShirt              string     `json:"tshirt"`
	Batch               string     `json:"batch"`
	Dept                string     `json:"dept"`
	ProfileImage        string     `json:"profileimage"`
	CFHandle            string     `json:"cfhandle"`
	ATCHandle           string     `json:"atchandle"`
	CCHandle            string     `json:"cchandle"`
	Badges              []string   `json:"badges"`
	Certificates        []string   `json:"certificates"`
	Role                types.Role `json:"role"`
	Membership          bool       `json:"membership"`
	MembershipExpiresAt *time.Time `json:"membershipExpiresAt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

func NewUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:                  u.ID,
		ClassRoll:           u.ClassRoll,
		Email:               u.Email,
		EmailVerified:       u.EmailVerified,
		Slug:                u.Slug,
		Name:                u.Name,
		Phone:               u.Phone,
		Gender:              u.Gender,
		TShirt:              u.TShirt,
		Batch:               u.Batch,
		Dept:                u.Dept,
		ProfileImage:        u.ProfileImage,
		CFHandle:            u.CFHandle,
		ATCHandle:           u.ATCHandle,
		CCHandle:            u.CCHandle,
		Badges:              u.Badges,
		Certificates:        u.Certificates,
		Role:                u.Role,
		Membership:          u.Membership,
		MembershipExpiresAt: u.MembershipExpiresAt,
		CreatedAt:           u.CreatedAt,
	}
}
