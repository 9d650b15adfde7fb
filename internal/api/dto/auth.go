package dto

import (
	"strings"

	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/validator"
)

type SignupRequest struct {
	ClassRoll int    `json:"classroll" validate:"required,gt=0"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	Batch     string `json:"batch"`
	Dept      string `json:"dept"`
}

func (r *SignupRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	// Club policy: members register with their personal gmail account.
	if !strings.HasSuffix(strings.ToLower(r.Email), "@gmail.com") {
		return ierr.NewError("email must be a gmail address").
			WithHint("register with your personal gmail account").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// LoginRequest carries member logins (class roll + password) and the
// super-admin login (email + password). Exactly one identity is set.
type LoginRequest struct {
	ClassRoll int    `json:"classroll"`
	Email     string `json:"email"`
	Password  string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.ClassRoll == 0 && r.Email == "" {
		return ierr.NewError("classroll or email is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

func (r *VerifyEmailRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

func (r *ResetPasswordRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}
