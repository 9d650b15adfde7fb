package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pcist/pcist-backend/internal/api/dto"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/service"
)

type AuthHandler struct {
	service service.AuthService
	log     *logger.Logger
}

func NewAuthHandler(service service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, log: log}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorw("failed to bind signup request", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Signup(ctx, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.VerifyEmail(ctx, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Login(ctx, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.service.ForgotPassword(ctx, &req); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recovery code sent if the account exists"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.service.ResetPassword(ctx, &req); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
