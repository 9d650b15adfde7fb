package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pcist/pcist-backend/internal/api/dto"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/service"
	"github.com/pcist/pcist-backend/internal/types"
)

type ChatHandler struct {
	service service.ChatService
	log     *logger.Logger
}

func NewChatHandler(service service.ChatService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{service: service, log: log}
}

func (h *ChatHandler) PostMessage(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	msg, err := h.service.Post(ctx, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *ChatHandler) History(c *gin.Context) {
	var filter types.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	msgs, err := h.service.History(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}
