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

type EventHandler struct {
	service service.EventService
	log     *logger.Logger
}

func NewEventHandler(service service.EventService, log *logger.Logger) *EventHandler {
	return &EventHandler{service: service, log: log}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorw("failed to bind create event request", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Create(ctx, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	var filter types.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	events, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Update(ctx, c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

func (h *EventHandler) RegisterSolo(c *gin.Context) {
	ctx := c.Request.Context()
	req := dto.RegisterSoloRequest{EventID: c.Param("id")}

	reg, err := h.service.RegisterSolo(ctx, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, reg)
}

func (h *EventHandler) RegisterTeam(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.RegisterTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	req.EventID = c.Param("id")

	team, err := h.service.RegisterTeam(ctx, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

func (h *EventHandler) ListRegistrations(c *gin.Context) {
	resp, err := h.service.ListRegistrations(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) SetPayment(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.SetPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	req.EventID = c.Param("id")

	if err := h.service.SetPayment(ctx, &req); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment status updated"})
}
