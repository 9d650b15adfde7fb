package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pcist/pcist-backend/internal/api/dto"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/service"
	"github.com/pcist/pcist-backend/internal/types"
)

// maxImageBytes caps gallery uploads at 10 MiB.
const maxImageBytes = 10 << 20

type GalleryHandler struct {
	service service.GalleryService
	log     *logger.Logger
}

func NewGalleryHandler(service service.GalleryService, log *logger.Logger) *GalleryHandler {
	return &GalleryHandler{service: service, log: log}
}

// UploadImage accepts a multipart form with an "image" file plus
// optional eventId and caption fields.
func (h *GalleryHandler) UploadImage(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UploadImageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		c.Error(ierr.NewError("image file is required").
			WithHint("attach the image as the 'image' form field").
			Mark(ierr.ErrValidation))
		return
	}
	if fh.Size > maxImageBytes {
		c.Error(ierr.NewError("image is too large").
			WithHintf("images must be smaller than %d MiB", maxImageBytes>>20).
			Mark(ierr.ErrValidation))
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("could not read the uploaded image").
			Mark(ierr.ErrValidation))
		return
	}
	defer f.Close()

	req.Data, err = io.ReadAll(f)
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("could not read the uploaded image").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Upload(ctx, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *GalleryHandler) ListImages(c *gin.Context) {
	var filter types.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	images, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *GalleryHandler) ListEventImages(c *gin.Context) {
	images, err := h.service.ListByEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, images)
}
