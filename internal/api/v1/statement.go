package v1

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pcist/pcist-backend/internal/api/dto"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/logger"
	"github.com/pcist/pcist-backend/internal/service"
	"github.com/pcist/pcist-backend/internal/types"
)

// maxSourcePDFBytes caps uploaded source documents at 20 MiB.
const maxSourcePDFBytes = 20 << 20

type StatementHandler struct {
	service service.StatementService
	log     *logger.Logger
}

func NewStatementHandler(service service.StatementService, log *logger.Logger) *StatementHandler {
	return &StatementHandler{service: service, log: log}
}

// GenerateStatement accepts either a JSON body (mode A, laid-out text)
// or a multipart form with a "pdf" file (mode B, branded wrapper).
func (h *StatementHandler) GenerateStatement(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateStatementRequest
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			c.Error(ierr.WithError(err).
				WithHint("invalid request format").
				Mark(ierr.ErrValidation))
			return
		}
		pdf, err := readUploadedPDF(c)
		if err != nil {
			c.Error(err)
			return
		}
		req.SourcePDF = pdf
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.log.Errorw("failed to bind statement request", "error", err)
			c.Error(ierr.WithError(err).
				WithHint("invalid request format").
				Mark(ierr.ErrValidation))
			return
		}
	}

	resp, err := h.service.Generate(ctx, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *StatementHandler) GetStatement(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StatementHandler) ListStatements(c *gin.Context) {
	var filter types.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	statements, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, statements)
}

// DownloadStatement streams the PDF named after its serial.
func (h *StatementHandler) DownloadStatement(c *gin.Context) {
	dl, err := h.service.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.Filename))
	c.Data(http.StatusOK, "application/pdf", dl.PDF)
}

// readUploadedPDF pulls the "pdf" form file; a missing file is fine and
// leaves mode selection to the request validation.
func readUploadedPDF(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile("pdf")
	if err != nil {
		return nil, nil
	}
	if fh.Size > maxSourcePDFBytes {
		return nil, ierr.NewError("uploaded pdf is too large").
			WithHintf("the pdf must be smaller than %d MiB", maxSourcePDFBytes>>20).
			Mark(ierr.ErrValidation)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("could not read the uploaded pdf").
			Mark(ierr.ErrValidation)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("could not read the uploaded pdf").
			Mark(ierr.ErrValidation)
	}
	return data, nil
}
