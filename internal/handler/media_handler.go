package handler

import (
	"bytes"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/media-geotag-mapper/internal/models"
	"github.com/jengzang/media-geotag-mapper/internal/service"
	"github.com/jengzang/media-geotag-mapper/pkg/response"
)

// MediaHandler handles HTTP requests for stored media records
type MediaHandler struct {
	mediaService      *service.MediaService
	correctionService *service.CorrectionService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaService *service.MediaService, correctionService *service.CorrectionService) *MediaHandler {
	return &MediaHandler{
		mediaService:      mediaService,
		correctionService: correctionService,
	}
}

// ListMedia handles GET /api/v1/media
func (h *MediaHandler) ListMedia(c *gin.Context) {
	var filter models.MediaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.mediaService.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrUnknownMediaType) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// GetMedia handles GET /api/v1/media/record?path=
func (h *MediaHandler) GetMedia(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		response.BadRequest(c, "path is required")
		return
	}

	rec, err := h.mediaService.Get(c.Request.Context(), path)
	if err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			response.NotFound(c, "Media record not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, rec)
}

// GetSummary handles GET /api/v1/media/summary
func (h *MediaHandler) GetSummary(c *gin.Context) {
	summary, err := h.mediaService.Summary(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, summary)
}

// ExportCSV handles GET /api/v1/media/export.csv
func (h *MediaHandler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.mediaService.ExportCSV(c.Request.Context(), &buf, c.Query("folder")); err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Attachment(c, "media.csv", "text/csv; charset=utf-8", buf.Bytes())
}

// FlipLongitude handles POST /api/v1/media/flip-longitude
func (h *MediaHandler) FlipLongitude(c *gin.Context) {
	var req models.FlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	n, err := h.correctionService.FlipLongitude(c.Request.Context(), req.Rect, req.Folder)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRect) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"flipped": n})
}
