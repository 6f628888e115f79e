package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/media-geotag-mapper/internal/models"
	"github.com/jengzang/media-geotag-mapper/internal/service"
	"github.com/jengzang/media-geotag-mapper/pkg/response"
)

// ScanHandler handles HTTP requests for folder scans
type ScanHandler struct {
	scanService *service.ScanService
}

// NewScanHandler creates a new scan handler
func NewScanHandler(scanService *service.ScanService) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
	}
}

// CreateScan handles POST /api/v1/scans
func (h *ScanHandler) CreateScan(c *gin.Context) {
	var req models.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	job, err := h.scanService.Scan(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFolders):
			response.BadRequest(c, err.Error())
		case job != nil:
			// The job itself records the failure.
			response.Success(c, job)
		default:
			response.InternalError(c, err.Error())
		}
		return
	}

	response.Created(c, job)
}

// GetScan handles GET /api/v1/scans/:id
func (h *ScanHandler) GetScan(c *gin.Context) {
	job, err := h.scanService.GetScan(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrScanNotFound) {
			response.NotFound(c, "Scan not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, job)
}

// ListScans handles GET /api/v1/scans
func (h *ScanHandler) ListScans(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	jobs, err := h.scanService.ListScans(c.Request.Context(), limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, jobs)
}
