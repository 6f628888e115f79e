package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/media-geotag-mapper/internal/models"
	"github.com/jengzang/media-geotag-mapper/internal/service"
	"github.com/jengzang/media-geotag-mapper/pkg/response"
)

// MapHandler handles HTTP requests for map views
type MapHandler struct {
	mapService *service.MapService
}

// NewMapHandler creates a new map handler
func NewMapHandler(mapService *service.MapService) *MapHandler {
	return &MapHandler{
		mapService: mapService,
	}
}

func bindMapQuery(c *gin.Context) (models.MapQuery, bool) {
	var q models.MapQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return q, false
	}
	return q, true
}

// GetPaths handles GET /api/v1/map/paths
func (h *MapHandler) GetPaths(c *gin.Context) {
	q, ok := bindMapQuery(c)
	if !ok {
		return
	}

	view, err := h.mapService.View(c.Request.Context(), q)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, view)
}

// GetGeoJSON handles GET /api/v1/map/geojson
func (h *MapHandler) GetGeoJSON(c *gin.Context) {
	q, ok := bindMapQuery(c)
	if !ok {
		return
	}

	fc, err := h.mapService.GeoJSON(c.Request.Context(), q)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

// GetHTML handles GET /api/v1/map/html
func (h *MapHandler) GetHTML(c *gin.Context) {
	q, ok := bindMapQuery(c)
	if !ok {
		return
	}

	var page bytes.Buffer
	if err := h.mapService.WriteHTML(c.Request.Context(), &page, q); err != nil {
		response.InternalError(c, err.Error())
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", page.Bytes())
}

// GetGPX handles GET /api/v1/map/gpx
func (h *MapHandler) GetGPX(c *gin.Context) {
	q, ok := bindMapQuery(c)
	if !ok {
		return
	}

	doc, err := h.mapService.GPX(c.Request.Context(), q)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Attachment(c, "media.gpx", "application/gpx+xml", doc)
}
