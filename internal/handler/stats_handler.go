package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/media-geotag-mapper/internal/models"
	"github.com/jengzang/media-geotag-mapper/internal/service"
	"github.com/jengzang/media-geotag-mapper/pkg/response"
)

// StatsHandler handles HTTP requests for statistics
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetYearly handles GET /api/v1/stats/yearly
func (h *StatsHandler) GetYearly(c *gin.Context) {
	var q models.StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	report, err := h.statsService.Yearly(c.Request.Context(), q)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, report)
}
