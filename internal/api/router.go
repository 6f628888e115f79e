package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/media-geotag-mapper/internal/config"
	"github.com/jengzang/media-geotag-mapper/internal/handler"
	"github.com/jengzang/media-geotag-mapper/internal/media"
	"github.com/jengzang/media-geotag-mapper/internal/middleware"
	"github.com/jengzang/media-geotag-mapper/internal/models"
	"github.com/jengzang/media-geotag-mapper/internal/probe"
	"github.com/jengzang/media-geotag-mapper/internal/repository"
	"github.com/jengzang/media-geotag-mapper/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, db *sql.DB) *gin.Engine {
	builder := media.NewBuilder(probe.NewPictureReader(), probe.NewClipReader(cfg.FFprobeBin))
	return NewRouter(cfg, db, builder)
}

// NewRouter wires repositories, services and handlers around the given record builder
func NewRouter(cfg *config.Config, db *sql.DB, builder *media.Builder) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Media Geotag Mapper API is running",
		})
	})

	mediaRepo := repository.NewMediaRepository(db)
	scanRepo := repository.NewScanRepository(db)
	sortKey := models.ParseSortKey(cfg.SortBy)

	scanHandler := handler.NewScanHandler(service.NewScanService(mediaRepo, scanRepo, builder))
	mediaHandler := handler.NewMediaHandler(service.NewMediaService(mediaRepo), service.NewCorrectionService(mediaRepo))
	mapHandler := handler.NewMapHandler(service.NewMapService(mediaRepo, cfg.Map, cfg.PathOptions(), sortKey))
	statsHandler := handler.NewStatsHandler(service.NewStatsService(mediaRepo, cfg.DistanceUnit, sortKey))

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimit, time.Minute), middleware.Auth(cfg.JWTSecret))
	{
		scans := api.Group("/scans")
		{
			scans.POST("", scanHandler.CreateScan)
			scans.GET("", scanHandler.ListScans)
			scans.GET("/:id", scanHandler.GetScan)
		}

		mediaGroup := api.Group("/media")
		{
			mediaGroup.GET("", mediaHandler.ListMedia)
			mediaGroup.GET("/record", mediaHandler.GetMedia)
			mediaGroup.GET("/summary", mediaHandler.GetSummary)
			mediaGroup.GET("/export.csv", mediaHandler.ExportCSV)
			mediaGroup.POST("/flip-longitude", mediaHandler.FlipLongitude)
		}

		maps := api.Group("/map")
		{
			maps.GET("/paths", mapHandler.GetPaths)
			maps.GET("/geojson", mapHandler.GetGeoJSON)
			maps.GET("/html", mapHandler.GetHTML)
			maps.GET("/gpx", mapHandler.GetGPX)
		}

		statsGroup := api.Group("/stats")
		{
			statsGroup.GET("/yearly", statsHandler.GetYearly)
		}
	}

	return r
}
