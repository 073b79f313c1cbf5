// Package router wires the backend's endpoints to their handlers.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ziming-L/wwu-course-navigator/internal/handler"
	"github.com/Ziming-L/wwu-course-navigator/internal/middleware"
	"github.com/Ziming-L/wwu-course-navigator/internal/service"
	"github.com/Ziming-L/wwu-course-navigator/pkg/config"
	"github.com/Ziming-L/wwu-course-navigator/pkg/logger"
	corsmiddleware "github.com/Ziming-L/wwu-course-navigator/pkg/middleware/cors"
	tabidmiddleware "github.com/Ziming-L/wwu-course-navigator/pkg/middleware/tabid"
)

// Deps carries everything the route table needs.
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Schedules *handler.ScheduleHandler
	Files     *handler.FilesHandler
	Metrics   *service.MetricsService
}

// New builds the Gin engine with the full endpoint surface.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(tabidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.Logger))
	r.Use(corsmiddleware.New(d.Config.CORS.AllowedOrigins))
	if d.Config.Server.EnableMetrics {
		r.Use(middleware.Metrics(d.Metrics))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if d.Config.Server.EnableMetrics {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	r.POST("/parse_schedule", d.Schedules.ParseSchedule)
	r.POST("/parse_text", d.Schedules.ParseText)
	r.POST("/cleanup/:tabId", d.Schedules.Cleanup)

	r.GET("/data/:filename", d.Files.Data)

	r.GET("/:tabId/schedule.pdf", d.Files.SchedulePDF)
	r.HEAD("/:tabId/schedule.pdf", d.Files.SchedulePDF)
	r.GET("/:tabId/floorplans/:filename", d.Files.Floorplan)
	r.HEAD("/:tabId/floorplans/:filename", d.Files.Floorplan)

	return r
}
