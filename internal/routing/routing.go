package routing

import (
	"github.com/labstack/echo/v4"

	"github.com/praveen-raj-m/compliance-ai/internal/handlers/api"
)

// InitRoutes registers the /api surface.
func InitRoutes(e *echo.Echo, handler *api.Handler) {
	g := e.Group("/api")
	g.GET("/standards", handler.GetStandards)
	g.GET("/embedded-standards", handler.GetStandards)
	g.GET("/gaps", handler.GetGaps)
	g.POST("/query", handler.PostQuery)
	g.POST("/upload-standard", handler.PostUploadStandard)
	g.POST("/compare", handler.PostCompare)
}
