package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers alert routes. All require authentication.
func RegisterRoutes(g *gin.RouterGroup, h *AlertHandler, authMiddleware gin.HandlerFunc) {
	alerts := g.Group("/alerts")
	alerts.Use(authMiddleware)
	{
		alerts.GET("", h.List)
		alerts.POST("", h.Create)
		alerts.GET("/error-log", h.ErrorLog)
		alerts.POST("/read-all", h.MarkAllRead)
		alerts.POST("/:id/read", h.MarkRead)
		alerts.DELETE("/:id", h.Delete)
	}
}
