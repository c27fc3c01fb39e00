package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the dashboard route.
func RegisterRoutes(g *gin.RouterGroup, h *DashboardHandler, authMiddleware gin.HandlerFunc) {
	g.GET("/dashboard/stats", authMiddleware, h.Stats)
}
