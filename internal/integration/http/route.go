package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers integration routes. Mutations require the super
// admin role.
func RegisterRoutes(g *gin.RouterGroup, h *IntegrationHandler, authMiddleware, superAdminMiddleware gin.HandlerFunc) {
	integrations := g.Group("/integrations")
	integrations.Use(authMiddleware)
	{
		integrations.GET("", h.List)
		integrations.GET("/state", h.State)
		integrations.GET("/:id", h.Get)

		integrations.POST("", superAdminMiddleware, h.Create)
		integrations.PATCH("/:id", superAdminMiddleware, h.Update)
		integrations.POST("/:id/toggle", superAdminMiddleware, h.Toggle)
		integrations.DELETE("/:id", superAdminMiddleware, h.Delete)
	}
}
