package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers auth and account management routes.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware, superAdminMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
	}

	g.GET("/me", authMiddleware, h.Me)

	usersGroup := g.Group("/users")
	usersGroup.Use(authMiddleware, superAdminMiddleware)
	{
		usersGroup.GET("", h.List)
		usersGroup.POST("", h.Create)
		usersGroup.GET("/:id", h.Get)
		usersGroup.PATCH("/:id", h.Update)
		usersGroup.DELETE("/:id", h.Delete)
	}
}
