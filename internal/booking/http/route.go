package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. All require authentication.
func RegisterRoutes(g *gin.RouterGroup, h *BookingHandler, authMiddleware gin.HandlerFunc) {
	bookings := g.Group("/bookings")
	bookings.Use(authMiddleware)
	{
		bookings.GET("", h.List)
		bookings.POST("", h.Create)
		bookings.GET("/stats", h.Stats)
		bookings.GET("/:id", h.Get)
		bookings.PATCH("/:id", h.Update)
		bookings.POST("/:id/cancel", h.Cancel)
		bookings.DELETE("/:id", h.Delete)
	}
}
