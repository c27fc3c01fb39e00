package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers beach, zone, sunbed and admin assignment routes.
// All of them require authentication; destructive and assignment operations
// additionally require the super admin role.
func RegisterRoutes(g *gin.RouterGroup, h *BeachHandler, authMiddleware, superAdminMiddleware gin.HandlerFunc) {
	beaches := g.Group("/beaches")
	beaches.Use(authMiddleware)
	{
		beaches.GET("", h.List)
		beaches.GET("/occupancy-overview", h.OccupancyOverview)
		beaches.GET("/stats/summary", h.StatsSummary)
		beaches.GET("/:id", h.Get)

		beaches.POST("", superAdminMiddleware, h.Create)
		beaches.PUT("/:id", superAdminMiddleware, h.Update)
		beaches.DELETE("/:id", superAdminMiddleware, h.Delete)
		beaches.POST("/:id/images", superAdminMiddleware, h.UploadImage)

		beaches.POST("/:id/zones", superAdminMiddleware, h.AddZone)
		beaches.PUT("/:id/zones/:zoneId", superAdminMiddleware, h.UpdateZone)
		beaches.DELETE("/:id/zones/:zoneId", superAdminMiddleware, h.DeleteZone)
		beaches.PUT("/:id/zones/:zoneId/sunbeds/:sunbedId", h.UpdateSunbed)

		beaches.POST("/:id/admins", superAdminMiddleware, h.AssignAdmins)
		beaches.DELETE("/:id/admins/:userId", superAdminMiddleware, h.RemoveAdmin)
	}
}
