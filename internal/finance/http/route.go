package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers finance record and payout routes. Record
// mutations and payout processing require the super admin role.
func RegisterRoutes(g *gin.RouterGroup, h *FinanceHandler, authMiddleware, superAdminMiddleware gin.HandlerFunc) {
	fin := g.Group("/finance")
	fin.Use(authMiddleware)
	{
		fin.GET("/records", h.ListRecords)
		fin.POST("/records", superAdminMiddleware, h.CreateRecord)
		fin.DELETE("/records/:id", superAdminMiddleware, h.DeleteRecord)
		fin.GET("/summary", h.Summary)
		fin.GET("/overview", h.Overview)
	}

	payouts := g.Group("/payouts")
	payouts.Use(authMiddleware)
	{
		payouts.GET("", h.ListPayouts)
		payouts.POST("", h.CreatePayout)
		payouts.GET("/:id", h.GetPayout)
		payouts.POST("/:id/process", superAdminMiddleware, h.ProcessPayout)
		payouts.DELETE("/:id", superAdminMiddleware, h.DeletePayout)
	}
}
