package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/playamar/beach-admin-backend/internal/alert"
	alertHttp "github.com/playamar/beach-admin-backend/internal/alert/http"
	"github.com/playamar/beach-admin-backend/internal/auth"
	"github.com/playamar/beach-admin-backend/internal/beach"
	beachHttp "github.com/playamar/beach-admin-backend/internal/beach/http"
	"github.com/playamar/beach-admin-backend/internal/booking"
	bookingHttp "github.com/playamar/beach-admin-backend/internal/booking/http"
	"github.com/playamar/beach-admin-backend/internal/dashboard"
	dashboardHttp "github.com/playamar/beach-admin-backend/internal/dashboard/http"
	"github.com/playamar/beach-admin-backend/internal/finance"
	financeHttp "github.com/playamar/beach-admin-backend/internal/finance/http"
	"github.com/playamar/beach-admin-backend/internal/integration"
	integrationHttp "github.com/playamar/beach-admin-backend/internal/integration/http"
	"github.com/playamar/beach-admin-backend/internal/pkg/storage"
	"github.com/playamar/beach-admin-backend/internal/user"
	userHttp "github.com/playamar/beach-admin-backend/internal/user/http"
)

// Config holds everything the router needs to assemble the API surface.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	UploadDir    string

	UserService        user.Service
	BeachService       beach.Service
	BookingService     booking.Service
	FinanceService     finance.Service
	AlertService       alert.Service
	IntegrationService integration.Service
	DashboardService   dashboard.Service

	Storage        storage.Storage
	PhotoProcessor *storage.PhotoProcessor
	JWTManager     *auth.JWTManager
}

// NewRouter assembles middleware and registers every module's routes under
// /v1. Uploaded photos are served from /uploads.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), Metrics())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	superAdminMiddleware := RequireSuperAdmin()

	userHandler := userHttp.NewHandler(cfg.UserService)
	beachHandler := beachHttp.NewHandler(cfg.BeachService, cfg.Storage, cfg.PhotoProcessor)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	financeHandler := financeHttp.NewHandler(cfg.FinanceService)
	alertHandler := alertHttp.NewHandler(cfg.AlertService)
	integrationHandler := integrationHttp.NewHandler(cfg.IntegrationService)
	dashboardHandler := dashboardHttp.NewHandler(cfg.DashboardService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", MetricsHandler())
	r.Static("/uploads", cfg.UploadDir)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, superAdminMiddleware)
		beachHttp.RegisterRoutes(v1, beachHandler, authMiddleware, superAdminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		financeHttp.RegisterRoutes(v1, financeHandler, authMiddleware, superAdminMiddleware)
		alertHttp.RegisterRoutes(v1, alertHandler, authMiddleware)
		integrationHttp.RegisterRoutes(v1, integrationHandler, authMiddleware, superAdminMiddleware)
		dashboardHttp.RegisterRoutes(v1, dashboardHandler, authMiddleware)
	}

	return r
}
