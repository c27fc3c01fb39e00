package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/playamar/beach-admin-backend/internal/alert"
	"github.com/playamar/beach-admin-backend/internal/api"
	"github.com/playamar/beach-admin-backend/internal/auth"
	"github.com/playamar/beach-admin-backend/internal/beach"
	"github.com/playamar/beach-admin-backend/internal/booking"
	"github.com/playamar/beach-admin-backend/internal/dashboard"
	"github.com/playamar/beach-admin-backend/internal/db"
	"github.com/playamar/beach-admin-backend/internal/finance"
	"github.com/playamar/beach-admin-backend/internal/integration"
	"github.com/playamar/beach-admin-backend/internal/notify"
	"github.com/playamar/beach-admin-backend/internal/pkg/storage"
	"github.com/playamar/beach-admin-backend/internal/user"
)

// Config holds the dependencies and settings required to start the
// application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	UploadDir    string
	DBPool       *pgxpool.Pool
	Emitter      notify.Emitter
	Redis        *redis.Client // nil disables the dashboard cache
	CacheTTL     time.Duration
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer wires every module together and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	txManager := db.NewTxManager(cfg.DBPool)

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	photoProcessor := storage.NewPhotoProcessor(1920, 1080)

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher, jwtManager)

	// Finance module
	financeRepo := finance.NewPgxRepository(cfg.DBPool)
	financeService := finance.NewService(financeRepo)

	// Alert module
	alertRepo := alert.NewPgxRepository(cfg.DBPool)
	alertService := alert.NewService(alertRepo)

	// Booking repository doubles as the beach module's booking-link
	// cleaner, so it is built before the beach service.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Beach module
	beachRepo := beach.NewPgxRepository(cfg.DBPool)
	beachService := beach.NewService(beachRepo, userService, bookingRepo, financeRepo, alertRepo, txManager, cfg.Emitter)

	// Booking module
	bookingService := booking.NewService(bookingRepo, beachService, financeService, txManager, cfg.Emitter)

	// Integration module
	integrationRepo := integration.NewPgxRepository(cfg.DBPool)
	integrationService := integration.NewService(integrationRepo)

	// Dashboard module
	dashboardService := dashboard.NewService(beachService, bookingService, financeService, cfg.Redis, cfg.CacheTTL)

	router := api.NewRouter(api.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		UploadDir:    cfg.UploadDir,

		UserService:        userService,
		BeachService:       beachService,
		BookingService:     bookingService,
		FinanceService:     financeService,
		AlertService:       alertService,
		IntegrationService: integrationService,
		DashboardService:   dashboardService,

		Storage:        store,
		PhotoProcessor: photoProcessor,
		JWTManager:     jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
