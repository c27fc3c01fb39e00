package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playamar/beach-admin-backend/internal/app"
	"github.com/playamar/beach-admin-backend/internal/config"
	"github.com/playamar/beach-admin-backend/internal/db"
	"github.com/playamar/beach-admin-backend/internal/logger"
	"github.com/playamar/beach-admin-backend/internal/notify"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.Get()

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("failed to connect to db", "error", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	emitter := notify.NewNoopEmitter()
	if cfg.NATSURL != "" {
		emitter, err = notify.NewStanEmitter(notify.Config{
			URL:       cfg.NATSURL,
			ClusterID: cfg.NATSClusterID,
			ClientID:  cfg.NATSClientID,
		})
		if err != nil {
			logger.Fatal("failed to connect to nats", "error", err)
		}
	}
	defer emitter.Close()

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()
	}

	container, err := app.NewContainer(app.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		UploadDir:    cfg.UploadDir,
		DBPool:       pool,
		Emitter:      emitter,
		Redis:        redisClient,
		CacheTTL:     cfg.CacheTTL,
		JWTSecret:    cfg.JWTSecret,
		JWTTTL:       cfg.JWTAccessTokenTTL,
		BcryptCost:   cfg.BcryptCost,
	})
	if err != nil {
		logger.Fatal("failed to build container", "error", err)
	}

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	go func() {
		log.Info("server running", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited gracefully")
}
