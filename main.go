package main

import (
	"context"
	"movieapi/cache"
	"movieapi/config"
	"movieapi/database"
	"movieapi/logging"
	"movieapi/middleware"
	"movieapi/routers"
	"movieapi/utils"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg := config.LoadConfig()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.ConnectDb(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to the database")
	}

	ratings := cache.New(cfg.RedisAddr, cfg.RatingCacheTTL)
	defer ratings.Close()

	scheduler, err := utils.StartRatingReconciler(db, cfg.ReconcileSchedule, ratings)
	if err != nil {
		logging.Fatal().Err(err).Str("schedule", cfg.ReconcileSchedule).Msg("invalid reconcile schedule")
	}

	app := routers.New(routers.Deps{
		Config: cfg,
		DB:     db,
		Tokens: middleware.NewJWTManager(cfg.JWTKey, middleware.DefaultTokenTTL),
		Cache:  ratings,
	})

	go func() {
		logging.Info().Str("port", cfg.Port).Msg("server is running")
		if err := app.Listen(":" + cfg.Port); err != nil {
			logging.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("shutting down")
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
