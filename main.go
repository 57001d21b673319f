package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/quillhub/api-go/config"
	"github.com/quillhub/api-go/logging"
	"github.com/quillhub/api-go/routes"
	"github.com/quillhub/api-go/services"
	"github.com/quillhub/api-go/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logging.L().Warn().Msg("no .env file found, using environment")
	}

	logging.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_PRETTY") == "true")

	// Initialize database
	db := config.InitDB()

	// Stats store is optional: without Redis the profile counters are
	// computed from the database on every request.
	var stats store.StatsStore
	if address := os.Getenv("REDIS_ADDRESS"); address != "" {
		redisStore, err := store.NewRedisStatsStore(address, os.Getenv("REDIS_PASSWORD"), 0)
		if err != nil {
			logging.L().Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisStore.Close()
		stats = redisStore
	}

	// Background engagement reconciliation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interval := 15 * time.Minute
	if raw := os.Getenv("RECONCILER_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			logging.L().Fatal().Err(err).Str("value", raw).Msg("invalid RECONCILER_INTERVAL")
		}
		interval = parsed
	}
	reconciler := services.NewReconciler(db, services.NewEngagementService(db, stats), interval)
	reconciler.Start(ctx)

	// Create a new Gin router
	r := gin.New()
	r.Use(logging.GinMiddleware(), gin.Recovery())

	// Initialize routes
	routes.SetupRoutes(r, db, stats)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		logging.L().Info().Str("port", port).Msg("starting server")
		if err := r.Run(":" + port); err != nil {
			logging.L().Fatal().Err(err).Msg("server stopped")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logging.L().Info().Msg("shutting down")
	reconciler.Stop()
	<-reconciler.Done()
}
