package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"postman-backend/internal/config"
	"postman-backend/internal/database"
	"postman-backend/internal/logger"
	"postman-backend/internal/ratelimit"
	"postman-backend/internal/relayclient"
	"postman-backend/internal/route"
	"syscall"
	"time"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		_ = os.Setenv("APP_ENV", "development")
		env = "development"
	}
	fmt.Println("Environment: ", env)

	cfg, err := config.Load(config.EnvFilePath(env))
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Initialize the logger
	logger.Init(cfg.Log.Level, cfg.Log.Dir)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		logger.AppLogger.Fatal().Err(err).Msg("Error initializing database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.AppLogger.Fatal().Err(err).Msg("Error getting database handle")
	}
	defer sqlDB.Close()

	relayClient := relayclient.NewClient(relayclient.Config{
		Timeout:      cfg.Relay.Timeout,
		MaxBodyBytes: cfg.Relay.MaxBodyBytes,
	})
	defer relayClient.Close()

	// Rate limiting is optional; without Redis the relay endpoints are unthrottled
	var limiter ratelimit.Limiter
	if cfg.Redis.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisLimiter, err := ratelimit.NewRedisLimiter(ctx, cfg.Redis.URL)
		cancel()
		if err != nil {
			logger.AppLogger.Fatal().Err(err).Msg("Error initializing rate limiter")
		}
		defer redisLimiter.Close()
		limiter = redisLimiter
	} else {
		logger.AppLogger.Warn().Msg("REDIS_URL not set, relay rate limiting disabled")
	}

	router := route.InitRoutes(cfg, db, relayClient, limiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// relayed calls may take up to the relay timeout before we can answer
		WriteTimeout: cfg.Relay.Timeout + 15*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.AppLogger.Fatal().Err(err).Msg("Error starting server")
		}
	}()

	logger.AppLogger.Info().Str("port", cfg.Server.Port).Str("env", cfg.Env).Msg("Server started")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.AppLogger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.AppLogger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.AppLogger.Info().Msg("Server exited gracefully")
}
