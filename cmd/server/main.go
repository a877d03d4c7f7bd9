package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wordduel/wordduel-go/internal/api"
	"github.com/wordduel/wordduel-go/internal/factory"
	"github.com/wordduel/wordduel-go/internal/services/words"
	redisstorage "github.com/wordduel/wordduel-go/internal/storage/redis"
)

const (
	challengeSweepInterval = time.Minute
	hubSweepInterval       = 5 * time.Minute
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// External word source, unless disabled
	if os.Getenv("DISABLE_WORD_FETCH") == "" {
		if baseURL := os.Getenv("WORD_API_URL"); baseURL != "" {
			cfg.WordFetcher = words.NewDatamuseFetcherWithURL(baseURL)
		} else {
			cfg.WordFetcher = words.NewDatamuseFetcher()
		}
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Seed fallback word lists
	if err := app.WordService.LoadDefaults(context.Background()); err != nil {
		logger.Warn("could not seed default word lists", slog.String("error", err.Error()))
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		AuthService:        app.AuthService,
		MatchController:    app.MatchController,
		MatchmakingService: app.MatchmakingService,
		ChallengeService:   app.ChallengeService,
		StatsService:       app.StatsService,
		Hubs:               app.HubManager,
		Broadcaster:        app.Broadcaster,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if portEnv := os.Getenv("PORT"); portEnv != "" {
		port, err := strconv.Atoi(portEnv)
		if err != nil {
			logger.Error("invalid PORT", slog.String("value", portEnv))
			os.Exit(1)
		}
		serverConfig.Port = port
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Background sweeps: expire stale challenges, drop idle SSE hubs
	go func() {
		challengeTicker := time.NewTicker(challengeSweepInterval)
		hubTicker := time.NewTicker(hubSweepInterval)
		defer challengeTicker.Stop()
		defer hubTicker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-challengeTicker.C:
				if _, err := app.ChallengeService.ExpireStale(ctx); err != nil {
					logger.Warn("challenge sweep failed", slog.String("error", err.Error()))
				}
			case <-hubTicker.C:
				app.HubManager.CleanupEmptyHubs()
			}
		}
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
