package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayinalign/internal/config"
	"stayinalign/internal/database"
	"stayinalign/internal/handlers"
	"stayinalign/internal/middleware"
	"stayinalign/internal/services"
	"stayinalign/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Server.Env); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Log.Info("Starting StayinAlign server",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("agent", cfg.Bot.Agent),
		zap.Int("search_depth", cfg.Bot.SearchDepth),
	)

	// Postgres and Kafka are optional; the move API works without them.
	var (
		store     services.DecisionStore
		analytics services.AnalyticsStore
		pinger    handlers.Pinger
		events    services.EventPublisher
	)

	db, err := database.New(cfg)
	switch {
	case errors.Is(err, config.ErrNoDatabase):
		logger.Log.Warn("DATABASE_URL not set, decisions will not be stored")
	case err != nil:
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	default:
		defer db.Close()
		if err := db.Migrate(); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		store, analytics, pinger = db, db, db
	}

	if cfg.KafkaEnabled() {
		producer, err := services.NewKafkaProducer(cfg)
		if err != nil {
			logger.Log.Fatal("Failed to create Kafka producer", zap.Error(err))
		}
		defer producer.Close()
		events = producer
	}

	// Initialize services
	decisionService := services.NewDecisionService(cfg, store, events)
	leaderboardService := services.NewLeaderboardService()
	arenaService := services.NewArenaService(cfg, store, events, leaderboardService)
	analyticsService := services.NewAnalyticsService(analytics)

	// Initialize handlers
	wsHandler := handlers.NewWSHandler(decisionService)

	// Setup Gin
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Middleware
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())

	handlers.RegisterRoutes(r, handlers.Handlers{
		HTTP:      handlers.NewHTTPHandler(decisionService, arenaService, leaderboardService),
		WS:        wsHandler,
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		Health:    handlers.NewHealthHandler(pinger, wsHandler),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// Start server
	go func() {
		logger.Log.Info("Server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server shutdown failed", zap.Error(err))
	}
}
