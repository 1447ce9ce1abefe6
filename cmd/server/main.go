package main

import (
	"log/slog"
	"os"

	"github.com/AEP-2025/lms-service/internal/auth"
	"github.com/AEP-2025/lms-service/internal/cache"
	"github.com/AEP-2025/lms-service/internal/config"
	"github.com/AEP-2025/lms-service/internal/events"
	"github.com/AEP-2025/lms-service/internal/handlers"
	"github.com/AEP-2025/lms-service/internal/repositories/postgres"
	"github.com/AEP-2025/lms-service/internal/services"
	"github.com/AEP-2025/lms-service/internal/utils"
	"github.com/AEP-2025/lms-service/internal/validator"
	"github.com/AEP-2025/lms-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.IsProduction() {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := postgres.AutoMigrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	// Redis backs the dashboard cache and session revocation. The service
	// degrades to a no-op cache when it is unreachable.
	var cacheSvc cache.CacheService
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
		cacheSvc = cache.NoopCache{}
	} else {
		defer redisClient.Close()
		cacheSvc = cache.NewRedisCache(redisClient, logger)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenLifetimeMinutes)
	if err != nil {
		logger.Error("failed to initialize token service", "error", err)
		os.Exit(1)
	}

	var publisher events.EventPublisher = events.NopEventPublisher{}
	if cfg.EventsEnabled {
		kafkaPublisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: cfg.KafkaBrokers,
			TopicName:    cfg.NotificationTopic,
			Logger:       slog.Default(),
		})
		if err != nil {
			logger.Error("failed to create event publisher", "error", err)
			os.Exit(1)
		}
		publisher = kafkaPublisher
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	v := validator.New()
	serviceManager := services.NewServiceManager(repo, tokens, cacheSvc, publisher, v, logger)
	handlerManager := handlers.NewHandlerManager(serviceManager, tokens, cacheSvc, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	handlerManager.SetupRoutes(router)

	logger.Info("starting server", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
