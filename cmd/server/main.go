package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/SkillProof-Labs/verification-service/internal/cache"
	"github.com/SkillProof-Labs/verification-service/internal/config"
	"github.com/SkillProof-Labs/verification-service/internal/events"
	"github.com/SkillProof-Labs/verification-service/internal/handlers"
	"github.com/SkillProof-Labs/verification-service/internal/middleware"
	"github.com/SkillProof-Labs/verification-service/internal/oracle"
	"github.com/SkillProof-Labs/verification-service/internal/repositories/postgres"
	"github.com/SkillProof-Labs/verification-service/internal/services"
	"github.com/SkillProof-Labs/verification-service/internal/utils"
	"github.com/SkillProof-Labs/verification-service/internal/validator"
	"github.com/SkillProof-Labs/verification-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.LogError(err, "Failed to connect to database")
		os.Exit(1)
	}

	repo := postgres.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.LogError(err, "Failed to migrate database schema")
		os.Exit(1)
	}

	var cacheService cache.CacheService = cache.NoopCache{}
	if redisClient, err := pkg.NewRedisClient(cfg); err != nil {
		logger.Warn("Redis unavailable, running without cache", "error", err)
	} else {
		cacheService = cache.NewRedisCache(redisClient, logger)
	}

	publisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
		KafkaBrokers: cfg.KafkaBrokers,
		TopicName:    cfg.AuditTopic,
		Logger:       utils.ToSlogLogger(logger),
	})
	if err != nil {
		logger.LogError(err, "Failed to create audit event publisher")
		os.Exit(1)
	}
	defer publisher.Close()

	serviceManager := services.NewServiceManager(services.Deps{
		Repo:            repo,
		Publisher:       publisher,
		Logger:          logger,
		Validator:       validator.New(),
		Cache:           cacheService,
		OwnerIdentity:   cfg.OwnerIdentity,
		ServiceIdentity: cfg.ServiceIdentity,
		Network:         oracle.NewHTTPNetwork(cfg.OracleEndpoint),
	})

	// The state machine's own identity must be in the caller registry
	// before it can request evaluations.
	if err := serviceManager.Authorization().AddCaller(context.Background(), cfg.OwnerIdentity, cfg.ServiceIdentity); err != nil {
		logger.LogError(err, "Failed to seed caller registry", "identity", cfg.ServiceIdentity)
		os.Exit(1)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	auth := middleware.NewAuthenticator(cfg, logger)
	handlerManager := handlers.NewHandlerManager(serviceManager, logger)
	handlerManager.SetupRoutes(router, auth, cfg.OwnerIdentity)

	logger.Info("Starting verification service",
		"port", cfg.Port,
		"environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.LogError(err, "Server exited")
		os.Exit(1)
	}
}
