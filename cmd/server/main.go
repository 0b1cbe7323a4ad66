package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appplatform "github.com/ofauto/backend/internal/application/platform"
	"github.com/ofauto/backend/internal/infrastructure/config"
	"github.com/ofauto/backend/internal/infrastructure/event"
	"github.com/ofauto/backend/internal/infrastructure/logger"
	"github.com/ofauto/backend/internal/infrastructure/persistence"
	"github.com/ofauto/backend/internal/infrastructure/platformclient"
	"github.com/ofauto/backend/internal/interfaces/http/handler"
	"github.com/ofauto/backend/internal/interfaces/http/middleware"
	"github.com/ofauto/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting OFAuto Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connected and migrated")

	// Initialize repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	contentRepo := persistence.NewGormContentItemRepository(db.DB)
	messageRepo := persistence.NewGormDirectMessageRepository(db.DB)
	snapshotRepo := persistence.NewGormEngagementSnapshotRepository(db.DB)

	// Credential store feeding the platform client factory
	credStore, err := platformclient.LoadCredentialsFile(cfg.Credentials.File)
	if err != nil {
		log.Fatal("Failed to load credentials", zap.Error(err))
	}
	if cfg.Credentials.File != "" {
		log.Info("Credentials loaded", zap.String("file", cfg.Credentials.File))
	}

	// Platform client registry: one live adapter per connected account
	factory := platformclient.NewFactory(credStore)
	registry := platformclient.NewRegistry(factory)
	defer registry.EvictAll()

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize application services
	accountService := appplatform.NewAccountService(accountRepo, registry)
	orchestrationService := appplatform.NewOrchestrationService(
		accountRepo, contentRepo, messageRepo, snapshotRepo,
		registry, eventBus,
		appplatform.FanOutSettings{
			Parallelism:    cfg.FanOut.Parallelism,
			AccountTimeout: cfg.FanOut.AccountTimeout,
		},
		log,
	)

	// Initialize HTTP handlers
	systemHandler := handler.NewSystemHandler(db)
	platformHandler := handler.NewPlatformHandler()
	accountHandler := handler.NewAccountHandler(accountService)
	publishHandler := handler.NewPublishHandler(orchestrationService)
	messageHandler := handler.NewMessageHandler(orchestrationService)
	metricsHandler := handler.NewMetricsHandler(orchestrationService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. CORS - Handle cross-origin requests
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddlewareWithSkip(log, "/healthz"))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/healthz", systemHandler.Health)

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(systemHandler).
		Register(platformHandler).
		Register(accountHandler).
		Register(publishHandler).
		Register(messageHandler).
		Register(metricsHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
