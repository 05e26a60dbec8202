package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tujitume_backend/database"
	"tujitume_backend/internal/auth"
	"tujitume_backend/internal/config"
	"tujitume_backend/internal/email"
	"tujitume_backend/internal/handlers"
	"tujitume_backend/internal/logger"
	"tujitume_backend/internal/middleware"
	"tujitume_backend/internal/routes"
	"tujitume_backend/internal/services"
	"tujitume_backend/internal/validator"
	"tujitume_backend/internal/workers"
	"tujitume_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func Run() {
	if err := config.LoadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.AppConfig

	logger.InitWithWriter(cfg.Server.Env, cfg.Server.LogLevel, os.Stdout)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(cfg.IsDevelopment())
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...")
	gormDB, err := database.Connect(cfg.Database, cfg.IsDevelopment())
	if err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Migration failed", "error", err)
		}
	}

	verifier, err := auth.Init(cfg.Auth)
	if err != nil {
		logger.Fatal("Failed to initialize identity verifier", "error", err, "provider", cfg.Auth.Provider)
	}
	logger.Info("Identity verifier initialized", "provider", cfg.Auth.Provider)

	emailProvider, err := newEmailProvider(cfg.Email)
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}

	container := services.NewServiceContainer(emailProvider)
	ginRouter := SetupRouter(gormDB, verifier, container)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           middleware.CORS(cfg.Server.CORSOrigins)(ginRouter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	worker := workers.NewNotificationWorker(
		gormDB,
		container.NotificationService,
		time.Duration(cfg.Workers.CleanupIntervalMinutes)*time.Minute,
		time.Duration(cfg.Workers.NotificationRetentionDays)*24*time.Hour,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info(fmt.Sprintf("🚀 Server starting on %s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server startup error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return worker.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", "error", err)
	}

	if container.Notifier != nil {
		container.Notifier.Wait()
	}
	if err := emailProvider.Close(); err != nil {
		logger.Warn("Failed to close email provider", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("Server stopped")
}

// SetupRouter собирает gin с middleware, хэндлерами и маршрутами
func SetupRouter(gormDB *gorm.DB, verifier auth.Verifier, container *services.ServiceContainer) *gin.Engine {
	appHandlers := initializeHandlers(container)

	ginRouter := initializeGinRouter(gormDB)

	guards := handlers.RouteGuards{
		Identity: middleware.IdentityMiddleware(verifier),
		Auth:     middleware.AuthMiddleware(verifier, container.UserService),
		Optional: middleware.OptionalAuthMiddleware(verifier),
	}
	routes.RegisterRoutes(ginRouter, appHandlers, guards)

	return ginRouter
}

func newEmailProvider(cfg config.EmailConfig) (email.Provider, error) {
	if !cfg.Enabled {
		logger.Warn("Email is disabled, using no-op provider")
		return email.NewNoopProvider(), nil
	}

	templates, err := email.NewDefaultTemplateManager(cfg.TemplatesDir)
	if err != nil {
		return nil, err
	}
	provider := email.NewSMTPProvider(email.FromAppConfig(cfg), templates)
	if err := provider.Validate(); err != nil {
		return nil, err
	}
	logger.Info("SMTP email provider initialized", "host", cfg.SMTPHost)
	return provider, nil
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.UserService),
		UserHandler:         handlers.NewUserHandler(baseHandler, container.UserService, container.GigService, container.ApplicationService, container.ReviewService),
		GigHandler:          handlers.NewGigHandler(baseHandler, container.GigService, container.ApplicationService, container.ReviewService),
		ApplicationHandler:  handlers.NewApplicationHandler(baseHandler, container.ApplicationService),
		ReviewHandler:       handlers.NewReviewHandler(baseHandler, container.ReviewService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
