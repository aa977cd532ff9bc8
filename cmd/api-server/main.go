package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamereviews/database"
	"gamereviews/internal/app"
	"gamereviews/internal/config"
	"gamereviews/internal/http-api/handler"
	"gamereviews/internal/http-api/repository"
	"gamereviews/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := app.NewLogger(cfg)
	logger.Info("starting_api_server", "env", cfg.GoEnv, "port", cfg.HTTPPort)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.OpenGorm(cfg, logger)
	if err != nil {
		logger.Error("database_connect_failed", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("database_handle_failed", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeCache := app.NewCache(ctx, cfg, logger)
	defer closeCache()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepo(db)
	publisherRepo := repository.NewPublisherRepo(db)
	developerRepo := repository.NewDeveloperRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	commentRepo := repository.NewCommentRepository(db)
	userReviewRepo := repository.NewUserReviewRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg, logger)
	catalogService := service.NewCatalogService(service.CatalogDeps{
		Reviews:     reviewRepo,
		Publishers:  publisherRepo,
		Developers:  developerRepo,
		Genres:      genreRepo,
		Comments:    commentRepo,
		UserReviews: userReviewRepo,
		Cache:       store,
		CacheTTL:    cfg.CacheTTL,
		Logger:      logger,
	})
	adminService := service.NewAdminService(service.AdminDeps{
		Reviews:     reviewRepo,
		Publishers:  publisherRepo,
		Developers:  developerRepo,
		Comments:    commentRepo,
		UserReviews: userReviewRepo,
		Navigation:  catalogService,
		Logger:      logger,
	})
	engagementService := service.NewEngagementService(reviewRepo, commentRepo, userReviewRepo, logger)

	catalog := app.NewCatalog(cfg, store, logger)
	orchestrator := app.NewImporter(db, catalog, app.NewMirror(cfg, logger), app.NewGenerator(cfg, logger), logger)
	importService := service.NewImportService(catalog, orchestrator, reviewRepo, catalogService, logger)

	router := handler.NewRouter(handler.RouterConfig{
		Auth:           handler.NewAuthHandler(authService, cfg.JWTExpiry),
		Catalog:        handler.NewCatalogHandler(catalogService),
		Engagement:     handler.NewEngagementHandler(engagementService),
		Admin:          handler.NewAdminHandler(adminService, importService),
		Tokens:         authService,
		CORSOrigins:    cfg.CORSOrigins,
		AllowAnyOrigin: cfg.IsDevelopment(),
		Metrics:        cfg.PrometheusEnabled,
		Ping:           sqlDB.PingContext,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("http_server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		logger.Error("server_error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
		return
	}
	logger.Info("server_stopped_gracefully")
}
