package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/quizzone/internal/catalog"
	"github.com/SAP-F-2025/quizzone/internal/config"
	"github.com/SAP-F-2025/quizzone/internal/events"
	"github.com/SAP-F-2025/quizzone/internal/handlers"
	"github.com/SAP-F-2025/quizzone/internal/services"
	"github.com/SAP-F-2025/quizzone/internal/utils"
	"github.com/SAP-F-2025/quizzone/internal/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(os.Stdout, cfg.LogLevel, cfg.Environment)
	slog.SetDefault(logger)
	logger.Info("Configuration loaded",
		"environment", cfg.Environment,
		"storage", cfg.StorageBackend,
		"events", cfg.Events.Publisher)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	v := validator.New()
	clock := services.SystemClock()

	quizCatalog, err := catalog.NewFromFile(cfg.CatalogFile, clock.Now(), loc, v, logger)
	if err != nil {
		return err
	}

	repo, store, err := cfg.CreateProgressStore(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close storage", "error", err)
		}
	}()

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("Failed to close event publisher", "error", err)
		}
	}()

	manager := services.NewServiceManager(quizCatalog, repo, publisher, logger, v, services.ManagerConfig{
		Location:       loc,
		Clock:          clock,
		PersistTimeout: cfg.PersistTimeout,
		EnableDebug:    cfg.IsDevelopment(),
	})

	if _, err := manager.Progress().Load(ctx); err != nil {
		logger.Warn("Starting with fresh progress", "error", err)
	}

	// Only the in-process publisher can feed the WebSocket event stream.
	subscriber, _ := publisher.(events.EventSubscriber)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handlers.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware(utils.NewSlogLogger(logger)))

	handlers.NewHandlerManager(manager, subscriber, v, utils.NewSlogLogger(logger)).SetupRoutes(router)

	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ready",
			"storage": cfg.StorageBackend,
			"quizzes": len(quizCatalog.AllQuizzes()),
		})
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown failed", "error", err)
	}
	if err := manager.Close(shutdownCtx); err != nil {
		logger.Warn("Failed to flush progress on shutdown", "error", err)
	}

	logger.Info("Server exited")
	return nil
}
