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

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/workshop-explorer/internal/changelog"
	"github.com/weiawesome/workshop-explorer/internal/config"
	"github.com/weiawesome/workshop-explorer/internal/handler"
	"github.com/weiawesome/workshop-explorer/internal/service"
	"github.com/weiawesome/workshop-explorer/internal/steam"
	pkglog "github.com/weiawesome/workshop-explorer/pkg/log"
	"github.com/weiawesome/workshop-explorer/pkg/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: "workshop-service",
	})
	logger := pkglog.L()

	if cfg.Steam.APIKey == "" {
		logger.Warn().Msg("steam api key not configured, search requests will fail")
	}

	// Initialize Steam client
	steamClient := steam.NewClient(steam.Config{
		APIBaseURL:       cfg.Steam.APIBaseURL,
		CommunityBaseURL: cfg.Steam.CommunityBaseURL,
		Timeout:          cfg.Steam.Timeout,
		UserAgent:        cfg.Steam.UserAgent,
	})

	// Initialize service
	workshopService := service.NewWorkshopService(
		steamClient,
		changelog.NewFetcher(steamClient),
		service.Options{
			APIKey: cfg.Steam.APIKey,
			AppID:  cfg.Steam.AppID,
		},
	)

	// Initialize HTTP handler
	httpHandler := handler.NewHandler(workshopService)

	// Setup Gin router
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	// Register routes
	httpHandler.RegisterRoutes(r)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("workshop-service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}
