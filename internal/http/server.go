// Package http provides the API server, its middleware stack, and the
// standalone metrics server.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/prepdeck/contentguard/internal/config"
	contentHTTP "github.com/prepdeck/contentguard/internal/content/http"
	"github.com/prepdeck/contentguard/internal/identity"
	"github.com/prepdeck/contentguard/internal/metrics"
	securityHTTP "github.com/prepdeck/contentguard/internal/security/http"
)

// Server is the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates the API server and registers all routes.
//
// metricsProvider and readyPing may be nil; the corresponding middleware and
// readiness probe are skipped.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	metricsProvider *metrics.Provider,
	identityProvider identity.Provider,
	contentHandler *contentHTTP.ContentHandler,
	securityHandler *securityHTTP.SecurityHandler,
	readyPing func() error,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", HealthHandler)
	router.GET("/ready", ReadinessHandler(readyPing))

	// Media streaming authenticates with the playback token alone; video
	// elements cannot attach Authorization headers.
	router.GET("/v1/media/:content_id", contentHandler.ServeMediaHandler)

	v1 := router.Group("/v1")
	v1.Use(identity.Middleware(identityProvider, logger))
	{
		v1.PUT("/content/:content_id", identity.RequireEditor(logger), contentHandler.SaveHandler)
		v1.GET("/content/:content_id", contentHandler.GetTextHandler)

		playbackToken := v1.Group("/content/:content_id/playback-token")
		if cfg.RateLimitPlaybackEnabled {
			playbackToken.Use(PlaybackRateLimitMiddleware(
				cfg.RateLimitPlaybackRequestsPerSec,
				cfg.RateLimitPlaybackBurst,
				logger,
			))
		}
		playbackToken.POST("", contentHandler.IssuePlaybackTokenHandler)

		v1.POST("/security/log-suspicious", securityHandler.LogSuspiciousHandler)
		v1.GET("/security/suspicious-activity", identity.RequireEditor(logger), securityHandler.ListHandler)
	}

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
