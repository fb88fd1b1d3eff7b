package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/North-Head-Digital/nhd-website/internal/middleware"
	"github.com/North-Head-Digital/nhd-website/pkg/config"
	"github.com/North-Head-Digital/nhd-website/pkg/metrics"
)

// DevServer serves the site's public directory for local development.
type DevServer struct {
	config *config.Config
	logger *logrus.Logger
	router *gin.Engine
}

func init() {
	// Set Gin mode to release by default
	gin.SetMode(gin.ReleaseMode)
	// Requests are logged through logrus instead
	gin.DefaultWriter = io.Discard
}

func NewDevServer(cfg *config.Config, logger *logrus.Logger) *DevServer {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &DevServer{
		config: cfg,
		logger: logger,
		router: router,
	}
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler of the server.
func (s *DevServer) Handler() http.Handler {
	return s.router
}

func (s *DevServer) setupRoutes() {
	s.router.Use(middleware.NewMetricsMiddleware(s.logger).MetricsMiddleware())
	s.router.Use(middleware.JavaScriptContentType())

	s.setupHealthCheck()
	if s.config.Metrics.Enabled {
		s.router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	if s.config.Server.AcceptForms {
		s.router.POST("/", s.handleFormSubmission)
	}

	site := newSiteHandler(s.config.Server.PublicDir)
	s.router.NoRoute(site.serve)
}

// setupHealthCheck adds a health check endpoint to the server
func (s *DevServer) setupHealthCheck() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *DevServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Server.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	base := fmt.Sprintf("http://localhost:%d", s.config.Server.Port)
	s.logger.WithFields(logrus.Fields{
		"addr":       srv.Addr,
		"public_dir": s.config.Server.PublicDir,
	}).Infof("Development server running at %s", base)
	s.logger.Infof("Main website: %s", base)
	s.logger.Infof("Portal landing: %s/portal", base)
	s.logger.Infof("Client portal: %s/portal/app/", base)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server exited: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Shutting down development server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	}
}
