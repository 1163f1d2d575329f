// Package http serves the leave pages and the JSON API over the
// application services.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/leave-master/internal/application/port"
	"github.com/garyjia/leave-master/internal/application/service"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Mode            string
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		Mode:            gin.ReleaseMode,
	}
}

// ComponentHealth represents health of a single component
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// HealthProbe reports overall health and the per-component detail
type HealthProbe func(ctx context.Context) (bool, map[string]ComponentHealth)

// Services are the application services the server exposes
type Services struct {
	Master *service.LeaveMaster
	Form   *service.CreateForm
	Detail *service.LeaveDetail
	Schema port.SchemaReader
	Health HealthProbe
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	services   Services
	logger     *zap.Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(config ServerConfig, services Services, logger *zap.Logger) (*Server, error) {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	server := &Server{
		config:   config,
		router:   router,
		services: services,
		logger:   logger.Named("http"),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server, nil
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(requestIDMiddleware())
	s.router.Use(loggingMiddleware(s.logger))
	s.router.Use(localeMiddleware())
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	pages := NewPageHandlers(s.services, s.logger)
	api := NewAPIHandlers(s.services, s.logger)

	// Health check
	s.router.GET("/health", api.HealthCheck)

	// API routes
	group := s.router.Group("/api")
	{
		group.GET("/leaves", api.ListLeaves)
		group.POST("/leaves", api.CreateLeave)
		group.GET("/leaves/:id", api.GetLeave)
		group.PATCH("/leaves/:id", api.UpdateLeave)
		group.GET("/schema/:field", api.GetFieldSchema)
		group.GET("/holidays", api.ListHolidays)
	}

	// Pages
	s.router.GET("/", pages.CreatePage)
	s.router.POST("/", pages.SubmitCreate)
	s.router.GET("/data-page", pages.DataPage)
	s.router.GET("/data-page/table", pages.DataTable)
	s.router.GET("/data-page/export.xlsx", pages.ExportList)
	s.router.GET("/:id", pages.DetailPage)
	s.router.POST("/:id", pages.SaveDetail)
	s.router.POST("/:id/cancel", pages.CancelDetail)
}

// Start starts the HTTP server and blocks until ctx is done or the
// listener fails
func (s *Server) Start(ctx context.Context) error {
	addr := s.Address()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", zap.Error(err))
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
