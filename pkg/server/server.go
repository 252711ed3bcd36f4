package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/soundprediction/episodegrid/pkg/config"
	"github.com/soundprediction/episodegrid/pkg/server/handlers"
	"github.com/soundprediction/episodegrid/pkg/types"
	"github.com/soundprediction/episodegrid/pkg/view"
)

// RequestIDHeader carries the per-request id in and out of the server.
const RequestIDHeader = "X-Request-ID"

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	router     *gin.Engine
	controller *view.Controller
	server     *http.Server
	logger     *slog.Logger
}

// New creates a new server instance
func New(cfg *config.Config, controller *view.Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if controller == nil {
		controller = view.NewController(logger)
	}
	return &Server{
		config:     cfg,
		controller: controller,
		logger:     logger,
	}
}

// Setup sets up the server routes and middleware
func (s *Server) Setup() {
	// Set gin mode
	if s.config.Server.Mode != "" {
		gin.SetMode(s.config.Server.Mode)
	}

	// Create router
	s.router = gin.New()
	s.router.UseRawPath = true

	// Add middleware
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())
	s.router.Use(contextMiddleware())

	// Setup routes
	s.setupRoutes()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Handler returns the configured router. Setup must have been called.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes sets up all the routes
func (s *Server) setupRoutes() {
	// Create handlers
	healthHandler := handlers.NewHealthHandler(s.controller)
	viewHandler := handlers.NewViewHandler(s.controller, s.logger)
	apiHandler := handlers.NewAPIHandler(s.controller, s.logger)

	// Health endpoints
	s.router.GET("/health", healthHandler.HealthCheck)
	s.router.GET("/healthcheck", healthHandler.HealthCheck) // Legacy endpoint
	s.router.GET("/ready", healthHandler.ReadinessCheck)
	s.router.GET("/live", healthHandler.LivenessCheck) // Kubernetes liveness probe
	s.router.GET("/health/detailed", healthHandler.DetailedHealthCheck)

	// HTML view
	s.router.GET("/", viewHandler.Page)
	s.router.GET("/select/:id", viewHandler.Select)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/schema", apiHandler.Schema)
		v1.GET("/search", apiHandler.Search)
		v1.GET("/project/:id", apiHandler.Project)
		v1.GET("/entities/:id", apiHandler.Entity)
		v1.GET("/view", apiHandler.View)
		v1.POST("/events", apiHandler.Event)
	}
}

// Start starts the server. It returns nil after a graceful Stop.
func (s *Server) Start() error {
	s.logger.Info("Starting server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping server...")
	return s.server.Shutdown(ctx)
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// contextMiddleware tags the request context with a request id and the
// request source.
func contextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		ctx = context.WithValue(ctx, types.ContextKeyRequestID, requestID)
		ctx = context.WithValue(ctx, types.ContextKeyRequestSource, "server")
		c.Header(RequestIDHeader, requestID)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
