// Package server exposes the admin API, the client portal and the magic
// link sign-in over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/balkashynov/luna/internal/auth"
	"github.com/balkashynov/luna/internal/config"
)

// Server provides the luna HTTP endpoints.
type Server struct {
	echo     *echo.Echo
	logger   *zap.Logger
	config   *config.Config
	resolver auth.Resolver
	mailer   auth.Mailer
	metrics  *Metrics
}

// New creates a server. A nil resolver means database sessions and a nil
// mailer means links are only logged.
func New(cfg *config.Config, logger *zap.Logger, resolver auth.Resolver, mailer auth.Mailer) (*Server, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if resolver == nil {
		resolver = auth.SessionResolver{}
	}
	if mailer == nil {
		mailer = auth.LogMailer{Logger: logger}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		logger:   logger,
		config:   cfg,
		resolver: resolver,
		mailer:   mailer,
		metrics:  NewMetrics(),
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.metrics.Middleware())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", responseStatus(c, err)),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s.registerRoutes()
	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	a := s.echo.Group("/auth")
	a.POST("/magic-link", s.handleMagicLink)
	a.GET("/verify", s.handleVerify)
	a.POST("/logout", s.handleLogout)

	api := s.echo.Group("/api", s.requireAdmin)
	api.GET("/dashboard", s.handleDashboard)
	api.GET("/workspaces", s.handleListWorkspaces)
	api.GET("/workspaces/:id", s.handleGetWorkspace)
	api.DELETE("/workspaces/:id", s.handleDeleteWorkspace)
	api.GET("/projects", s.handleListProjects)
	api.GET("/projects/:id", s.handleGetProject)
	api.GET("/tasks", s.handleListTasks)
	api.POST("/tasks", s.handleCreateTask)
	api.GET("/tasks/:id", s.handleGetTask)
	api.DELETE("/tasks/:id", s.handleDeleteTask)
	api.POST("/tasks/:id/approval", s.handleDecideApproval)
	api.GET("/approvals", s.handlePendingApprovals)
	api.GET("/lists", s.handleListLists)
	api.GET("/statuses", s.handleListStatuses)
	api.PATCH("/statuses/:id", s.handleSetStatusState)

	client := s.echo.Group("/client/:slug", s.clientAccess)
	client.GET("", s.handleClientOverview)
	client.GET("/projects/:id", s.handleClientProject)
	client.GET("/tasks/:id", s.handleClientTask)
}

// Echo exposes the router, mainly for httptest.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := s.config.Server.Addr()
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
