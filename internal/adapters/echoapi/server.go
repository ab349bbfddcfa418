package echoapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mikey/email-classifier/internal/adapters/api"
	"github.com/mikey/email-classifier/internal/config"
	"go.uber.org/zap"
)

// Server serves the classification API with echo
type Server struct {
	echo     *echo.Echo
	handlers *api.Handlers
	logger   *zap.Logger
	cfg      config.HTTPConfig
	server   *http.Server
	addr     net.Addr
}

// NewServer creates a new echo server and registers its routes
func NewServer(handlers *api.Handlers, logger *zap.Logger, cfg config.HTTPConfig) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		handlers: handlers,
		logger:   logger,
		cfg:      cfg,
	}

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("HTTP request",
				zap.String("method", v.Method),
				zap.String("path", v.URIPath),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"*"},
		MaxAge:       300,
	}))

	// Routes
	e.GET("/", s.index)
	e.GET("/verify", s.verify)
	e.POST("/batch", s.batch)
	e.GET("/health", s.health)
	e.GET("/stats", s.stats)
	e.GET("/domains/list", s.domains)

	return s
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Name identifies the front end
func (s *Server) Name() string {
	return "http-echo"
}

// Start listens on the configured address and serves in the background
func (s *Server) Start() error {
	addr := s.cfg.Address()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	s.addr = ln.Addr()
	s.server = &http.Server{
		Handler:      s.echo,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	s.logger.Info("HTTP API starting", zap.String("framework", "echo"), zap.String("address", ln.Addr().String()))

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Addr returns the bound address once started
func (s *Server) Addr() string {
	if s.addr == nil {
		return ""
	}
	return s.addr.String()
}

// Stop gracefully shuts the server down
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) index(c echo.Context) error {
	status, body := s.handlers.Index()
	return c.JSON(status, body)
}

func (s *Server) verify(c echo.Context) error {
	status, body := s.handlers.Verify(c.Request().Context(), c.QueryParam("email"))
	return c.JSON(status, body)
}

func (s *Server) batch(c echo.Context) error {
	status, body := s.handlers.Batch(c.Request().Context(), c.Request().Body)
	return c.JSON(status, body)
}

func (s *Server) health(c echo.Context) error {
	status, body := s.handlers.Health()
	return c.JSON(status, body)
}

func (s *Server) stats(c echo.Context) error {
	status, body := s.handlers.Stats()
	return c.JSON(status, body)
}

func (s *Server) domains(c echo.Context) error {
	status, body := s.handlers.Domains()
	return c.JSON(status, body)
}
