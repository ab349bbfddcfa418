package chiapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mikey/email-classifier/internal/adapters/api"
	"github.com/mikey/email-classifier/internal/config"
	"go.uber.org/zap"
)

// Server serves the classification API with chi
type Server struct {
	handlers *api.Handlers
	logger   *zap.Logger
	cfg      config.HTTPConfig
	router   *chi.Mux
	server   *http.Server
	addr     net.Addr
}

// NewServer creates a new chi server and registers its routes
func NewServer(handlers *api.Handlers, logger *zap.Logger, cfg config.HTTPConfig) *Server {
	s := &Server{
		handlers: handlers,
		logger:   logger,
		cfg:      cfg,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.Get("/", s.index)
	r.Get("/verify", s.verify)
	r.Post("/batch", s.batch)
	r.Get("/health", s.health)
	r.Get("/stats", s.stats)
	r.Get("/domains/list", s.domains)

	return r
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Name identifies the front end
func (s *Server) Name() string {
	return "http-chi"
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
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	s.logger.Info("HTTP API starting", zap.String("framework", "chi"), zap.String("address", ln.Addr().String()))

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

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger)(s.handlers.Index())
}

func (s *Server) verify(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger)(s.handlers.Verify(r.Context(), r.URL.Query().Get("email")))
}

func (s *Server) batch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger)(s.handlers.Batch(r.Context(), r.Body))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger)(s.handlers.Health())
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger)(s.handlers.Stats())
}

func (s *Server) domains(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger)(s.handlers.Domains())
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger) func(status int, data any) {
	return func(status int, data any) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.Error("JSON encode error", zap.Error(err))
		}
	}
}

// requestLogger logs every request with zap
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			s.logger.Info("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("latency", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		}()

		next.ServeHTTP(ww, r)
	})
}
