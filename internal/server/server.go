// Package server exposes signature parsing and splitting over HTTP.
package server

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Sunkar2710/sigkit/internal/errors"
	"github.com/Sunkar2710/sigkit/internal/signature"
	"github.com/Sunkar2710/sigkit/internal/utils"
)

type Server struct {
	Echo *echo.Echo

	cfg         Config
	engine      signature.Engine
	diagnostics *utils.DiagnosticSystem
}

// NewServer wires middlewares and routes. A positive cfg.CacheSize wraps engine in a cache.
func NewServer(cfg Config, engine signature.Engine, diagnostics *utils.DiagnosticSystem) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if cfg.CacheSize > 0 {
		engine = signature.NewCachedEngine(engine, cfg.CacheSize)
	}

	s := &Server{
		Echo:        e,
		cfg:         cfg,
		engine:      engine,
		diagnostics: diagnostics,
	}

	s.setupMiddlewares()
	s.registerRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.Echo.Use(middleware.Recover())
	if s.cfg.BodyLimit != "" {
		s.Echo.Use(middleware.BodyLimit(s.cfg.BodyLimit))
	}
	s.Echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.diagnostics.Verbose("%s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/healthz", s.health)

	v1 := s.Echo.Group("/v1")
	v1.POST("/signatures", s.parseSignature)
	v1.POST("/signatures/batch", s.parseBatch)
	v1.POST("/split", s.split)
}

// Start serves until ctx is cancelled, then shuts down within the configured timeout
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := s.Echo.Start(s.cfg.Addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return errors.WrapTransportError("start", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.diagnostics.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		return errors.WrapTransportError("shutdown", err)
	}
	return nil
}
