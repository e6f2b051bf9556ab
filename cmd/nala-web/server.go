package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nala-lattice/nala-go/cmd/nala-web/api"
	"github.com/nala-lattice/nala-go/pkg/lattice"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Addr    string
	Version string

	// Timeout bounds each request. Zero disables the limit.
	Timeout time.Duration

	// BodyLimit is an echo size string such as "1M".
	BodyLimit string

	// AllowOrigins enables CORS for the listed origins.
	AllowOrigins []string

	// Gzip compresses responses.
	Gzip bool
}

// Server is the HTTP query service over one model.
type Server struct {
	config ServerConfig
	echo   *echo.Echo
	logger *slog.Logger
}

// NewServer creates a server for m.
func NewServer(cfg ServerConfig, m *lattice.Model, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = api.ErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/api/health"
		},
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				logger.Warn("request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.Debug("request", attrs...)
			return nil
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	if cfg.Timeout > 0 {
		e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
			Timeout:      cfg.Timeout,
			ErrorMessage: "Request timeout - query took too long",
		}))
	}

	if cfg.Gzip {
		e.Use(middleware.Gzip())
	}

	if cfg.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.BodyLimit))
	}

	if len(cfg.AllowOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.AllowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	api.RegisterRoutes(e, api.NewHandlers(m, cfg.Version))

	return &Server{config: cfg, echo: e, logger: logger}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// ListenAndServe serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	err := s.echo.Start(s.config.Addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and waits for active ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
