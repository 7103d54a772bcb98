package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/netutil"

	"github.com/mleczna-droga/printbridge/config"
	httpx "github.com/mleczna-droga/printbridge/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// HTTPServer wraps the bound listener so callers can learn the real address
// when binding to port 0.
type HTTPServer struct {
	Server   *http.Server
	Listener net.Listener
	TLS      bool
}

// Addr returns the address the server is listening on.
func (s *HTTPServer) Addr() string {
	if s == nil || s.Listener == nil {
		return ""
	}
	return s.Listener.Addr().String()
}

// NewHTTPServer builds the router and binds the listener. Call Serve to accept connections.
func NewHTTPServer(cfg *HTTPServerConfig) (*HTTPServer, error) {
	if cfg == nil || cfg.Config == nil || cfg.Services == nil {
		return nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	httpCfg := cfg.Config.HTTP

	handler := httpx.NewRouter(httpx.RouterServices{
		PrintJobs:     cfg.Services.PrintJobs,
		Printers:      cfg.Services.Printers,
		Events:        cfg.Services.Events,
		AllowedOrigin: httpCfg.AllowedOrigin,
		MaxBodyBytes:  httpCfg.MaxBodyBytes,
		Logger:        logger,
	})

	addr := httpCfg.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":3001"
	}

	ln, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	if httpCfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, httpCfg.MaxConnections)
	}

	return &HTTPServer{
		Server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		Listener: ln,
		TLS:      httpCfg.TLSEnabled(),
	}, nil
}

// Serve blocks accepting connections until the server is shut down.
// It returns nil after a graceful shutdown.
func (s *HTTPServer) Serve(cfg config.HTTPConfig, logger *slog.Logger) error {
	var err error
	if s.TLS {
		logger.Info("starting HTTPS server", "addr", s.Addr())
		err = s.Server.ServeTLS(s.Listener, cfg.TLSCertFile, cfg.TLSKeyFile)
	} else {
		logger.Warn("starting plain HTTP server, development mode only", "addr", s.Addr())
		err = s.Server.Serve(s.Listener)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, s *HTTPServer, logger *slog.Logger) error {
	if s == nil || s.Server == nil {
		return nil
	}

	logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("HTTP server stopped")
	return nil
}
