package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"lumina/app/assistant"
	"lumina/app/client"
	"lumina/app/config"
	"lumina/app/controllers"
	"lumina/app/middleware"
	"lumina/app/repositories"
	"lumina/app/routes"
	"lumina/app/view"
)

const shutdownTimeout = 10 * time.Second

// Server is an HTTP server that shuts down gracefully when its context ends.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

func NewServer(addr string, handler http.Handler, logger *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

// Run listens on the server address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then drains in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// NewAPIHandler wires the Content API over backend.
func NewAPIHandler(cfg config.Config, backend repositories.Backend, logger *slog.Logger) http.Handler {
	generator := assistant.NewClient(assistant.Config{
		APIURL: cfg.DraftAPIURL,
		APIKey: cfg.OpenAIKey,
		Model:  cfg.DraftModel,
	})
	router := routes.SetupAPIRoutes(backend, generator, logger)
	return middleware.CORS(cfg.CORSOrigin)(router)
}

// RunAPIServer opens the store and serves the Content API until ctx ends.
func RunAPIServer(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	backend := repositories.Open(ctx, repositories.Options{URL: cfg.StoreURL, Timeout: cfg.StoreTimeout}, logger)
	defer backend.Close()

	return NewServer(cfg.Addr(), NewAPIHandler(cfg, backend, logger), logger).Run(ctx)
}

// NewWebHandler wires the server-rendered UI against the API at cfg.APIURL.
func NewWebHandler(cfg config.Config, logger *slog.Logger) (http.Handler, error) {
	web, err := controllers.NewWebController(client.New(cfg.APIURL, nil), view.NewState(), logger)
	if err != nil {
		return nil, err
	}
	return routes.SetupWebRoutes(web, logger), nil
}

// RunWebServer serves the web UI until ctx ends.
func RunWebServer(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	handler, err := NewWebHandler(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("web UI using API", "url", cfg.APIURL)
	return NewServer(cfg.WebAddr(), handler, logger).Run(ctx)
}
