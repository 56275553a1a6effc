package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danmuck/scorectl/internal/auth"
	"github.com/danmuck/scorectl/internal/config"
	"github.com/danmuck/scorectl/internal/logging"
	"github.com/danmuck/scorectl/internal/observability"
	"github.com/danmuck/scorectl/internal/scoring"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Server exposes the scoring service over HTTP.
type Server struct {
	Name     string
	Addr     string
	Appeared time.Time

	router          *gin.Engine
	scorer          *scoring.Service
	validator       auth.Validator
	logger          zerolog.Logger
	shutdownTimeout time.Duration
}

func Appear(cfg config.ServerConfig) *Server {
	observability.RegisterMetrics()
	logger := logging.New(cfg.Name)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestID())
	r.Use(observability.RequestLogger(logger))
	r.Use(observability.RequestMetricsMiddleware(cfg.Name))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  normalizeOrigins(cfg.CorsOrigins),
		AllowMethods:  []string{"GET", "POST"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", auth.HeaderAPIKey, observability.HeaderRequestID},
		ExposeHeaders: []string{observability.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Server{
		Name:            cfg.Name,
		Addr:            cfg.Addr,
		Appeared:        time.Now(),
		router:          r,
		scorer:          scoring.NewService(cfg.MaxRolls, logger),
		validator:       auth.FromToken(cfg.AuthToken),
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

// Serve registers routes and listens on Addr until ctx is cancelled, then
// drains in-flight requests for up to the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context) error {
	s.RegisterRoutes()
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.Addr).Msg("scorectl listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info().Dur("timeout", timeout).Msg("scorectl shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
