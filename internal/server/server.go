// internal/server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"mergington-activities/internal/common/config"
	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/observability"
	"mergington-activities/internal/models"
)

// activityService is the directory surface the HTTP layer depends on.
type activityService interface {
	ListActivities(ctx context.Context) models.Catalog
	GetActivity(ctx context.Context, name string) (models.Activity, error)
	Signup(ctx context.Context, activity, email string) (string, error)
	Unregister(ctx context.Context, activity, email string) (string, error)
}

// HealthCheck is a named dependency probe run by the readiness endpoint.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Server struct {
	echo      *echo.Echo
	config    config.ServerConfig
	service   activityService
	logger    logger.Logger
	obs       *observability.Observability
	checks    []HealthCheck
	startTime time.Time
}

func NewServer(cfg config.ServerConfig, service activityService, log logger.Logger, obs *observability.Observability, checks ...HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = apperrors.NewErrorHandler(log).HandleHTTPError

	e.Server.ReadTimeout = config.GetDuration(cfg.ReadTimeout)
	e.Server.WriteTimeout = config.GetDuration(cfg.WriteTimeout)

	srv := &Server{
		echo:      e,
		config:    cfg,
		service:   service,
		logger:    log.With(map[string]interface{}{"component": "http"}),
		obs:       obs,
		checks:    checks,
		startTime: time.Now(),
	}

	srv.registerMiddleware()
	srv.registerRoutes()

	return srv
}

// Handler exposes the router, mainly for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", map[string]interface{}{
		"address": s.config.Address,
	})
	if err := s.echo.Start(s.config.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server", nil)
	return s.echo.Shutdown(ctx)
}
