package server

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/metrics"
)

func (s *Server) registerMiddleware() {
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(s.metricsMiddleware())
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := map[string]interface{}{
				"method":    v.Method,
				"uri":       v.URI,
				"route":     v.RoutePath,
				"status":    v.Status,
				"latencyMs": v.Latency.Milliseconds(),
				"requestId": v.RequestID,
			}
			if v.Error != nil {
				fields["error"] = v.Error.Error()
			}
			s.logger.Info("request", fields)
			return nil
		},
	}))
	s.echo.Use(middleware.Recover())
}

// metricsMiddleware records request count and latency per route in both the
// Prometheus registry and the OpenTelemetry meter.
func (s *Server) metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)

			status := c.Response().Status
			if err != nil && !c.Response().Committed {
				status = apperrors.StatusFor(err)
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			metrics.HTTPRequestDuration.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).
				Observe(elapsed.Seconds())
			s.obs.RecordRequest(c.Request().Context(), c.Request().Method, route, status, elapsed)

			return err
		}
	}
}
