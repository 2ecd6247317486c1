package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mergington-activities/web"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health", s.handleLiveness)
	s.echo.GET("/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Frontend
	s.echo.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusTemporaryRedirect, "/static/index.html")
	})
	s.echo.StaticFS("/static", echo.MustSubFS(web.StaticFiles, "static"))

	// Activities API
	s.echo.GET("/activities", s.handleListActivities)
	s.echo.GET("/activities/:activity", s.handleGetActivity)
	s.echo.POST("/activities/:activity/signup", s.handleSignup)
	s.echo.DELETE("/activities/:activity/unregister", s.handleUnregister)
}
