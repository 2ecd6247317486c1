package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"mergington-activities/internal/models"
)

func (s *Server) handleListActivities(c echo.Context) error {
	return c.JSON(http.StatusOK, s.service.ListActivities(c.Request().Context()))
}

func (s *Server) handleSignup(c echo.Context) error {
	req, err := bindParticipant(c)
	if err != nil {
		return err
	}

	msg, err := s.service.Signup(c.Request().Context(), req.Activity, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.MessageResponse{Message: msg})
}

func (s *Server) handleUnregister(c echo.Context) error {
	req, err := bindParticipant(c)
	if err != nil {
		return err
	}

	msg, err := s.service.Unregister(c.Request().Context(), req.Activity, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.MessageResponse{Message: msg})
}

func (s *Server) handleGetActivity(c echo.Context) error {
	activity, err := s.service.GetActivity(c.Request().Context(), activityParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activity)
}

// activityParam returns the decoded activity path segment. Echo routes on
// the already decoded URL.Path unless the request carries a RawPath (for
// example an encoded slash), in which case the segment is still escaped.
func activityParam(c echo.Context) string {
	activity := c.Param("activity")
	if c.Request().URL.RawPath == "" {
		return activity
	}
	if unescaped, err := url.PathUnescape(activity); err == nil {
		return unescaped
	}
	return activity
}

// bindParticipant reads the activity path segment and the email query
// parameter. Echo's default binder skips query parameters on POST and
// DELETE, so the request is assembled by hand. The email is kept as sent;
// an all-whitespace value counts as missing.
func bindParticipant(c echo.Context) (models.ParticipantRequest, error) {
	email := c.QueryParam("email")
	if strings.TrimSpace(email) == "" {
		email = ""
	}

	req := models.ParticipantRequest{
		Activity: activityParam(c),
		Email:    email,
	}
	if err := c.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}
