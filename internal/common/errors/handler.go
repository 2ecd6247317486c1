// internal/common/errors/handler.go
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"mergington-activities/internal/common/metrics"
	"mergington-activities/internal/models"
)

// ErrorHandler turns handler errors into JSON responses at the HTTP boundary.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleHTTPError satisfies echo.HTTPErrorHandler.
func (h *ErrorHandler) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, code, body := h.resolve(err)
	metrics.HTTPErrors.WithLabelValues(code).Inc()
	h.logError(c, err, status, code)

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		h.logger.Error("failed to write error response", map[string]interface{}{
			"error": writeErr.Error(),
			"path":  c.Request().URL.Path,
		})
	}
}

// StatusFor returns the status an error will be rendered with.
func StatusFor(err error) int {
	var httpErr *echo.HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr.Code
	}
	return AsStandardError(err).HTTPStatus()
}

func (h *ErrorHandler) resolve(err error) (int, string, models.ErrorResponse) {
	var httpErr *echo.HTTPError
	if stderrors.As(err, &httpErr) {
		detail := http.StatusText(httpErr.Code)
		if httpErr.Message != nil {
			detail = fmt.Sprint(httpErr.Message)
		}
		return httpErr.Code, "HTTP_" + strconv.Itoa(httpErr.Code), models.ErrorResponse{Detail: detail}
	}

	stdErr := AsStandardError(err)
	return stdErr.HTTPStatus(), string(stdErr.Code), stdErr.ToResponse()
}

func (h *ErrorHandler) logError(c echo.Context, err error, status int, code string) {
	fields := map[string]interface{}{
		"errorCode": code,
		"status":    status,
		"method":    c.Request().Method,
		"path":      c.Request().URL.Path,
		"requestId": c.Response().Header().Get(echo.HeaderXRequestID),
	}

	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		fields["message"] = stdErr.Message
		if stdErr.Details != "" {
			fields["details"] = stdErr.Details
		}
	} else {
		fields["error"] = err.Error()
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields)
		return
	}
	h.logger.Info("request rejected", fields)
}
