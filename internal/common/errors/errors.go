// Package errors provides the typed error taxonomy shared by the activity
// directory and the HTTP boundary.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"mergington-activities/internal/models"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeActivityNotFound    ErrorCode = "ACTIVITY_NOT_FOUND"
	ErrCodeParticipantNotFound ErrorCode = "PARTICIPANT_NOT_FOUND"
	ErrCodeAlreadyEnrolled     ErrorCode = "ALREADY_ENROLLED"
	ErrCodeCapacityExceeded    ErrorCode = "CAPACITY_EXCEEDED"
	ErrCodeInvalidRequest      ErrorCode = "INVALID_REQUEST"
	ErrCodeCatalogInvalid      ErrorCode = "CATALOG_INVALID"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
)

// Sentinels for errors.Is; matching is by code only.
var (
	ErrActivityNotFound    = &StandardError{Code: ErrCodeActivityNotFound}
	ErrParticipantNotFound = &StandardError{Code: ErrCodeParticipantNotFound}
	ErrAlreadyEnrolled     = &StandardError{Code: ErrCodeAlreadyEnrolled}
	ErrCapacityExceeded    = &StandardError{Code: ErrCodeCapacityExceeded}
	ErrInvalidRequest      = &StandardError{Code: ErrCodeInvalidRequest}
	ErrCatalogInvalid      = &StandardError{Code: ErrCodeCatalogInvalid}
)

// StandardError represents a structured application error. Message is the
// client-facing text; Details is for logs only.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	return ok && t.Code == e.Code
}

// HTTPStatus maps the error code onto a response status.
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeActivityNotFound, ErrCodeParticipantNotFound:
		return http.StatusNotFound
	case ErrCodeAlreadyEnrolled, ErrCodeCapacityExceeded:
		return http.StatusBadRequest
	case ErrCodeInvalidRequest:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ToResponse renders the client-facing body.
func (e *StandardError) ToResponse() models.ErrorResponse {
	return models.ErrorResponse{Detail: e.Message}
}

// NewActivityNotFoundError reports an unknown activity name.
func NewActivityNotFoundError(activity string) *StandardError {
	return &StandardError{
		Code:      ErrCodeActivityNotFound,
		Message:   "Activity not found",
		Details:   fmt.Sprintf("activity: %s", activity),
		Metadata:  map[string]interface{}{"activity": activity},
		Timestamp: time.Now().UTC(),
	}
}

// NewParticipantNotFoundError reports an email missing from an activity roster.
func NewParticipantNotFoundError(activity, email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeParticipantNotFound,
		Message:   "Participant not found",
		Details:   fmt.Sprintf("activity: %s, email: %s", activity, email),
		Metadata:  map[string]interface{}{"activity": activity, "email": email},
		Timestamp: time.Now().UTC(),
	}
}

func NewAlreadyEnrolledError(activity, email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAlreadyEnrolled,
		Message:   "Student is already signed up",
		Details:   fmt.Sprintf("activity: %s, email: %s", activity, email),
		Metadata:  map[string]interface{}{"activity": activity, "email": email},
		Timestamp: time.Now().UTC(),
	}
}

func NewCapacityExceededError(activity string, maxParticipants int) *StandardError {
	return &StandardError{
		Code:      ErrCodeCapacityExceeded,
		Message:   "Activity is full",
		Details:   fmt.Sprintf("activity: %s, max_participants: %d", activity, maxParticipants),
		Metadata:  map[string]interface{}{"activity": activity, "maxParticipants": maxParticipants},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError reports a request that failed an existence check.
func NewInvalidRequestError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogInvalidError reports a seed catalog that cannot be loaded.
func NewCatalogInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogInvalid,
		Message:   "Activity catalog is invalid",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal server error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// AsStandardError normalizes any error into a StandardError.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}

// IsClientError reports whether the code is caused by the caller.
func IsClientError(code ErrorCode) bool {
	switch code {
	case ErrCodeActivityNotFound,
		ErrCodeParticipantNotFound,
		ErrCodeAlreadyEnrolled,
		ErrCodeCapacityExceeded,
		ErrCodeInvalidRequest:
		return true
	default:
		return false
	}
}
