package httputil

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPErrorInfo contains the HTTP status code and message for an error.
type HTTPErrorInfo struct {
	Status  int
	Message string
}

// ErrorMapping represents a single error to HTTP status/message mapping.
// An empty Message forwards the error's public message when it has one.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string
}

// PublicMessager is implemented by errors that carry text safe to show operators,
// such as the REST API's own "message" field.
type PublicMessager interface {
	PublicMessage() string
}

// ErrorMapper maps errors to HTTP status codes and messages for the gateway endpoints.
type ErrorMapper struct {
	mappings       []ErrorMapping
	defaultStatus  int
	defaultMessage string
}

// NewErrorMapper creates a new ErrorMapper with default settings.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		mappings:       make([]ErrorMapping, 0),
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "internal server error",
	}
}

// WithMapping adds an error mapping to the mapper.
func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{
		Error:   err,
		Status:  status,
		Message: message,
	})
	return m
}

// WithDefault sets the default status and message for unmatched errors.
func (m *ErrorMapper) WithDefault(status int, message string) *ErrorMapper {
	m.defaultStatus = status
	m.defaultMessage = message
	return m
}

// Map converts an error to HTTP status and message.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	return mapError(err, m.mappings, HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage})
}

// HTTPError converts err into an echo error ready to be returned from a handler.
func (m *ErrorMapper) HTTPError(err error) *echo.HTTPError {
	info := m.Map(err)
	return echo.NewHTTPError(info.Status, map[string]any{
		"success": false,
		"message": info.Message,
	}).SetInternal(err)
}

// QuickMap is a convenience function for quick error mapping without creating a mapper.
func QuickMap(err error, mappings ...ErrorMapping) HTTPErrorInfo {
	return mapError(err, mappings, HTTPErrorInfo{Status: http.StatusInternalServerError, Message: "internal server error"})
}

func mapError(err error, mappings []ErrorMapping, fallback HTTPErrorInfo) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK, Message: ""}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "request timeout"}
	}
	if errors.Is(err, context.Canceled) {
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: "request cancelled"}
	}

	for _, mapping := range mappings {
		if !errors.Is(err, mapping.Error) {
			continue
		}
		message := mapping.Message
		if message == "" {
			message = publicMessage(err, http.StatusText(mapping.Status))
		}
		return HTTPErrorInfo{Status: mapping.Status, Message: message}
	}

	return fallback
}

func publicMessage(err error, fallback string) string {
	var messager PublicMessager
	if errors.As(err, &messager) {
		if msg := messager.PublicMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
