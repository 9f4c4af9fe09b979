package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrTransport        = errors.New("api transport failure")
	ErrUnauthorized     = errors.New("api session unauthorized")
	ErrBadRequest       = errors.New("api rejected the request")
	ErrForbidden        = errors.New("api access forbidden")
	ErrNotFound         = errors.New("api resource not found")
	ErrConflict         = errors.New("api resource conflict")
	ErrServer           = errors.New("api server error")
	ErrUnexpectedStatus = errors.New("api unexpected status")
	ErrRejected         = errors.New("api reported failure")
	ErrDecode           = errors.New("api response malformed")
)

// Error describes a non-2xx answer, or a 2xx envelope with success=false.
type Error struct {
	Status  int
	Message string
	Method  string
	Path    string
	kind    error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d", e.Method, e.Path, e.Status)
}

func (e *Error) Unwrap() error { return e.kind }

// PublicMessage is the API's own message, safe to show operators.
func (e *Error) PublicMessage() string { return e.Message }

func kindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ErrBadRequest
	case status >= 500:
		return ErrServer
	default:
		return ErrUnexpectedStatus
	}
}

func newStatusError(method, path string, status int, body []byte) *Error {
	return &Error{
		Status:  status,
		Message: messageFromBody(body),
		Method:  method,
		Path:    path,
		kind:    kindForStatus(status),
	}
}

// messageFromBody extracts {"message": "..."} from an error payload. Validation
// responses sometimes send message as a list.
func messageFromBody(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload.Message, &text); err == nil && strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text)
	}
	var list []string
	if err := json.Unmarshal(payload.Message, &list); err == nil && len(list) > 0 {
		return strings.Join(list, "; ")
	}
	return strings.TrimSpace(payload.Error)
}

// ServerMessage returns the API message carried by err, if any.
func ServerMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsUnauthorized reports whether err ended the session.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
