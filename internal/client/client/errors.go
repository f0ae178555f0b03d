package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openticket/openticket/internal/client/models"
)

var (
	ErrUnavailable      = errors.New("server unavailable")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// APIError is a non-2xx answer from the backend. It unwraps to the sentinel
// matching its status code, so callers can use errors.Is(err, ErrNotFound).
type APIError struct {
	StatusCode int
	Message    string
	Fields     []models.ValidationError
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Field+" ("+f.Validator+")")
		}
		msg = fmt.Sprintf("%s: invalid %s", msg, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, msg)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	}
	return ErrUnexpectedStatus
}

// UserMessage is the text shown to a person: the server's message when it
// sent one, otherwise a generic description of the status.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) > 0 {
		return "invalid " + e.Fields[0].Field
	}
	return strings.ToLower(http.StatusText(e.StatusCode))
}
