package sbbapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/travigo/sbb/pkg/util"
)

const maxErrorBodyLength = 200

type BuildError struct {
	Field  string
	Reason string
	Err    error
}

func (e *BuildError) Error() string {
	message := "build request"
	if e.Field != "" {
		message += " " + e.Field
	}
	message += ": " + e.Reason
	if e.Err != nil {
		message += ": " + e.Err.Error()
	}

	return message
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// NetworkError covers DNS, connection and TLS handshake failures, including a
// server presenting a certificate chain other than the pinned one.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// TimeoutError is returned when the deadline of the caller's context expires.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out: %s", e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

type HTTPError struct {
	StatusCode int
	Body       []byte

	// Message is the server supplied error message, or the start of the raw body
	Message string
}

func (e *HTTPError) Error() string {
	status := fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message == "" {
		return status
	}

	return status + ": " + e.Message
}

func newHTTPError(statusCode int, body []byte) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Body:       body,
		Message:    errorMessage(body),
	}
}

func errorMessage(body []byte) string {
	var payload map[string]any
	if json.Unmarshal(body, &payload) == nil {
		for _, key := range []string{"message", "error", "error_description"} {
			if value, ok := payload[key].(string); ok && value != "" {
				return value
			}
		}
	}

	return util.TrimString(strings.TrimSpace(string(body)), maxErrorBodyLength)
}
