package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrInvalidBaseURL is returned when a base URL option is invalid.
	ErrInvalidBaseURL = errors.New("client: invalid base URL")
	// ErrNilHTTPClient indicates a nil HTTP client was provided.
	ErrNilHTTPClient = errors.New("client: http client cannot be nil")
	// ErrEmptyQuery is returned when a search is attempted with no query.
	ErrEmptyQuery = errors.New("client: empty search query")
)

// APIError is a non-200 response from the search backend.
type APIError struct {
	Status  int    `json:"error"`
	Message string `json:"message"`
	Reason  string `json:"reason"`
	Raw     []byte `json:"-"`
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{}
	if err := json.Unmarshal(body, e); err != nil || (e.Message == "" && e.Reason == "") {
		e.Message = strings.TrimSpace(string(body))
	}
	e.Status = status
	e.Raw = body
	return e
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Reason != "" {
		return fmt.Sprintf("client: %s (status %d, %s)", msg, e.Status, e.Reason)
	}
	return fmt.Sprintf("client: %s (status %d)", msg, e.Status)
}

// Temporary reports whether the request may succeed if retried.
func (e *APIError) Temporary() bool {
	if e == nil {
		return false
	}
	return e.Status == http.StatusTooManyRequests || (e.Status >= 500 && e.Status < 600)
}
