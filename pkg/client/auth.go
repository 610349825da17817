package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// BearerToken authenticates requests with an OAuth access token.
func BearerToken(token string) (Middleware, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("client: bearer token is required")
	}
	return func(_ context.Context, r *http.Request) error {
		r.Header.Set("Authorization", "Bearer "+token)
		return nil
	}, nil
}

// BasicAuth sets HTTP basic credentials, as used by Reddit's token endpoint.
func BasicAuth(username, password string) (Middleware, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("client: username is required for basic authentication")
	}
	return func(_ context.Context, r *http.Request) error {
		r.SetBasicAuth(username, password)
		return nil
	}, nil
}

// Header sets a fixed header on every request.
func Header(name, value string) (Middleware, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("client: header name is required")
	}
	canonical := http.CanonicalHeaderKey(name)
	return func(_ context.Context, r *http.Request) error {
		r.Header.Set(canonical, value)
		return nil
	}, nil
}
