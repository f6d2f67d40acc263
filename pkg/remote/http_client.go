// Package remote implements the auth and booking backends over REST so the
// simulated operations can be swapped for a live service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goliatone/go-travelboard/components/auth"
	"github.com/goliatone/go-travelboard/components/catalog"
)

// ErrUnauthorized is returned for 401 responses.
var ErrUnauthorized = errors.New("remote: unauthorized")

// HTTPConfig configures the HTTP backend client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to the booking platform via REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client for a live backend.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("remote: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// LoginOperation posts credentials to /auth/login.
func (c *HTTPClient) LoginOperation() auth.Operation[auth.Credentials, auth.Profile] {
	return operation[auth.Credentials, auth.Profile]{client: c, path: "/auth/login"}
}

// SignupOperation posts the signup form to /auth/signup.
func (c *HTTPClient) SignupOperation() auth.Operation[auth.SignupRequest, auth.Profile] {
	return operation[auth.SignupRequest, auth.Profile]{client: c, path: "/auth/signup"}
}

// BookingOperation posts booking requests to /bookings.
func (c *HTTPClient) BookingOperation() auth.Operation[catalog.BookingRequest, catalog.Confirmation] {
	return operation[catalog.BookingRequest, catalog.Confirmation]{client: c, path: "/bookings"}
}

type operation[Req, Res any] struct {
	client *HTTPClient
	path   string
}

func (o operation[Req, Res]) Submit(ctx context.Context, req Req) *auth.Future[Res] {
	future, resolve := auth.NewFuture[Res]()
	go func() {
		var res Res
		err := o.client.do(ctx, http.MethodPost, o.path, req, &res)
		resolve(res, err)
	}()
	return future
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("remote: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("remote: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("remote: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("remote: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("remote: decode response: %w", err)
	}
	return nil
}
