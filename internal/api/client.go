// Package api implements the client for the remote story service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const maxResponseBytes = 1 * 1024 * 1024

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks JSON over HTTP to the story service.
type Client struct {
	base   string
	client HTTPClient
}

// New creates a Client for the service at baseURL.
func New(baseURL string, client HTTPClient) *Client {
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		client: client,
	}
}

// call performs one request against the service. A non-nil out receives the
// decoded JSON response body. Transport failures map to ErrTransient; error
// statuses map to the kind for their status class.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrTransient, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrTransient, err)
	}

	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// statusError maps an HTTP error status to its error kind.
func statusError(code int, body []byte) error {
	var kind error
	switch {
	case code == http.StatusUnauthorized:
		kind = ErrAuth
	case code == http.StatusForbidden:
		kind = ErrForbidden
	case code == http.StatusNotFound:
		kind = ErrNotFound
	case code < 500:
		kind = ErrValidation
	default:
		kind = ErrTransient
	}

	if msg := serverMessage(body); msg != "" {
		return fmt.Errorf("%w: status %d: %s", kind, code, msg)
	}
	return fmt.Errorf("%w: status %d", kind, code)
}

// serverMessage extracts the service's error explanation, if any.
func serverMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error.Message != "" {
		return payload.Error.Message
	}
	return payload.Message
}

func tokenQuery(token string) url.Values {
	return url.Values{"token": []string{token}}
}
