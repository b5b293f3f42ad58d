// Package api is the typed HTTP client for the Ramadhan Ceria REST backend.
//
// The backend is the source of truth for balances, completion records and
// redemption status; this client never computes authoritative totals. Every
// response is decoded against an explicit schema and schema violations
// surface as a *DecodeError instead of silently defaulted fields.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// CredentialSource supplies the bearer credential attached to every request.
// An empty string means no credential is attached.
type CredentialSource func() string

// Client talks to the REST backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	credential CredentialSource
	logger     *slog.Logger
}

// NewClient creates a client rooted at baseURL (including the /api prefix).
func NewClient(baseURL string, credential CredentialSource, logger *slog.Logger) *Client {
	if credential == nil {
		credential = func() string { return "" }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		credential: credential,
		logger:     logger,
	}
}

// SetHTTPClient overrides the underlying HTTP client, mainly for tests.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// do issues a JSON request and decodes the response body into out when out
// is non-nil. Non-2xx responses are returned as *StatusError carrying the
// server-provided error message when one is present.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred := c.credential(); cred != "" {
		req.Header.Set("Authorization", "Bearer "+cred)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(method, path, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Endpoint: path, Reason: err.Error()}
	}
	return nil
}

// statusError drains the error body looking for the conventional
// {"error": "..."} shape.
func (c *Client) statusError(method, path string, resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(raw, &payload)

	c.logger.Debug("api request failed",
		"method", method, "path", path, "status", resp.StatusCode)

	return &StatusError{Status: resp.StatusCode, Message: payload.Error}
}
