// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the request gateway for the taskdeck backend.
//
// Every outbound call goes through a single choke point that attaches the
// bearer credential, enforces the request timeout, and classifies error
// responses into the gateway taxonomy. Nothing else in the client talks
// to the network.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is the development backend address.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is the per-request timeout. There is no automatic
	// retry; failures surface to the user, who retries manually.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize caps response bodies to keep a misbehaving server
	// from exhausting memory.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

// sharedTransport pools connections across all gateway requests.
var sharedTransport = &http.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
}

// TokenSource yields the current bearer credential, if any. The gateway
// reads it before every request; it never mutates it.
type TokenSource interface {
	Token() (string, bool)
}

// UnauthorizedHandler is invoked when an authenticated request comes back
// 401, or 403 with no stored credential. The handler owns credential
// invalidation and the one-shot redirect to the login entry point; the
// gateway only reports the episode.
type UnauthorizedHandler interface {
	HandleUnauthorized()
}

// Client is the gateway to the taskdeck backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	tokens     TokenSource
	onUnauth   UnauthorizedHandler
	logger     *log.Logger
	userAgent  string
}

// NewClient creates a gateway client for the given backend base URL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Transport: sharedTransport,
			Timeout:   DefaultTimeout,
		},
		timeout:   DefaultTimeout,
		userAgent: "taskdeck/" + Version,
	}
}

// Version is the client version reported to the backend. Set at build time.
var Version = "0.1.0"

// WithTimeout sets the per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	c.httpClient.Timeout = timeout
	return c
}

// WithTokenSource sets where the gateway reads the bearer credential.
func (c *Client) WithTokenSource(ts TokenSource) *Client {
	c.tokens = ts
	return c
}

// WithUnauthorizedHandler sets the handler for unauthorized episodes.
func (c *Client) WithUnauthorizedHandler(h UnauthorizedHandler) *Client {
	c.onUnauth = h
	return c
}

// WithLogger enables request/response logging. Bodies and credentials are
// never logged.
func (c *Client) WithLogger(l *log.Logger) *Client {
	c.logger = l
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// hasToken reports whether a credential is currently stored.
func (c *Client) hasToken() bool {
	if c.tokens == nil {
		return false
	}
	_, ok := c.tokens.Token()
	return ok
}

// =============================================================================
// REQUEST EXECUTION
// =============================================================================

// do sends one request and decodes the response into out (when non-nil).
// The bearer credential is attached when present; requests without one are
// still sent, since login and register need no credential.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.exec(ctx, method, path, body, out, true)
}

// exec is the single choke point behind do. When reportUnauth is false
// the unauthorized handler is not consulted; login and register use this,
// where a 401 means bad credentials rather than an expired session.
func (c *Client) exec(ctx context.Context, method, path string, body, out any, reportUnauth bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindUnknown, Err: fmt.Errorf("marshal request: %w", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &Error{Kind: KindUnknown, Err: fmt.Errorf("create request: %w", err)}
	}
	c.setHeaders(req)

	hadToken := c.hasToken()
	c.logRequest(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)

	// Drop the credential from the request copy so it can never leak
	// through error values or logs.
	req.Header.Del("Authorization")

	if err != nil {
		apiErr := classifyTransport(err)
		c.logFailure(method, path, apiErr)
		return apiErr
	}
	defer resp.Body.Close()
	c.logResponse(resp, time.Since(start))

	respBody, err := readResponse(resp)
	if err != nil {
		return &Error{Kind: KindProtocolError, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := classifyStatus(resp.StatusCode, respBody)
		if reportUnauth {
			c.reportUnauthorized(apiErr, hadToken)
		}
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{
			Kind:       KindProtocolError,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("parse response: %w", err),
		}
	}
	return nil
}

// reportUnauthorized forwards unauthorized episodes to the handler.
// 401 always means the credential is no longer valid; 403 means the same
// only when no credential was attached in the first place. 403 with a
// credential is an access problem, not a session problem, and the
// credential is kept.
func (c *Client) reportUnauthorized(apiErr *Error, hadToken bool) {
	if c.onUnauth == nil {
		return
	}
	switch apiErr.Kind {
	case KindUnauthorized:
		c.onUnauth.HandleUnauthorized()
	case KindForbidden:
		if !hadToken {
			c.onUnauth.HandleUnauthorized()
		}
	}
}

// setHeaders sets the standard headers on an outbound request.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

// readResponse reads the body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// =============================================================================
// LOGGING
// =============================================================================

// logRequest logs method and path only; headers may carry the credential
// and bodies may carry user content, so neither is logged.
func (c *Client) logRequest(req *http.Request) {
	if c.logger == nil {
		return
	}
	c.logger.Printf("api request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs status and duration only.
func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	if c.logger == nil {
		return
	}
	c.logger.Printf("api response: %d %s (%v)", resp.StatusCode, resp.Request.URL.Path, duration)
}

func (c *Client) logFailure(method, path string, apiErr *Error) {
	if c.logger == nil {
		return
	}
	c.logger.Printf("api failure: %s %s: %s", method, path, apiErr.Kind)
}
