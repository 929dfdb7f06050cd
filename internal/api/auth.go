// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/morganforge/taskdeck/internal/model"
)

// AuthResponse is the wire shape of a successful login or register call.
type AuthResponse struct {
	AccessToken string            `json:"access_token"`
	User        model.UserProfile `json:"user"`
}

// Login exchanges credentials for a bearer token and profile.
//
// A rejected attempt (HTTP 400 or 401) surfaces as ErrInvalidCredentials,
// distinct from network and server failures. A 2xx response without a
// token violates the backend contract and is a protocol error, not an
// invalid-credentials error.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/login", creds)
}

// Register creates an account; same contract as Login against the
// register endpoint.
func (c *Client) Register(ctx context.Context, creds model.Credentials) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/register", creds)
}

func (c *Client) authenticate(ctx context.Context, path string, creds model.Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.exec(ctx, http.MethodPost, path, creds, &resp, false); err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			switch apiErr.StatusCode {
			case http.StatusBadRequest, http.StatusUnauthorized:
				return nil, &Error{
					Kind:       apiErr.Kind,
					StatusCode: apiErr.StatusCode,
					Message:    apiErr.Message,
					Err:        ErrInvalidCredentials,
				}
			}
		}
		return nil, err
	}

	if resp.AccessToken == "" {
		return nil, &Error{Kind: KindProtocolError, Err: ErrMissingToken}
	}
	return &resp, nil
}
