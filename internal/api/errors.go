// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// =============================================================================
// ERROR TAXONOMY
// =============================================================================

// Kind classifies a failed request. Classification happens exactly once,
// at the gateway boundary; callers may still react to specific kinds for
// finer messaging.
type Kind int

const (
	// KindUnknown is an unclassified status passed through for
	// caller-specific handling.
	KindUnknown Kind = iota

	// KindUnauthorized is HTTP 401: the credential is invalid or expired.
	KindUnauthorized

	// KindForbidden is HTTP 403: authenticated but not permitted.
	KindForbidden

	// KindNotFound is HTTP 404.
	KindNotFound

	// KindServerError is HTTP 500.
	KindServerError

	// KindNetworkError is a transport failure with no response received.
	KindNetworkError

	// KindTimeout is a request that exceeded the client timeout.
	KindTimeout

	// KindProtocolError is a 2xx response that violates the backend
	// contract, e.g. a login response without a token.
	KindProtocolError

	// KindValidation is a local form-constraint failure; it never
	// reaches the network layer.
	KindValidation

	// KindUnauthenticated is the local guard that fails fast before any
	// network call when no credential is stored.
	KindUnauthenticated
)

// String returns the kind name for logs and tests.
func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindServerError:
		return "server_error"
	case KindNetworkError:
		return "network_error"
	case KindTimeout:
		return "timeout"
	case KindProtocolError:
		return "protocol_error"
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Error variables for common gateway failures.
var (
	// ErrUnauthenticated indicates no credential is stored; the request
	// was never sent.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrInvalidCredentials indicates the login/register attempt was
	// rejected by the backend.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrMissingToken indicates an auth response without an access token.
	ErrMissingToken = errors.New("auth response missing access token")
)

// Error is a classified failure from the request gateway.
type Error struct {
	Kind       Kind
	StatusCode int    // 0 when no response was received
	Message    string // server detail when available
	Err        error  // underlying cause, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		if e.Message != "" {
			return fmt.Sprintf("api error [%s] (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
		}
		return fmt.Sprintf("api error [%s] (HTTP %d)", e.Kind, e.StatusCode)
	}
	if e.Message != "" {
		return fmt.Sprintf("api error [%s]: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("api error [%s]", e.Kind)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage returns the one user-visible notice for this failure.
// Server-provided detail wins where the taxonomy allows it.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindUnauthorized:
		return "Your session has expired. Please log in again."
	case KindForbidden:
		if e.Message != "" {
			return e.Message
		}
		return "Access denied. Please try logging in again."
	case KindNotFound:
		if e.Message != "" {
			return e.Message
		}
		return "Resource not found."
	case KindServerError:
		return "Server error. Please try again later."
	case KindTimeout:
		return "Request timeout. Please check your connection."
	case KindNetworkError:
		return "Network error. Please check your internet connection."
	case KindProtocolError:
		return "The server returned an unexpected response. Please try again."
	case KindUnauthenticated:
		return "Please log in to continue"
	default:
		if e.Message != "" {
			return e.Message
		}
		return "An unexpected error occurred. Please try again."
	}
}

// KindOf extracts the classification from any error returned by the
// gateway. Unwrapped or foreign errors report KindUnknown.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// UserMessageFor returns the user-visible notice for any error. Gateway
// errors map through UserMessage; foreign errors pass through verbatim.
func UserMessageFor(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// errorBody is the optional error payload shape: {"detail": "..."}.
type errorBody struct {
	Detail string `json:"detail"`
}

// classifyStatus maps an HTTP error response to a classified Error.
// Mutually exclusive, first match wins; statuses outside the taxonomy
// pass through as KindUnknown for caller-specific handling.
func classifyStatus(statusCode int, body []byte) *Error {
	detail := ""
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		detail = eb.Detail
	}

	kind := KindUnknown
	switch statusCode {
	case http.StatusUnauthorized:
		kind = KindUnauthorized
	case http.StatusForbidden:
		kind = KindForbidden
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusInternalServerError:
		kind = KindServerError
	}

	return &Error{
		Kind:       kind,
		StatusCode: statusCode,
		Message:    detail,
	}
}

// classifyTransport maps a transport failure (no response received) to
// either a timeout or a network error depending on the cause.
func classifyTransport(err error) *Error {
	kind := KindNetworkError
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		kind = KindTimeout
	}
	return &Error{
		Kind: kind,
		Err:  err,
	}
}
