// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"strings"
)

// UserProfile identifies the authenticated user.
// It travels alongside the bearer token in the credential store and is
// only ever populated from an auth response.
type UserProfile struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// Credentials is the login/register request payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MinPasswordLength is enforced locally on registration only; the server
// remains the authority for login.
const MinPasswordLength = 8

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("email address is invalid")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password is too short")
)

// Validate checks the login form constraints.
func (c *Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return ErrEmailRequired
	}
	if !looksLikeEmail(c.Email) {
		return ErrEmailInvalid
	}
	if c.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// ValidateForRegister additionally enforces the minimum password length.
func (c *Credentials) ValidateForRegister() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// looksLikeEmail is a shape check only, not RFC 5322 validation.
func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(s, " \t\n")
}
