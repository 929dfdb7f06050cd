// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth owns the session credential: the bearer token, the user
// profile, and the one-shot redirect that follows an unauthorized episode.
//
// The credential is session-scoped: it lives in process memory only and
// dies with the process. Only the auth flow and the gateway's
// unauthorized path may mutate the store.
package auth

import (
	"sync"

	"github.com/morganforge/taskdeck/internal/model"
)

// Store holds the ephemeral bearer credential and the last-known user
// profile. It is a process-wide singleton shared by every screen; all
// access goes through the mutex.
type Store struct {
	mu         sync.RWMutex
	token      string
	profile    model.UserProfile
	hasProfile bool
}

// NewStore creates an empty credential store (unauthenticated state).
func NewStore() *Store {
	return &Store{}
}

// SetCredential persists the token and profile atomically.
func (s *Store) SetCredential(token string, profile model.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.profile = profile
	s.hasProfile = true
}

// Token returns the bearer token, if present. Implements the gateway's
// TokenSource.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Profile returns the stored user profile, if present.
func (s *Store) Profile() (model.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile, s.hasProfile
}

// Clear removes both token and profile.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.profile = model.UserProfile{}
	s.hasProfile = false
}

// IsAuthenticated reports whether a token is present. This is a syntactic
// check only; the server is the sole authority on token validity.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}
