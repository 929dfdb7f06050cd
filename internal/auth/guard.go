// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import "sync"

// guardState tracks whether a forced-login transition is in flight.
type guardState int32

const (
	guardIdle guardState = iota
	guardRedirecting
)

// RedirectGuard collapses a burst of unauthorized responses into a single
// forced-login transition. Several in-flight requests can fail with 401 at
// nearly the same moment; without the guard each would clear the
// credential and push the user to the login screen again.
//
// The guard is a latch: Begin wins for exactly one caller per episode, and
// the latch stays closed until Reset is called once the login screen is
// actually showing.
type RedirectGuard struct {
	mu    sync.Mutex
	state guardState
}

// NewRedirectGuard creates a guard in the idle state.
func NewRedirectGuard() *RedirectGuard {
	return &RedirectGuard{}
}

// Begin attempts the idle to redirecting transition. It returns true for
// exactly one caller per episode; every other caller gets false until
// Reset.
func (g *RedirectGuard) Begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != guardIdle {
		return false
	}
	g.state = guardRedirecting
	return true
}

// Active reports whether a redirect is currently in flight.
func (g *RedirectGuard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == guardRedirecting
}

// Reset returns the guard to idle. Called after the forced-login
// transition has completed, so a later session can expire and redirect
// again.
func (g *RedirectGuard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = guardIdle
}
