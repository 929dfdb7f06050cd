// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"

	"github.com/morganforge/taskdeck/internal/api"
	"github.com/morganforge/taskdeck/internal/model"
)

// Session expiry and missing-login notices shown when the user is forced
// back to the login screen.
const (
	NoticeSessionExpired = "Your session has expired. Please log in again."
	NoticeLoginRequired  = "Please log in to continue"
)

// ExpiredFunc is invoked at most once per unauthorized episode, after the
// credential has been cleared. The notice is ready to display; the
// receiver is responsible for navigating to the login screen and calling
// ResetRedirect once it has.
type ExpiredFunc func(notice string)

// Flow drives the authentication lifecycle: login, registration, logout,
// and the forced-login path taken when the server rejects the session.
// It implements the gateway's UnauthorizedHandler.
type Flow struct {
	client    *api.Client
	store     *Store
	guard     *RedirectGuard
	onExpired ExpiredFunc
}

// NewFlow wires the flow to its client and credential store.
func NewFlow(client *api.Client, store *Store) *Flow {
	return &Flow{
		client: client,
		store:  store,
		guard:  NewRedirectGuard(),
	}
}

// SetExpiredFunc registers the callback fired when an unauthorized episode
// forces a return to the login screen. Must be set before requests are
// issued; not safe to change concurrently with them.
func (f *Flow) SetExpiredFunc(fn ExpiredFunc) {
	f.onExpired = fn
}

// Login validates the credentials locally, exchanges them with the server,
// and stores the returned token and profile. A rejected login never
// triggers the forced-login path; the caller shows the error in place.
func (f *Flow) Login(ctx context.Context, creds model.Credentials) (model.UserProfile, error) {
	if err := creds.Validate(); err != nil {
		return model.UserProfile{}, &api.Error{Kind: api.KindValidation, Message: err.Error(), Err: err}
	}
	resp, err := f.client.Login(ctx, creds)
	if err != nil {
		return model.UserProfile{}, err
	}
	f.adopt(resp)
	return resp.User, nil
}

// Register creates an account; the backend answers with an already-usable
// session for it, so no follow-up login is needed.
func (f *Flow) Register(ctx context.Context, creds model.Credentials) (model.UserProfile, error) {
	if err := creds.ValidateForRegister(); err != nil {
		return model.UserProfile{}, &api.Error{Kind: api.KindValidation, Message: err.Error(), Err: err}
	}
	resp, err := f.client.Register(ctx, creds)
	if err != nil {
		return model.UserProfile{}, err
	}
	f.adopt(resp)
	return resp.User, nil
}

// Logout discards the credential. Purely local; the backend keeps no
// session state to invalidate.
func (f *Flow) Logout() {
	f.store.Clear()
	f.guard.Reset()
}

// HandleUnauthorized is the gateway's hook for 401 responses (and 403s
// received without a token). The first caller of an episode clears the
// credential and fires the expiry callback; concurrent failures from the
// same episode are swallowed by the guard.
func (f *Flow) HandleUnauthorized() {
	if !f.guard.Begin() {
		return
	}
	hadToken := f.store.IsAuthenticated()
	f.store.Clear()
	if f.onExpired != nil {
		notice := NoticeLoginRequired
		if hadToken {
			notice = NoticeSessionExpired
		}
		f.onExpired(notice)
	}
}

// ResetRedirect reopens the guard once the login screen is showing, so a
// future session can expire and redirect again.
func (f *Flow) ResetRedirect() {
	f.guard.Reset()
}

// Store exposes the credential store for read-side consumers.
func (f *Flow) Store() *Store {
	return f.store
}

func (f *Flow) adopt(resp *api.AuthResponse) {
	f.store.SetCredential(resp.AccessToken, resp.User)
	f.guard.Reset()
}
