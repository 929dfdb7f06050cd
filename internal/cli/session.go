// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// session.go - Credential bootstrap for one-shot CLI commands.
//
// The bearer credential lives in process memory only, so every CLI
// invocation has to establish its own session: from TASKDECK_TOKEN, from
// TASKDECK_EMAIL/TASKDECK_PASSWORD, or by prompting when a terminal is
// attached. Nothing is ever written to disk.
package cli

import (
	"context"
	"os"

	"github.com/morganforge/taskdeck/internal/api"
	"github.com/morganforge/taskdeck/internal/auth"
	"github.com/morganforge/taskdeck/internal/config"
	"github.com/morganforge/taskdeck/internal/model"
)

// Session bundles the gateway client and credential state for one CLI
// invocation.
type Session struct {
	Client *api.Client
	Store  *auth.Store
	Flow   *auth.Flow
}

// NewSession builds the gateway client from config and global flags.
func NewSession(cfg *config.Config, args Args) *Session {
	baseURL := cfg.Server.BaseURL
	if args.Server != "" {
		baseURL = args.Server
	}

	store := auth.NewStore()
	client := api.NewClient(baseURL).
		WithTimeout(cfg.Server.Timeout()).
		WithTokenSource(store)
	flow := auth.NewFlow(client, store)

	return &Session{
		Client: client,
		Store:  store,
		Flow:   flow,
	}
}

// EnsureAuthenticated establishes a credential for this invocation.
//
// Resolution order:
//  1. TASKDECK_TOKEN: adopted as-is; the server remains the authority on
//     whether it is still valid.
//  2. TASKDECK_EMAIL + TASKDECK_PASSWORD: exchanged via login.
//  3. Interactive prompt, when stdin is a terminal.
func (s *Session) EnsureAuthenticated(ctx context.Context) error {
	if s.Store.IsAuthenticated() {
		return nil
	}

	if token := os.Getenv("TASKDECK_TOKEN"); token != "" {
		s.Store.SetCredential(token, model.UserProfile{})
		return nil
	}

	creds, err := resolveCredentials()
	if err != nil {
		return err
	}

	_, err = s.Flow.Login(ctx, creds)
	return err
}

// resolveCredentials collects email and password from the environment,
// falling back to interactive prompts.
func resolveCredentials() (model.Credentials, error) {
	creds := model.Credentials{
		Email:    os.Getenv("TASKDECK_EMAIL"),
		Password: os.Getenv("TASKDECK_PASSWORD"),
	}

	if creds.Email != "" && creds.Password != "" {
		return creds, nil
	}

	if err := RequiresTTY("log in"); err != nil {
		return model.Credentials{}, err
	}

	var err error
	if creds.Email == "" {
		creds.Email, err = PromptLine("Email")
		if err != nil {
			return model.Credentials{}, err
		}
	}
	if creds.Password == "" {
		creds.Password, err = PromptPassword("Password")
		if err != nil {
			return model.Credentials{}, err
		}
	}

	return creds, nil
}
