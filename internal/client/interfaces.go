// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the interactive part of the client. [tui.TUI] implements it.
type UI interface {
	// LoginFlow returns nil once the user is authenticated.
	LoginFlow(ctx context.Context) error
	// MainLoop reports logout=true when the user asked to log out.
	MainLoop(ctx context.Context) (logout bool, err error)
}

type session interface {
	SetToken(token string)
	ServerVersion(ctx context.Context) (string, error)
}
