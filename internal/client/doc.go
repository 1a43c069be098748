// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It runs the login flow and the main screen in turns: logging out drops the
// session token and returns to the login flow.
package client
