// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("AI provider failed")
	ErrServiceUnavailable  = errors.New("AI provider is not configured")

	ErrServerUnreachable = errors.New("server is unreachable")
	ErrNoToken           = errors.New("no bearer token in response")
)
