// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header.
var (
	// ErrEmptyAuthorizationHeader: the request has no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader: the header is not "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken: the scheme is present but the token is blank.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	errNoUserID    = errors.New("no user ID in request context")
	errInvalidJSON = errors.New("invalid JSON was passed")
	errNoAudioFile = errors.New("multipart field `file` is required")
)
