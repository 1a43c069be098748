// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidPassword   = errors.New("password must be at least 8 characters")
	ErrInvalidName       = errors.New("invalid name")
	ErrInvalidTitle      = errors.New("invalid title")
	ErrEmptyConversation = errors.New("conversation has neither transcript nor messages")
	ErrTranscriptTooLong = errors.New("transcript is too long")
	ErrTooManyMessages   = errors.New("too many messages")
	ErrInvalidRole       = errors.New("invalid message role")
	ErrEmptyMessage      = errors.New("message content is required")
	ErrEmptyContent      = errors.New("content is required")
	ErrInvalidSeconds    = errors.New("seconds must be positive")
	ErrEmptyTranscript   = errors.New("transcript is required")
	ErrNoMessages        = errors.New("messages list cannot be empty")
)
