// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Domain errors. Match them with [errors.Is].
var (
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrNoUserWasFound       = errors.New("no user was found")
	ErrConversationNotFound = errors.New("conversation was not found")
	ErrNoteNotFound         = errors.New("note was not found")
	ErrUnknownConversation  = errors.New("note references an unknown conversation")
)

// Low-level failures, wrapped together with the driver error.
var (
	ErrBuildingSQLQuery   = errors.New("error building sql query")
	ErrExecutingQuery     = errors.New("error executing sql query")
	ErrExecutingStatement = errors.New("failed to execute statement")
	ErrScanningRow        = errors.New("failed to scan row")
	ErrScanningRows       = errors.New("failed to scan rows")
)
