// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrEncryption = errors.New("field encryption failed")

	ErrAINotConfigured   = errors.New("ai provider is not configured")
	ErrAIProvider        = errors.New("ai provider request failed")
	ErrAIUnavailable     = errors.New("ai provider is unavailable")
	ErrAIEmptyResponse   = errors.New("ai provider returned an empty response")
	ErrUnknownAIProvider = errors.New("unknown ai provider")
)
