// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-brainstorm/internal/adapter"
	"github.com/MKhiriev/go-brainstorm/internal/voice"
)

var (
	ErrUserQuit            = errors.New("user quit")
	ErrNoServer            = errors.New("no server adapter given")
	ErrNoControllerFactory = errors.New("no voice controller factory given")
)

const (
	pageMenu     = "menu"
	pageLogin    = "login"
	pageRegister = "register"
)

const serverUnavailableText = "No network or the server is unavailable"

func humanizeServerError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, adapter.ErrServerUnreachable) {
		return serverUnavailableText
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return serverUnavailableText
	}

	return err.Error()
}

// voiceErrorText is the banner text for a failed voice session.
func voiceErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, voice.ErrMicrophoneDenied):
		return "Microphone is not available. Check the capture device and try again."
	case errors.Is(err, voice.ErrConnectTimeout):
		return "Timed out connecting to the voice service."
	case errors.Is(err, voice.ErrConnection) && errors.Is(err, adapter.ErrServerUnreachable):
		return "Could not connect to the voice service: " + serverUnavailableText
	case errors.Is(err, voice.ErrConnection):
		return "Could not connect to the voice service."
	case errors.Is(err, voice.ErrControlChannel):
		return "The voice connection was interrupted."
	case errors.Is(err, voice.ErrPersistence):
		return "The conversation was not saved. Your transcript is kept, press s to try again."
	case errors.Is(err, voice.ErrNothingToSave):
		return "Nothing to save yet: say something first."
	default:
		return humanizeServerError(err)
	}
}
