// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package voice

import "errors"

var (
	// ErrConnection covers failures while a session is being set up:
	// credential acquisition, microphone capture, dialing, the connect timeout.
	ErrConnection = errors.New("voice connection failed")
	// ErrControlChannel covers failures after the session was connected.
	ErrControlChannel = errors.New("voice control channel failed")
	// ErrPersistence is returned by Save when the conversation was not stored.
	ErrPersistence = errors.New("conversation was not saved")

	ErrNothingToSave    = errors.New("conversation has no messages")
	ErrDisposed         = errors.New("voice controller is closed")
	ErrSessionBusy      = errors.New("voice session is already active")
	ErrSaveInProgress   = errors.New("save is already in progress")
	ErrConnectTimeout   = errors.New("timed out waiting for the realtime session")
	ErrTransportClosed  = errors.New("realtime transport is closed")
	ErrChannelClosed    = errors.New("realtime connection closed")
	ErrMicrophoneDenied = errors.New("microphone capture unavailable")
)
