// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/MKhiriev/go-brainstorm/internal/voice"
	"github.com/MKhiriev/go-brainstorm/models"
)

// VoiceController is the part of [voice.Controller] the voice screen drives.
type VoiceController interface {
	Start(ctx context.Context) error
	Retry(ctx context.Context) error
	Teardown()
	Close()
	Save(ctx context.Context, title string) (*voice.SaveResult, error)
	Subscribe() <-chan voice.Session
	Snapshot() voice.Session
}

// ControllerFactory returns a fresh controller for every voice screen.
type ControllerFactory func() VoiceController

type authClient interface {
	Login(ctx context.Context, user models.User) error
	Register(ctx context.Context, user models.User) error
}
