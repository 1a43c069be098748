// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

const (
	defaultClientRequestTimeout = 30 * time.Second
	defaultConnectTimeout       = 20 * time.Second
)

// ClientAdapter holds how the client reaches the server.
type ClientAdapter struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ClientVoice holds the live session settings.
type ClientVoice struct {
	RealtimeURL        string
	ConnectTimeout     time.Duration
	Instructions       string
	TranscriptionModel string
	Voice              string
	FFmpegPath         string
	FFplayPath         string
	InputDevice        string
}

// ClientConfig is the client view of [StructuredConfig].
type ClientConfig struct {
	Version string
	Adapter ClientAdapter
	Voice   ClientVoice
}

// GetClientConfig loads the structured config and projects the client
// fields. Timeouts left unset fall back to 30 s for requests and 20 s for
// the voice connection.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		Version: cfg.App.Version,
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Voice: ClientVoice{
			RealtimeURL:        cfg.Voice.RealtimeURL,
			ConnectTimeout:     cfg.Voice.ConnectTimeout,
			Instructions:       cfg.Voice.Instructions,
			TranscriptionModel: cfg.AI.TranscriptionModel,
			Voice:              cfg.AI.Voice,
			FFmpegPath:         cfg.Voice.FFmpegPath,
			FFplayPath:         cfg.Voice.FFplayPath,
			InputDevice:        cfg.Voice.InputDevice,
		},
	}

	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = defaultClientRequestTimeout
	}
	if clientCfg.Voice.ConnectTimeout == 0 {
		clientCfg.Voice.ConnectTimeout = defaultConnectTimeout
	}

	return clientCfg
}
