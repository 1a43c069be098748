// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const encryptionKeyBytes = 32

// validate rejects values that are malformed no matter which binary reads
// them. Presence of required values is checked by [StructuredConfig.ValidateServer]
// and by [GetClientConfig].
func (cfg *StructuredConfig) validate() error {
	if cfg.App.EncryptionKey != "" {
		if err := checkEncryptionKey(cfg.App.EncryptionKey); err != nil {
			return err
		}
	}

	if cfg.App.TokenDuration < 0 {
		return fmt.Errorf("%w: negative token duration", ErrInvalidAppConfigs)
	}

	if cfg.Server.RequestTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidServerConfigs)
	}

	switch strings.ToLower(cfg.AI.SummaryProvider) {
	case "", ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("%w: unknown summary provider %q", ErrInvalidAIConfigs, cfg.AI.SummaryProvider)
	}

	if cfg.Voice.ConnectTimeout < 0 {
		return fmt.Errorf("%w: negative connect timeout", ErrInvalidVoiceConfigs)
	}

	return nil
}

// ValidateServer checks the values the API server cannot start without.
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration == 0 {
		return fmt.Errorf("%w: token settings are required", ErrInvalidAppConfigs)
	}

	if err := checkEncryptionKey(cfg.App.EncryptionKey); err != nil {
		return err
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: listen address is required", ErrInvalidServerConfigs)
	}

	if strings.EqualFold(cfg.AI.SummaryProvider, ProviderGemini) && cfg.AI.GeminiKey == "" {
		return fmt.Errorf("%w: gemini provider needs an api key", ErrInvalidAIConfigs)
	}

	return nil
}

func checkEncryptionKey(key string) error {
	raw, err := hex.DecodeString(strings.TrimSpace(key))
	if err != nil {
		return fmt.Errorf("%w: encryption key is not hex", ErrInvalidAppConfigs)
	}
	if len(raw) != encryptionKeyBytes {
		return fmt.Errorf("%w: encryption key has %d bytes, want %d", ErrInvalidAppConfigs, len(raw), encryptionKeyBytes)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Voice.ConnectTimeout <= 0 {
		return ErrInvalidVoiceConfigs
	}

	return nil
}
