// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		EncryptionKey string   `json:"encryption_key"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	AI struct {
		OpenAIKey          string   `json:"openai_api_key"`
		OpenAIBaseURL      string   `json:"openai_base_url"`
		ChatModel          string   `json:"chat_model"`
		TranscriptionModel string   `json:"transcription_model"`
		RealtimeModel      string   `json:"realtime_model"`
		Voice              string   `json:"voice"`
		SummaryProvider    string   `json:"summary_provider"`
		GeminiKey          string   `json:"gemini_api_key"`
		GeminiModel        string   `json:"gemini_model"`
		RequestTimeout     Duration `json:"request_timeout"`
	} `json:"ai,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Voice struct {
		RealtimeURL    string   `json:"realtime_url"`
		ConnectTimeout Duration `json:"connect_timeout"`
		Instructions   string   `json:"instructions"`
		FFmpegPath     string   `json:"ffmpeg_path"`
		FFplayPath     string   `json:"ffplay_path"`
		InputDevice    string   `json:"input_device"`
	} `json:"voice,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  j.App.TokenSignKey,
			TokenIssuer:   j.App.TokenIssuer,
			TokenDuration: time.Duration(j.App.TokenDuration),
			EncryptionKey: j.App.EncryptionKey,
			Version:       j.App.Version,
		},
		Storage: Storage{
			DB: DB{DSN: j.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:     j.Server.HTTPAddress,
			RequestTimeout:  time.Duration(j.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(j.Server.ShutdownTimeout),
		},
		AI: AI{
			OpenAIKey:          j.AI.OpenAIKey,
			OpenAIBaseURL:      j.AI.OpenAIBaseURL,
			ChatModel:          j.AI.ChatModel,
			TranscriptionModel: j.AI.TranscriptionModel,
			RealtimeModel:      j.AI.RealtimeModel,
			Voice:              j.AI.Voice,
			SummaryProvider:    j.AI.SummaryProvider,
			GeminiKey:          j.AI.GeminiKey,
			GeminiModel:        j.AI.GeminiModel,
			RequestTimeout:     time.Duration(j.AI.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    j.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
		},
		Voice: Voice{
			RealtimeURL:    j.Voice.RealtimeURL,
			ConnectTimeout: time.Duration(j.Voice.ConnectTimeout),
			Instructions:   j.Voice.Instructions,
			FFmpegPath:     j.Voice.FFmpegPath,
			FFplayPath:     j.Voice.FFplayPath,
			InputDevice:    j.Voice.InputDevice,
		},
	}, nil
}

// Duration accepts "1h30m" style strings or integer nanoseconds in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
