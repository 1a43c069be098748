// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-brainstorm/internal/config"
	"github.com/MKhiriev/go-brainstorm/internal/utils"
	"github.com/MKhiriev/go-brainstorm/models"
	"github.com/go-resty/resty/v2"
)

const (
	defaultOpenAIBaseURL      = "https://api.openai.com/v1"
	defaultChatModel          = "gpt-4o-mini"
	defaultTranscriptionModel = "whisper-1"
	defaultRealtimeModel      = "gpt-4o-realtime-preview"
	defaultVoice              = "alloy"
	defaultAIRequestTimeout   = 60 * time.Second
)

// OpenAIClient talks to the OpenAI REST API: chat completions,
// transcriptions and realtime session credentials.
type OpenAIClient struct {
	http   *utils.HTTPClient
	apiKey string

	chatModel          string
	transcriptionModel string
	realtimeModel      string
	voice              string
}

func NewOpenAIClient(cfg config.AI) *OpenAIClient {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultAIRequestTimeout
	}

	return &OpenAIClient{
		http:               utils.NewHTTPClient(orDefault(cfg.OpenAIBaseURL, defaultOpenAIBaseURL), timeout),
		apiKey:             cfg.OpenAIKey,
		chatModel:          orDefault(cfg.ChatModel, defaultChatModel),
		transcriptionModel: orDefault(cfg.TranscriptionModel, defaultTranscriptionModel),
		realtimeModel:      orDefault(cfg.RealtimeModel, defaultRealtimeModel),
		voice:              orDefault(cfg.Voice, defaultVoice),
	}
}

type chatCompletionRequest struct {
	Model          string           `json:"model"`
	Messages       []models.Message `json:"messages"`
	Temperature    float64          `json:"temperature"`
	ResponseFormat *responseFormat  `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete implements [Completer] with the chat completions endpoint.
func (c *OpenAIClient) Complete(ctx context.Context, messages []models.Message, jsonMode bool) (string, error) {
	request := chatCompletionRequest{
		Model:       c.chatModel,
		Messages:    messages,
		Temperature: 0.3,
	}
	if jsonMode {
		request.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	var out chatCompletionResponse
	resp, err := c.request(ctx).
		SetBody(request).
		SetResult(&out).
		Post("/chat/completions")
	if err = classifyUpstream(resp, err); err != nil {
		return "", err
	}

	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", ErrAIEmptyResponse
	}

	return out.Choices[0].Message.Content, nil
}

// Transcribe sends audio to the speech-to-text endpoint as multipart form
// data.
func (c *OpenAIClient) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	var out models.TranscriptionResponse
	resp, err := c.request(ctx).
		SetFileReader("file", filename, audio).
		SetFormData(map[string]string{"model": c.transcriptionModel}).
		SetResult(&out).
		Post("/audio/transcriptions")
	if err = classifyUpstream(resp, err); err != nil {
		return "", err
	}

	return out.Text, nil
}

type realtimeSessionRequest struct {
	Model                   string                      `json:"model"`
	Voice                   string                      `json:"voice,omitempty"`
	InputAudioTranscription *realtimeTranscriptionModel `json:"input_audio_transcription,omitempty"`
}

type realtimeTranscriptionModel struct {
	Model string `json:"model"`
}

type realtimeSessionResponse struct {
	Model        string `json:"model"`
	ClientSecret struct {
		Value     string `json:"value"`
		ExpiresAt int64  `json:"expires_at"`
	} `json:"client_secret"`
}

// CreateRealtimeSession requests an ephemeral client secret for the realtime
// API. The long-lived key never leaves the server.
func (c *OpenAIClient) CreateRealtimeSession(ctx context.Context) (models.RealtimeToken, error) {
	var out realtimeSessionResponse
	resp, err := c.request(ctx).
		SetBody(realtimeSessionRequest{
			Model:                   c.realtimeModel,
			Voice:                   c.voice,
			InputAudioTranscription: &realtimeTranscriptionModel{Model: c.transcriptionModel},
		}).
		SetResult(&out).
		Post("/realtime/sessions")
	if err = classifyUpstream(resp, err); err != nil {
		return models.RealtimeToken{}, err
	}

	if out.ClientSecret.Value == "" {
		return models.RealtimeToken{}, ErrAIEmptyResponse
	}

	token := models.RealtimeToken{
		Token: out.ClientSecret.Value,
		Model: orDefault(out.Model, c.realtimeModel),
	}
	if out.ClientSecret.ExpiresAt > 0 {
		token.ExpiresAt = time.Unix(out.ClientSecret.ExpiresAt, 0).UTC()
	}

	return token, nil
}

func (c *OpenAIClient) configured() bool {
	return c != nil && c.apiKey != ""
}

func (c *OpenAIClient) request(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey)
}

// classifyUpstream maps transport failures, 5xx and 429 to ErrAIUnavailable
// and every other non-2xx status to ErrAIProvider.
func classifyUpstream(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAIUnavailable, err)
	}

	status := resp.StatusCode()
	switch {
	case status >= 200 && status < 300:
		return nil
	case status >= 500 || status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrAIUnavailable, status)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrAIProvider, status, truncate(resp.String(), 200))
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
