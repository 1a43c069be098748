// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-brainstorm/internal/config"
	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/models"
)

const chatPrompt = `You are a brainstorming partner. Build on the user's ideas,
ask short clarifying questions and keep answers brief.`

type chatService struct {
	completer Completer
	logger    *logger.Logger
}

func NewChatService(completer Completer, logger *logger.Logger) ChatService {
	return &chatService{completer: completer, logger: logger}
}

// Chat prepends the brainstorming instruction unless the caller sent its own
// system message.
func (s *chatService) Chat(ctx context.Context, request models.ChatRequest) (models.ChatResponse, error) {
	if s.completer == nil {
		return models.ChatResponse{}, ErrAINotConfigured
	}

	messages := request.Messages
	if len(messages) == 0 || messages[0].Role != models.RoleSystem {
		messages = append([]models.Message{{Role: models.RoleSystem, Content: chatPrompt}}, messages...)
	}

	reply, err := s.completer.Complete(ctx, messages, false)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int("messages", len(request.Messages)).Msg("chat completion failed")
		return models.ChatResponse{}, fmt.Errorf("chat completion failed: %w", err)
	}

	return models.ChatResponse{Reply: strings.TrimSpace(reply)}, nil
}

type transcriptionService struct {
	client *OpenAIClient
	logger *logger.Logger
}

func NewTranscriptionService(client *OpenAIClient, logger *logger.Logger) TranscriptionService {
	return &transcriptionService{client: client, logger: logger}
}

func (s *transcriptionService) Transcribe(ctx context.Context, filename string, audio io.Reader) (models.TranscriptionResponse, error) {
	if !s.client.configured() {
		return models.TranscriptionResponse{}, ErrAINotConfigured
	}
	if filename == "" {
		filename = "audio.wav"
	}

	text, err := s.client.Transcribe(ctx, filename, audio)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("filename", filename).Msg("transcription failed")
		return models.TranscriptionResponse{}, fmt.Errorf("transcription failed: %w", err)
	}

	return models.TranscriptionResponse{Text: strings.TrimSpace(text)}, nil
}

type realtimeService struct {
	client *OpenAIClient
	logger *logger.Logger
}

func NewRealtimeService(client *OpenAIClient, logger *logger.Logger) RealtimeService {
	return &realtimeService{client: client, logger: logger}
}

// CreateSession issues an ephemeral credential for one live voice session.
func (s *realtimeService) CreateSession(ctx context.Context) (models.RealtimeToken, error) {
	if !s.client.configured() {
		return models.RealtimeToken{}, ErrAINotConfigured
	}

	token, err := s.client.CreateRealtimeSession(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("realtime session creation failed")
		return models.RealtimeToken{}, fmt.Errorf("realtime session creation failed: %w", err)
	}

	return token, nil
}

// NewSummaryCompleter picks the summary provider named in cfg. It returns a
// nil Completer when the provider has no credentials, which turns every
// summary into the fallback.
func NewSummaryCompleter(ctx context.Context, cfg config.AI, openAI *OpenAIClient) (Completer, error) {
	switch cfg.SummaryProvider {
	case "", config.ProviderOpenAI:
		if !openAI.configured() {
			return nil, nil
		}
		return openAI, nil
	case config.ProviderGemini:
		gemini, err := NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return gemini, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAIProvider, cfg.SummaryProvider)
	}
}
