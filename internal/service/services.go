// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-brainstorm/internal/config"
	"github.com/MKhiriev/go-brainstorm/internal/crypto"
	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/internal/store"
	"github.com/MKhiriev/go-brainstorm/internal/utils"
)

type Services struct {
	AuthService          AuthService
	ConversationService  ConversationService
	NoteService          NoteService
	SummaryService       SummaryService
	ChatService          ChatService
	TranscriptionService TranscriptionService
	RealtimeService      RealtimeService
	UsageService         UsageService
	AppInfoService       AppInfoService
}

// NewServices wires every service. Services that take user payloads are
// wrapped with validation.
//
// The summary provider is chosen by cfg.AI.SummaryProvider. Without any AI
// key the server still starts; summaries then use the fallback text and the
// OpenAI-only endpoints answer 503.
//
// Returns:
//
//	*Services - the service registry passed to the HTTP handler
//	error     - when the app version is missing or the summary provider
//	            cannot be created
func NewServices(ctx context.Context, storages *store.Storages, cfg config.StructuredConfig, codec crypto.Codec, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	openAI := NewOpenAIClient(cfg.AI)
	summaryCompleter, err := NewSummaryCompleter(ctx, cfg.AI, openAI)
	if err != nil {
		return nil, fmt.Errorf("summary provider: %w", err)
	}
	if summaryCompleter == nil {
		logger.Warn().Msg("no summary provider configured, summaries will use the fallback text")
	}

	var chatCompleter Completer
	if openAI.configured() {
		chatCompleter = openAI
	} else {
		logger.Warn().Msg("openai api key is empty, chat, transcription and realtime sessions are disabled")
	}

	ids := utils.NewUUIDGenerator()
	notes := NewNoteService(storages.NoteRepository, storages.ConversationRepository, codec, ids, logger)

	return &Services{
		AuthService:          NewAuthValidationService().Wrap(NewAuthService(storages.UserRepository, cfg.App, logger)),
		ConversationService:  NewConversationValidationService().Wrap(NewConversationService(storages.ConversationRepository, codec, ids, logger)),
		NoteService:          NewNoteValidationService().Wrap(notes),
		SummaryService:       NewSummaryService(summaryCompleter, notes, logger),
		ChatService:          NewChatService(chatCompleter, logger),
		TranscriptionService: NewTranscriptionService(openAI, logger),
		RealtimeService:      NewRealtimeService(openAI, logger),
		UsageService:         NewUsageService(storages.UsageRepository, logger),
		AppInfoService:       appInfoService,
	}, nil
}
