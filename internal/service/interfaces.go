// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-brainstorm/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ConversationService stores conversations encrypted per field. Reads
// degrade per field: a field that cannot be decrypted is replaced by
// [DecryptionFailedPlaceholder] and its siblings are still returned.
type ConversationService interface {
	CreateConversation(ctx context.Context, userID int64, input models.ConversationInput) (models.Conversation, error)
	ListConversations(ctx context.Context, userID int64) ([]models.Conversation, error)
	GetConversation(ctx context.Context, userID int64, id string) (models.Conversation, error)
	RenameConversation(ctx context.Context, userID int64, id string, update models.ConversationTitleUpdate) error
	DeleteConversation(ctx context.Context, userID int64, id string) error
}

type NoteService interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	ListNotes(ctx context.Context, userID int64) ([]models.Note, error)
	GetNote(ctx context.Context, userID int64, id string) (models.Note, error)
	DeleteNote(ctx context.Context, userID int64, id string) error
}

// SummaryService never fails because of the model provider: when the
// provider is unavailable the fallback summary is returned and stored.
type SummaryService interface {
	Summarize(ctx context.Context, userID int64, request models.SummarizeRequest) (models.Summary, error)
}

type ChatService interface {
	Chat(ctx context.Context, request models.ChatRequest) (models.ChatResponse, error)
}

type TranscriptionService interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (models.TranscriptionResponse, error)
}

type RealtimeService interface {
	CreateSession(ctx context.Context) (models.RealtimeToken, error)
}

type UsageService interface {
	RecordUsage(ctx context.Context, userID int64, report models.UsageReport) (models.UsageSummary, error)
	GetUsage(ctx context.Context, userID int64) (models.UsageSummary, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// Completer sends a prompt to a language model and returns its text answer.
// With jsonMode the model is asked to answer with a JSON object.
type Completer interface {
	Complete(ctx context.Context, messages []models.Message, jsonMode bool) (string, error)
}
