// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-brainstorm/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository stores accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// ConversationRepository stores encrypted conversations. Every method is
// scoped to the owner; records of other users are reported as not found.
type ConversationRepository interface {
	CreateConversation(ctx context.Context, conversation models.CipheredConversation) (models.CipheredConversation, error)
	ListConversations(ctx context.Context, userID int64) ([]models.CipheredConversation, error)
	GetConversation(ctx context.Context, userID int64, id string) (models.CipheredConversation, error)
	UpdateConversationTitle(ctx context.Context, userID int64, id, title string) error
	DeleteConversation(ctx context.Context, userID int64, id string) error
}

// NoteRepository stores encrypted notes.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.CipheredNote) (models.CipheredNote, error)
	ListNotes(ctx context.Context, userID int64) ([]models.CipheredNote, error)
	GetNote(ctx context.Context, userID int64, id string) (models.CipheredNote, error)
	DeleteNote(ctx context.Context, userID int64, id string) error
}

// UsageRepository stores minutes spent in voice sessions.
type UsageRepository interface {
	RecordUsage(ctx context.Context, record models.UsageRecord) (models.UsageRecord, error)
	UsageSummary(ctx context.Context, userID int64, monthStart time.Time) (models.UsageSummary, error)
}
