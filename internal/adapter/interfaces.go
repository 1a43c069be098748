// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the brainstorm server on behalf of the client.
//
// [ServerAdapter] hides the REST transport from the TUI and the voice
// controller. Error values defined in errors.go are mapped from HTTP status
// codes by mapHTTPError so callers can use [errors.Is] (for example
// [ErrUnauthorized] for 401 or [ErrServiceUnavailable] for 503).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-brainstorm/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the brainstorm server. It also
// satisfies the collaborator interfaces of the voice controller
// (TokenIssuer, ConversationSaver, UsageReporter and Summarizer).
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token or "".
	Token() string

	// Register creates an account and stores the returned session token.
	Register(ctx context.Context, user models.User) error

	// Login authenticates and stores the returned session token.
	Login(ctx context.Context, user models.User) error

	ListConversations(ctx context.Context) ([]models.Conversation, error)
	GetConversation(ctx context.Context, id string) (models.Conversation, error)
	RenameConversation(ctx context.Context, id, title string) error
	DeleteConversation(ctx context.Context, id string) error

	// SaveConversation stores a finished session and returns its id.
	SaveConversation(ctx context.Context, input models.ConversationInput) (string, error)

	ListNotes(ctx context.Context) ([]models.Note, error)

	// IssueRealtimeToken asks the server for an ephemeral realtime credential.
	IssueRealtimeToken(ctx context.Context) (models.RealtimeToken, error)

	// ReportUsage records spoken seconds.
	ReportUsage(ctx context.Context, seconds int64) error
	GetUsage(ctx context.Context) (models.UsageSummary, error)

	// Summarize asks the server for a summary with action items.
	Summarize(ctx context.Context, conversationID, transcript string) (models.Summary, error)

	// ServerVersion returns the version string reported by the server.
	ServerVersion(ctx context.Context) (string, error)
}
