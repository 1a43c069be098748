// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package voice

import (
	"context"

	"github.com/MKhiriev/go-brainstorm/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/voice_mock.go -package=mock

// TokenIssuer hands out short-lived realtime credentials.
type TokenIssuer interface {
	IssueRealtimeToken(ctx context.Context) (models.RealtimeToken, error)
}

// Dialer opens a realtime transport with a credential from [TokenIssuer].
type Dialer interface {
	Dial(ctx context.Context, token models.RealtimeToken) (Transport, error)
}

// Transport is an open realtime connection.
//
// Events yields decoded server events and is closed when the connection
// ends; Err then reports why. Send methods are safe for concurrent use and
// return [ErrTransportClosed] after Close. Close is idempotent.
type Transport interface {
	Events() <-chan Event
	SendInstructions(text string) error
	SendSessionUpdate(settings SessionSettings) error
	SendAudio(pcm []byte) error
	Err() error
	Close() error
}

// SessionSettings is the configuration sent after the session is created.
type SessionSettings struct {
	TranscriptionModel string
	Voice              string
}

// MediaSource captures microphone audio as PCM16 chunks until ctx is done.
type MediaSource interface {
	Start(ctx context.Context) (<-chan []byte, error)
}

// Playback plays assistant audio.
type Playback interface {
	Write(pcm []byte)
	Pause()
	Close() error
}

// ConversationSaver stores a finished conversation and returns its id.
type ConversationSaver interface {
	SaveConversation(ctx context.Context, input models.ConversationInput) (string, error)
}

// UsageReporter records spoken seconds for accounting.
type UsageReporter interface {
	ReportUsage(ctx context.Context, seconds int64) error
}

// Summarizer turns a transcript into a summary with action items.
type Summarizer interface {
	Summarize(ctx context.Context, conversationID, transcript string) (models.Summary, error)
}
