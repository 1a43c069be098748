// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package voice drives a single realtime voice conversation.
//
// A [Session] is a plain value. [Transition] is the only code that changes
// it: it takes the current session and one [Event] and returns the next
// session plus the [Effect]s to run. [Controller] owns one session, feeds it
// events from the realtime transport, timers and the user, and performs the
// effects (sending control messages, releasing media, saving).
package voice

import (
	"strings"
	"time"

	"github.com/MKhiriev/go-brainstorm/models"
)

// Session is the in-memory state of one voice conversation.
type Session struct {
	Status Status

	// Connected is true between the control channel opening and teardown.
	// Status can be idle while connected: that is the listening loop.
	Connected bool

	Messages   []models.Message
	Transcript string

	UserSeconds      float64
	AssistantSeconds float64

	// Open speaking intervals. Nil means no interval is running.
	UserSpeakingSince      *time.Time
	AssistantSpeakingSince *time.Time

	// PartialAssistant accumulates assistant transcript deltas until done.
	PartialAssistant string

	turns []userTurn

	LastError error
	Result    *SaveResult
}

// userTurn tracks one user utterance so that later transcripts of the same
// utterance replace earlier ones instead of duplicating them.
type userTurn struct {
	itemID  string
	partial string
	// message is the index in Messages, -1 until a message was appended.
	message int
}

// SaveResult is what a successful save produced.
type SaveResult struct {
	ConversationID string
	Title          string
	Transcript     string
	Messages       []models.Message
	Seconds        int64
	Summary        models.Summary
}

// TotalSeconds is the sum of user and assistant speaking time.
func (s Session) TotalSeconds() float64 {
	return s.UserSeconds + s.AssistantSeconds
}

// Live reports whether the realtime connection is up.
func (s Session) Live() bool {
	return s.Connected
}

// Clone returns a deep copy of s; the copy shares no slices with s.
func (s Session) Clone() Session {
	out := s
	out.Messages = append([]models.Message(nil), s.Messages...)
	out.turns = append([]userTurn(nil), s.turns...)
	if s.Result != nil {
		r := *s.Result
		r.Messages = append([]models.Message(nil), s.Result.Messages...)
		out.Result = &r
	}
	return out
}

// ConversationMessages returns the messages without system turns.
func (s Session) ConversationMessages() []models.Message {
	out := make([]models.Message, 0, len(s.Messages))
	for _, m := range s.Messages {
		if m.Role == models.RoleSystem {
			continue
		}
		out = append(out, m)
	}
	return out
}

// FormatTranscript renders messages as "You: ...\n\n" and "AI: ...\n\n"
// turns. System messages are left out.
func FormatTranscript(messages []models.Message) string {
	var b strings.Builder
	for _, m := range messages {
		switch m.Role {
		case models.RoleUser:
			b.WriteString("You: ")
		case models.RoleAssistant:
			b.WriteString("AI: ")
		default:
			continue
		}
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}
	return b.String()
}
