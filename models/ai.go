// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Summary is the output of the summarization collaborator.
type Summary struct {
	Summary     string `json:"summary"`
	ActionItems string `json:"actionItems"`
	// NoteID is set when the summary was stored as a note.
	NoteID string `json:"noteId,omitempty"`
}

// SummarizeRequest asks the server to summarize a transcript.
type SummarizeRequest struct {
	ConversationID string `json:"conversationId,omitempty"`
	Transcript     string `json:"transcript"`
}

// ChatRequest is a plain chat completion request.
type ChatRequest struct {
	Messages []Message `json:"messages"`
}

// ChatResponse carries the assistant reply of a chat completion.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// TranscriptionResponse carries the text of a speech-to-text call.
type TranscriptionResponse struct {
	Text string `json:"text"`
}

// RealtimeToken is a short-lived credential for the realtime voice API.
type RealtimeToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Model     string    `json:"model"`
}
