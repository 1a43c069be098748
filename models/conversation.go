// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role identifies the author of a [Message].
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a voice conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is a saved voice session.
//
// Title, Transcript and Messages are plaintext in this struct. They are
// encrypted field by field before they reach the database, see
// [CipheredConversation].
type Conversation struct {
	// ID is a UUIDv7 assigned by the server on creation.
	ID string `json:"id"`

	// UserID is the owner. It is taken from the auth token, never from the body.
	UserID int64 `json:"-"`

	Title      string    `json:"title"`
	Transcript string    `json:"transcript"`
	Messages   []Message `json:"messages"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CipheredConversation is the at-rest form of a [Conversation]. Every text
// column holds an "iv_b64:ct_b64" field produced by the codec; Messages is the
// JSON-encoded message list encrypted as one field.
type CipheredConversation struct {
	ID         string
	UserID     int64
	Title      string
	Transcript string
	Messages   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the name of the database table
// associated with the Conversation model.
func (c CipheredConversation) TableName() string {
	return "conversations"
}

// ConversationInput is the payload of a create request.
type ConversationInput struct {
	Title      string    `json:"title"`
	Transcript string    `json:"transcript"`
	Messages   []Message `json:"messages"`
}

// ConversationTitleUpdate renames a conversation.
type ConversationTitleUpdate struct {
	Title string `json:"title"`
}

// CreatedResponse is returned by create endpoints.
type CreatedResponse struct {
	ID string `json:"id"`
}
