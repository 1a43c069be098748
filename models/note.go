// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Note is a summary and its action items, optionally linked to the
// conversation it was produced from.
type Note struct {
	ID             string    `json:"id"`
	UserID         int64     `json:"-"`
	ConversationID string    `json:"conversationId,omitempty"`
	Content        string    `json:"content"`
	ActionItems    string    `json:"actionItems"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CipheredNote is the at-rest form of a [Note]; Content and ActionItems are
// encrypted independently.
type CipheredNote struct {
	ID             string
	UserID         int64
	ConversationID string
	Content        string
	ActionItems    string
	CreatedAt      time.Time
}

// TableName returns the name of the database table
// associated with the Note model.
func (n CipheredNote) TableName() string {
	return "notes"
}
