// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-brainstorm/internal/logger"

// Storages bundles the repositories handed to the service layer.
type Storages struct {
	UserRepository         UserRepository
	ConversationRepository ConversationRepository
	NoteRepository         NoteRepository
	UsageRepository        UsageRepository
}

// NewStorages builds every repository on top of db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:         NewUserRepository(db, log),
		ConversationRepository: NewConversationRepository(db, log),
		NoteRepository:         NewNoteRepository(db, log),
		UsageRepository:        NewUsageRepository(db, log),
	}
}
