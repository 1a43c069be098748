// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-brainstorm/internal/crypto"
	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/internal/store"
	"github.com/MKhiriev/go-brainstorm/models"
)

type noteService struct {
	repository    store.NoteRepository
	conversations store.ConversationRepository
	codec         crypto.Codec
	ids           idGenerator

	logger *logger.Logger
}

// NewNoteService returns a NoteService. conversations resolves the
// conversation a note is linked to, always within the note owner's records.
func NewNoteService(repository store.NoteRepository, conversations store.ConversationRepository, codec crypto.Codec, ids idGenerator, logger *logger.Logger) NoteService {
	return &noteService{
		repository:    repository,
		conversations: conversations,
		codec:         codec,
		ids:           ids,
		logger:        logger,
	}
}

// CreateNote encrypts content and action items independently and stores the
// note. note.UserID must be set by the caller.
//
// Returns:
//   - store.ErrUnknownConversation if note.ConversationID is set but is not
//     a conversation of note.UserID.
//   - ErrEncryption if a field cannot be encrypted.
//   - A wrapped storage error if the lookup or the insert fails.
func (s *noteService) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	if err := s.checkConversation(ctx, note.UserID, note.ConversationID); err != nil {
		return models.Note{}, err
	}

	ciphered := models.CipheredNote{
		ID:             s.ids.Generate(),
		UserID:         note.UserID,
		ConversationID: note.ConversationID,
	}

	var err error
	if ciphered.Content, err = encryptField(s.codec, note.Content); err != nil {
		log.Err(err).Str("field", "content").Msg("note encryption failed")
		return models.Note{}, err
	}
	if ciphered.ActionItems, err = encryptField(s.codec, note.ActionItems); err != nil {
		log.Err(err).Str("field", "action_items").Msg("note encryption failed")
		return models.Note{}, err
	}

	saved, err := s.repository.CreateNote(ctx, ciphered)
	if err != nil {
		return models.Note{}, fmt.Errorf("note saving failed: %w", err)
	}

	note.ID = saved.ID
	note.CreatedAt = saved.CreatedAt
	return note, nil
}

func (s *noteService) checkConversation(ctx context.Context, userID int64, id string) error {
	if id == "" {
		return nil
	}

	_, err := s.conversations.GetConversation(ctx, userID, id)
	if errors.Is(err, store.ErrConversationNotFound) {
		logger.FromContext(ctx).Warn().
			Int64("user_id", userID).
			Str("conversation_id", id).
			Msg("note refers to a conversation the user does not own")
		return store.ErrUnknownConversation
	}
	if err != nil {
		return fmt.Errorf("conversation lookup failed: %w", err)
	}
	return nil
}

func (s *noteService) ListNotes(ctx context.Context, userID int64) ([]models.Note, error) {
	found, err := s.repository.ListNotes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("note listing failed: %w", err)
	}

	notes := make([]models.Note, 0, len(found))
	for _, n := range found {
		notes = append(notes, s.decryptNote(ctx, n))
	}

	return notes, nil
}

func (s *noteService) GetNote(ctx context.Context, userID int64, id string) (models.Note, error) {
	found, err := s.repository.GetNote(ctx, userID, id)
	if err != nil {
		return models.Note{}, fmt.Errorf("note lookup failed: %w", err)
	}

	return s.decryptNote(ctx, found), nil
}

func (s *noteService) DeleteNote(ctx context.Context, userID int64, id string) error {
	if err := s.repository.DeleteNote(ctx, userID, id); err != nil {
		return fmt.Errorf("note deletion failed: %w", err)
	}

	return nil
}

func (s *noteService) decryptNote(ctx context.Context, n models.CipheredNote) models.Note {
	return models.Note{
		ID:             n.ID,
		UserID:         n.UserID,
		ConversationID: n.ConversationID,
		Content:        decryptField(ctx, s.codec, n.Content, "content", n.ID),
		ActionItems:    decryptField(ctx, s.codec, n.ActionItems, "action_items", n.ID),
		CreatedAt:      n.CreatedAt,
	}
}
