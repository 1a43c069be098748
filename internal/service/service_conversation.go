// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-brainstorm/internal/crypto"
	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/internal/store"
	"github.com/MKhiriev/go-brainstorm/models"
)

// DecryptionFailedPlaceholder replaces a stored field that cannot be
// decrypted.
const DecryptionFailedPlaceholder = "Decryption failed"

const defaultTitleLayout = "Brainstorm 2006-01-02 15:04"

type idGenerator interface {
	Generate() string
}

type conversationService struct {
	repository store.ConversationRepository
	codec      crypto.Codec
	ids        idGenerator
	now        func() time.Time

	logger *logger.Logger
}

func NewConversationService(repository store.ConversationRepository, codec crypto.Codec, ids idGenerator, logger *logger.Logger) ConversationService {
	return &conversationService{
		repository: repository,
		codec:      codec,
		ids:        ids,
		now:        time.Now,
		logger:     logger,
	}
}

// CreateConversation encrypts title, transcript and the JSON-encoded messages
// independently, each with its own IV, and stores them. An empty title is
// replaced by a dated default.
func (s *conversationService) CreateConversation(ctx context.Context, userID int64, input models.ConversationInput) (models.Conversation, error) {
	log := logger.FromContext(ctx)

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = s.now().UTC().Format(defaultTitleLayout)
	}
	messages := input.Messages
	if messages == nil {
		messages = []models.Message{}
	}

	encodedMessages, err := json.Marshal(messages)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	ciphered := models.CipheredConversation{
		ID:     s.ids.Generate(),
		UserID: userID,
	}
	if ciphered.Title, err = s.encrypt(title); err != nil {
		log.Err(err).Str("field", "title").Msg("conversation encryption failed")
		return models.Conversation{}, err
	}
	if ciphered.Transcript, err = s.encrypt(input.Transcript); err != nil {
		log.Err(err).Str("field", "transcript").Msg("conversation encryption failed")
		return models.Conversation{}, err
	}
	if ciphered.Messages, err = s.encrypt(string(encodedMessages)); err != nil {
		log.Err(err).Str("field", "messages").Msg("conversation encryption failed")
		return models.Conversation{}, err
	}

	saved, err := s.repository.CreateConversation(ctx, ciphered)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("conversation saving failed: %w", err)
	}

	log.Info().Str("conversation_id", saved.ID).Int("messages", len(messages)).Msg("conversation saved")

	return models.Conversation{
		ID:         saved.ID,
		UserID:     userID,
		Title:      title,
		Transcript: input.Transcript,
		Messages:   messages,
		CreatedAt:  saved.CreatedAt,
		UpdatedAt:  saved.UpdatedAt,
	}, nil
}

func (s *conversationService) ListConversations(ctx context.Context, userID int64) ([]models.Conversation, error) {
	found, err := s.repository.ListConversations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("conversation listing failed: %w", err)
	}

	conversations := make([]models.Conversation, 0, len(found))
	for _, c := range found {
		conversations = append(conversations, s.decryptConversation(ctx, c))
	}

	return conversations, nil
}

func (s *conversationService) GetConversation(ctx context.Context, userID int64, id string) (models.Conversation, error) {
	found, err := s.repository.GetConversation(ctx, userID, id)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("conversation lookup failed: %w", err)
	}

	return s.decryptConversation(ctx, found), nil
}

func (s *conversationService) RenameConversation(ctx context.Context, userID int64, id string, update models.ConversationTitleUpdate) error {
	title, err := s.encrypt(strings.TrimSpace(update.Title))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("field", "title").Msg("conversation encryption failed")
		return err
	}

	if err = s.repository.UpdateConversationTitle(ctx, userID, id, title); err != nil {
		return fmt.Errorf("conversation rename failed: %w", err)
	}

	return nil
}

func (s *conversationService) DeleteConversation(ctx context.Context, userID int64, id string) error {
	if err := s.repository.DeleteConversation(ctx, userID, id); err != nil {
		return fmt.Errorf("conversation deletion failed: %w", err)
	}

	return nil
}

// decryptConversation never fails; see decryptField.
func (s *conversationService) decryptConversation(ctx context.Context, c models.CipheredConversation) models.Conversation {
	conversation := models.Conversation{
		ID:         c.ID,
		UserID:     c.UserID,
		Title:      decryptField(ctx, s.codec, c.Title, "title", c.ID),
		Transcript: decryptField(ctx, s.codec, c.Transcript, "transcript", c.ID),
		Messages:   []models.Message{},
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}

	plain, err := s.codec.Decrypt(c.Messages)
	if err != nil {
		logDecryptFailure(ctx, err, "messages", c.ID)
		return conversation
	}
	if err = json.Unmarshal([]byte(plain), &conversation.Messages); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("conversation_id", c.ID).
			Msg("stored messages are not valid JSON")
		conversation.Messages = []models.Message{}
	}

	return conversation
}

func (s *conversationService) encrypt(plaintext string) (string, error) {
	return encryptField(s.codec, plaintext)
}

func encryptField(codec crypto.Codec, plaintext string) (string, error) {
	field, err := codec.Encrypt(plaintext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryption, err)
	}
	return field, nil
}

// decryptField returns the plaintext of field, or the placeholder when it
// cannot be decrypted.
func decryptField(ctx context.Context, codec crypto.Codec, field, name, recordID string) string {
	plain, err := codec.Decrypt(field)
	if err != nil {
		logDecryptFailure(ctx, err, name, recordID)
		return DecryptionFailedPlaceholder
	}
	return plain
}

func logDecryptFailure(ctx context.Context, err error, name, recordID string) {
	logger.FromContext(ctx).Err(err).
		Str("field", name).
		Str("record_id", recordID).
		Msg("field decryption failed")
}
