// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-brainstorm/internal/validators"
	"github.com/MKhiriev/go-brainstorm/models"
)

// Validation wrappers check payloads before the wrapped service runs.
// Validation failures wrap ErrInvalidDataProvided.

// ConversationServiceWrapper defines middleware composition for
// ConversationService, e.g. validation in front of the real service.
type ConversationServiceWrapper interface {
	Wrap(ConversationService) ConversationService
}

type NoteServiceWrapper interface {
	Wrap(NoteService) NoteService
}

type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{validator: validators.NewBrainstormValidator()}
}

func (v *AuthValidationService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	if err := v.validator.Validate(ctx, user); err != nil {
		return models.User{}, invalid(err)
	}
	return v.inner.RegisterUser(ctx, user)
}

func (v *AuthValidationService) Login(ctx context.Context, user models.User) (models.User, error) {
	if err := v.validator.Validate(ctx, user, validators.FieldEmail); err != nil {
		return models.User{}, invalid(err)
	}
	return v.inner.Login(ctx, user)
}

func (v *AuthValidationService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return v.inner.CreateToken(ctx, user)
}

func (v *AuthValidationService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return v.inner.ParseToken(ctx, tokenString)
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}

type ConversationValidationService struct {
	inner     ConversationService
	validator validators.Validator
}

func NewConversationValidationService() ConversationServiceWrapper {
	return &ConversationValidationService{validator: validators.NewBrainstormValidator()}
}

func (v *ConversationValidationService) CreateConversation(ctx context.Context, userID int64, input models.ConversationInput) (models.Conversation, error) {
	if err := v.validator.Validate(ctx, input); err != nil {
		return models.Conversation{}, invalid(err)
	}
	return v.inner.CreateConversation(ctx, userID, input)
}

func (v *ConversationValidationService) ListConversations(ctx context.Context, userID int64) ([]models.Conversation, error) {
	return v.inner.ListConversations(ctx, userID)
}

func (v *ConversationValidationService) GetConversation(ctx context.Context, userID int64, id string) (models.Conversation, error) {
	return v.inner.GetConversation(ctx, userID, id)
}

func (v *ConversationValidationService) RenameConversation(ctx context.Context, userID int64, id string, update models.ConversationTitleUpdate) error {
	if err := v.validator.Validate(ctx, update); err != nil {
		return invalid(err)
	}
	return v.inner.RenameConversation(ctx, userID, id, update)
}

func (v *ConversationValidationService) DeleteConversation(ctx context.Context, userID int64, id string) error {
	return v.inner.DeleteConversation(ctx, userID, id)
}

func (v *ConversationValidationService) Wrap(inner ConversationService) ConversationService {
	v.inner = inner
	return v
}

type NoteValidationService struct {
	inner     NoteService
	validator validators.Validator
}

func NewNoteValidationService() NoteServiceWrapper {
	return &NoteValidationService{validator: validators.NewBrainstormValidator()}
}

func (v *NoteValidationService) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	if err := v.validator.Validate(ctx, note); err != nil {
		return models.Note{}, invalid(err)
	}
	return v.inner.CreateNote(ctx, note)
}

func (v *NoteValidationService) ListNotes(ctx context.Context, userID int64) ([]models.Note, error) {
	return v.inner.ListNotes(ctx, userID)
}

func (v *NoteValidationService) GetNote(ctx context.Context, userID int64, id string) (models.Note, error) {
	return v.inner.GetNote(ctx, userID, id)
}

func (v *NoteValidationService) DeleteNote(ctx context.Context, userID int64, id string) error {
	return v.inner.DeleteNote(ctx, userID, id)
}

func (v *NoteValidationService) Wrap(inner NoteService) NoteService {
	v.inner = inner
	return v
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}
