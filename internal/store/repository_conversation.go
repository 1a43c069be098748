// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/models"
	"github.com/jackc/pgerrcode"
)

// conversationRepository is the PostgreSQL-backed [ConversationRepository].
// It only ever sees ciphered text; encryption happens in the service layer.
type conversationRepository struct {
	*DB
	logger *logger.Logger
}

func NewConversationRepository(db *DB, logger *logger.Logger) ConversationRepository {
	logger.Debug().Msg("creating conversation repository")
	return &conversationRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateConversation inserts c, retrying transient failures, and returns it
// with the timestamps assigned by the database.
func (r *conversationRepository) CreateConversation(ctx context.Context, c models.CipheredConversation) (models.CipheredConversation, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertConversationQuery(c)
	if err != nil {
		return models.CipheredConversation{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func() error {
		return r.QueryRowContext(ctx, query, args...).Scan(&c.CreatedAt, &c.UpdatedAt)
	})
	if err != nil {
		log.Err(err).
			Str("func", "conversationRepository.CreateConversation").
			Int64("user_id", c.UserID).
			Str("conversation_id", c.ID).
			Msg("failed to insert conversation")
		return models.CipheredConversation{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return c, nil
}

// ListConversations returns the user's conversations, newest first.
func (r *conversationRepository) ListConversations(ctx context.Context, userID int64) ([]models.CipheredConversation, error) {
	return r.selectConversations(ctx, userID, "")
}

// GetConversation returns [ErrConversationNotFound] for unknown ids, for
// ids owned by another user, and for ids that are not valid UUIDs.
func (r *conversationRepository) GetConversation(ctx context.Context, userID int64, id string) (models.CipheredConversation, error) {
	found, err := r.selectConversations(ctx, userID, id)
	if err != nil {
		return models.CipheredConversation{}, err
	}
	if len(found) == 0 {
		return models.CipheredConversation{}, ErrConversationNotFound
	}

	return found[0], nil
}

func (r *conversationRepository) UpdateConversationTitle(ctx context.Context, userID int64, id, title string) error {
	query, args, err := buildUpdateConversationTitleQuery(userID, id, title)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "conversationRepository.UpdateConversationTitle", query, args, ErrConversationNotFound)
}

func (r *conversationRepository) DeleteConversation(ctx context.Context, userID int64, id string) error {
	query, args, err := buildDeleteQuery(models.CipheredConversation{}.TableName(), userID, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "conversationRepository.DeleteConversation", query, args, ErrConversationNotFound)
}

func (r *conversationRepository) selectConversations(ctx context.Context, userID int64, id string) ([]models.CipheredConversation, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectConversationsQuery(userID, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		if id != "" && postgresError(err) == pgerrcode.InvalidTextRepresentation {
			return nil, nil
		}
		log.Err(err).
			Str("func", "conversationRepository.selectConversations").
			Int64("user_id", userID).
			Msg("failed to select conversations")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	conversations := make([]models.CipheredConversation, 0, 16)
	for rows.Next() {
		var c models.CipheredConversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.Transcript, &c.Messages, &c.CreatedAt, &c.UpdatedAt); err != nil {
			log.Err(err).
				Str("func", "conversationRepository.selectConversations").
				Int64("user_id", userID).
				Msg("failed to scan conversation row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		conversations = append(conversations, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return conversations, nil
}

// execAffectingOne runs a statement that targets a single owned row and maps
// "no row affected" to notFound.
func (db *DB) execAffectingOne(ctx context.Context, funcName, query string, args []any, notFound error) error {
	log := logger.FromContext(ctx)

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		if postgresError(err) == pgerrcode.InvalidTextRepresentation {
			return notFound
		}
		log.Err(err).Str("func", funcName).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return notFound
	}

	return nil
}
