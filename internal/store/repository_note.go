// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/models"
	"github.com/jackc/pgerrcode"
)

type noteRepository struct {
	*DB
	logger *logger.Logger
}

func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateNote inserts n. A conversation id that does not exist yields
// [ErrUnknownConversation].
func (r *noteRepository) CreateNote(ctx context.Context, n models.CipheredNote) (models.CipheredNote, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertNoteQuery(n)
	if err != nil {
		return models.CipheredNote{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func() error {
		return r.QueryRowContext(ctx, query, args...).Scan(&n.CreatedAt)
	})
	if err != nil {
		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation, pgerrcode.InvalidTextRepresentation:
			return models.CipheredNote{}, ErrUnknownConversation
		}
		log.Err(err).
			Str("func", "noteRepository.CreateNote").
			Int64("user_id", n.UserID).
			Msg("failed to insert note")
		return models.CipheredNote{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return n, nil
}

func (r *noteRepository) ListNotes(ctx context.Context, userID int64) ([]models.CipheredNote, error) {
	return r.selectNotes(ctx, userID, "")
}

func (r *noteRepository) GetNote(ctx context.Context, userID int64, id string) (models.CipheredNote, error) {
	found, err := r.selectNotes(ctx, userID, id)
	if err != nil {
		return models.CipheredNote{}, err
	}
	if len(found) == 0 {
		return models.CipheredNote{}, ErrNoteNotFound
	}

	return found[0], nil
}

func (r *noteRepository) DeleteNote(ctx context.Context, userID int64, id string) error {
	query, args, err := buildDeleteQuery(models.CipheredNote{}.TableName(), userID, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "noteRepository.DeleteNote", query, args, ErrNoteNotFound)
}

func (r *noteRepository) selectNotes(ctx context.Context, userID int64, id string) ([]models.CipheredNote, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectNotesQuery(userID, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		if id != "" && postgresError(err) == pgerrcode.InvalidTextRepresentation {
			return nil, nil
		}
		log.Err(err).
			Str("func", "noteRepository.selectNotes").
			Int64("user_id", userID).
			Msg("failed to select notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.CipheredNote, 0, 16)
	for rows.Next() {
		var (
			n              models.CipheredNote
			conversationID sql.NullString
		)
		if err := rows.Scan(&n.ID, &n.UserID, &conversationID, &n.Content, &n.ActionItems, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		n.ConversationID = conversationID.String
		notes = append(notes, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}
