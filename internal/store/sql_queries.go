// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-brainstorm/models"
)

const (
	createUser = `INSERT INTO users (email, name, password_hash)
    VALUES ($1, $2, $3)
    RETURNING user_id, email, name, password_hash, created_at;`

	findUserByEmail = `SELECT user_id, email, name, password_hash, created_at
    FROM users
    WHERE email = $1;`

	usageSummary = `SELECT
        COALESCE(SUM(minutes), 0),
        COALESCE(SUM(minutes) FILTER (WHERE created_at >= $2), 0)
    FROM usage_records
    WHERE user_id = $1;`
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	conversationColumns = []string{"id", "user_id", "title", "transcript", "messages", "created_at", "updated_at"}
	noteColumns         = []string{"id", "user_id", "conversation_id", "content", "action_items", "created_at"}
)

func buildInsertConversationQuery(c models.CipheredConversation) (string, []any, error) {
	return psql.Insert(models.CipheredConversation{}.TableName()).
		Columns("id", "user_id", "title", "transcript", "messages").
		Values(c.ID, c.UserID, c.Title, c.Transcript, c.Messages).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
}

// buildSelectConversationsQuery lists a user's conversations, newest first.
// A non-empty id narrows the result to that conversation.
func buildSelectConversationsQuery(userID int64, id string) (string, []any, error) {
	query := psql.Select(conversationColumns...).
		From(models.CipheredConversation{}.TableName()).
		Where(sq.Eq{"user_id": userID})

	if id != "" {
		query = query.Where(sq.Eq{"id": id})
	}

	return query.OrderBy("created_at DESC").ToSql()
}

func buildUpdateConversationTitleQuery(userID int64, id, title string) (string, []any, error) {
	return psql.Update(models.CipheredConversation{}.TableName()).
		Set("title", title).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
}

func buildDeleteQuery(table string, userID int64, id string) (string, []any, error) {
	return psql.Delete(table).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
}

func buildInsertNoteQuery(n models.CipheredNote) (string, []any, error) {
	var conversationID any
	if n.ConversationID != "" {
		conversationID = n.ConversationID
	}

	return psql.Insert(models.CipheredNote{}.TableName()).
		Columns("id", "user_id", "conversation_id", "content", "action_items").
		Values(n.ID, n.UserID, conversationID, n.Content, n.ActionItems).
		Suffix("RETURNING created_at").
		ToSql()
}

func buildSelectNotesQuery(userID int64, id string) (string, []any, error) {
	query := psql.Select(noteColumns...).
		From(models.CipheredNote{}.TableName()).
		Where(sq.Eq{"user_id": userID})

	if id != "" {
		query = query.Where(sq.Eq{"id": id})
	}

	return query.OrderBy("created_at DESC").ToSql()
}

func buildInsertUsageQuery(r models.UsageRecord) (string, []any, error) {
	return psql.Insert(models.UsageRecord{}.TableName()).
		Columns("user_id", "minutes").
		Values(r.UserID, r.Minutes).
		Suffix("RETURNING id, created_at").
		ToSql()
}

