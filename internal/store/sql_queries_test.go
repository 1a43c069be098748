package store

import (
	"strings"
	"testing"

	"github.com/MKhiriev/go-brainstorm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildSelectConversationsQuery(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		query, args, err := buildSelectConversationsQuery(42, "")
		require.NoError(t, err)

		q := strings.ToLower(query)
		assert.Contains(t, q, "from conversations")
		assert.Contains(t, q, "where user_id = $1")
		assert.Contains(t, q, "order by created_at desc")
		assert.NotContains(t, q, "$2")
		assert.Equal(t, []any{int64(42)}, args)
	})

	t.Run("single", func(t *testing.T) {
		query, args, err := buildSelectConversationsQuery(42, "c-1")
		require.NoError(t, err)

		assert.Contains(t, query, "id = $2")
		assert.Equal(t, []any{int64(42), "c-1"}, args)
	})

	t.Run("all columns", func(t *testing.T) {
		query, _, err := buildSelectConversationsQuery(1, "")
		require.NoError(t, err)
		for _, col := range conversationColumns {
			assert.Contains(t, query, col)
		}
	})
}

func Test_buildUpdateConversationTitleQuery(t *testing.T) {
	query, args, err := buildUpdateConversationTitleQuery(7, "c-1", "enc-title")
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.True(t, strings.HasPrefix(q, "update conversations set title = $1"))
	assert.Contains(t, q, "updated_at = now()")
	assert.Contains(t, q, "where id = $2 and user_id = $3")
	assert.Equal(t, []any{"enc-title", "c-1", int64(7)}, args)
}

func Test_buildDeleteQuery(t *testing.T) {
	query, args, err := buildDeleteQuery("notes", 7, "n-1")
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM notes WHERE id = $1 AND user_id = $2", query)
	assert.Equal(t, []any{"n-1", int64(7)}, args)
}

func Test_buildInsertNoteQuery_NullConversation(t *testing.T) {
	_, args, err := buildInsertNoteQuery(models.CipheredNote{ID: "n-1", UserID: 7, Content: "c", ActionItems: "a"})
	require.NoError(t, err)

	require.Len(t, args, 5)
	assert.Nil(t, args[2])

	_, args, err = buildInsertNoteQuery(models.CipheredNote{ID: "n-1", UserID: 7, ConversationID: "c-1"})
	require.NoError(t, err)
	assert.Equal(t, "c-1", args[2])
}

func Test_buildInsertConversationQuery(t *testing.T) {
	query, args, err := buildInsertConversationQuery(models.CipheredConversation{
		ID: "c-1", UserID: 7, Title: "t", Transcript: "tr", Messages: "m",
	})
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO conversations")
	assert.Contains(t, query, "RETURNING created_at, updated_at")
	assert.Equal(t, []any{"c-1", int64(7), "t", "tr", "m"}, args)
}
