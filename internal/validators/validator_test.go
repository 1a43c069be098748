package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-brainstorm/models"
	"github.com/stretchr/testify/assert"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

func TestValidate_User(t *testing.T) {
	v := NewBrainstormValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		user    models.User
		fields  []string
		wantErr error
	}{
		{name: "valid register", user: models.User{Email: "ann@example.com", Password: "password1", Name: "Ann"}},
		{name: "bad email", user: models.User{Email: "ann", Password: "password1"}, wantErr: ErrInvalidEmail},
		{name: "display name form", user: models.User{Email: "Ann <ann@example.com>", Password: "password1"}, wantErr: ErrInvalidEmail},
		{name: "short password", user: models.User{Email: "ann@example.com", Password: "short"}, wantErr: ErrInvalidPassword},
		{name: "long name", user: models.User{Email: "ann@example.com", Password: "password1", Name: strings.Repeat("a", MaxNameRunes+1)}, wantErr: ErrInvalidName},
		{
			name:   "login skips name",
			user:   models.User{Email: "ann@example.com", Password: "password1", Name: strings.Repeat("a", MaxNameRunes+1)},
			fields: []string{FieldEmail, FieldPassword},
		},
		{name: "unknown field", user: models.User{}, fields: []string{"nope"}, wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.user, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// Conversations
// ---------------------------------------------------------------------------

func TestValidate_Conversation(t *testing.T) {
	v := NewBrainstormValidator()
	ctx := context.Background()
	msgs := []models.Message{{Role: models.RoleUser, Content: "hello"}, {Role: models.RoleAssistant, Content: "hi there"}}

	tests := []struct {
		name    string
		input   any
		wantErr error
	}{
		{name: "valid", input: models.ConversationInput{Title: "t", Transcript: "You: hello\n\n", Messages: msgs}},
		{name: "pointer", input: &models.ConversationInput{Transcript: "You: hello\n\n"}},
		{name: "empty title allowed", input: models.ConversationInput{Messages: msgs}},
		{name: "empty", input: models.ConversationInput{Title: "t"}, wantErr: ErrEmptyConversation},
		{name: "long title", input: models.ConversationInput{Title: strings.Repeat("й", MaxTitleRunes+1), Messages: msgs}, wantErr: ErrInvalidTitle},
		{name: "bad role", input: models.ConversationInput{Messages: []models.Message{{Role: "robot", Content: "x"}}}, wantErr: ErrInvalidRole},
		{name: "blank message", input: models.ConversationInput{Messages: []models.Message{{Role: models.RoleUser, Content: "  "}}}, wantErr: ErrEmptyMessage},
		{name: "huge transcript", input: models.ConversationInput{Transcript: strings.Repeat("a", MaxTranscriptLen+1)}, wantErr: ErrTranscriptTooLong},
		{name: "rename", input: models.ConversationTitleUpdate{Title: "New"}},
		{name: "rename blank", input: &models.ConversationTitleUpdate{Title: " "}, wantErr: ErrInvalidTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// Notes, usage, AI
// ---------------------------------------------------------------------------

func TestValidate_Other(t *testing.T) {
	v := NewBrainstormValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		input   any
		wantErr error
	}{
		{name: "note", input: models.Note{Content: "summary"}},
		{name: "empty note", input: &models.Note{ActionItems: "- x"}, wantErr: ErrEmptyContent},
		{name: "usage", input: models.UsageReport{Seconds: 61}},
		{name: "zero usage", input: models.UsageReport{}, wantErr: ErrInvalidSeconds},
		{name: "negative usage", input: &models.UsageReport{Seconds: -5}, wantErr: ErrInvalidSeconds},
		{name: "summarize", input: models.SummarizeRequest{Transcript: "You: hi\n\n"}},
		{name: "summarize blank", input: models.SummarizeRequest{Transcript: "\n"}, wantErr: ErrEmptyTranscript},
		{name: "chat", input: models.ChatRequest{Messages: []models.Message{{Role: models.RoleUser, Content: "hi"}}}},
		{name: "chat empty", input: &models.ChatRequest{}, wantErr: ErrNoMessages},
		{name: "unsupported", input: 42, wantErr: ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
