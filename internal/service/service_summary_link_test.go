package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/internal/mock"
	"github.com/MKhiriev/go-brainstorm/internal/service"
	"github.com/MKhiriev/go-brainstorm/internal/store"
	"github.com/MKhiriev/go-brainstorm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type staticID string

func (s staticID) Generate() string { return string(s) }

type summaryDeps struct {
	svc           service.SummaryService
	completer     *mock.MockCompleter
	codec         *mock.MockCodec
	notes         *mock.MockNoteRepository
	conversations *mock.MockConversationRepository
}

func newSummaryDeps(t *testing.T) summaryDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	d := summaryDeps{
		completer:     mock.NewMockCompleter(ctrl),
		codec:         mock.NewMockCodec(ctrl),
		notes:         mock.NewMockNoteRepository(ctrl),
		conversations: mock.NewMockConversationRepository(ctrl),
	}
	notes := service.NewNoteService(d.notes, d.conversations, d.codec, staticID("note-1"), logger.Nop())
	d.svc = service.NewSummaryService(d.completer, notes, logger.Nop())

	d.completer.EXPECT().Complete(gomock.Any(), gomock.Any(), true).
		Return(`{"summary":"Trip planning.","action_items":["Book flights"]}`, nil)

	return d
}

// expectNote stores the note and reports the conversation it was linked to.
func (d summaryDeps) expectNote(linked *string) {
	d.codec.EXPECT().Encrypt(gomock.Any()).
		DoAndReturn(func(plaintext string) (string, error) { return "enc:" + plaintext, nil }).
		Times(2)
	d.notes.EXPECT().CreateNote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n models.CipheredNote) (models.CipheredNote, error) {
			*linked = n.ConversationID
			return n, nil
		})
}

func TestSummarize_LinksOwnedConversation(t *testing.T) {
	d := newSummaryDeps(t)
	d.conversations.EXPECT().GetConversation(gomock.Any(), int64(9), "conv-1").
		Return(models.CipheredConversation{ID: "conv-1", UserID: 9}, nil)
	var linked string
	d.expectNote(&linked)

	summary, err := d.svc.Summarize(context.Background(), 9, models.SummarizeRequest{
		ConversationID: "conv-1",
		Transcript:     "User: plan the trip",
	})

	require.NoError(t, err)
	assert.Equal(t, "conv-1", linked)
	assert.Equal(t, "note-1", summary.NoteID)
	assert.Equal(t, "- Book flights", summary.ActionItems)
}

func TestSummarize_ForeignConversationIsNotLinked(t *testing.T) {
	d := newSummaryDeps(t)
	d.conversations.EXPECT().GetConversation(gomock.Any(), int64(9), "conv-of-another-user").
		Return(models.CipheredConversation{}, store.ErrConversationNotFound)
	linked := "unset"
	d.expectNote(&linked)

	summary, err := d.svc.Summarize(context.Background(), 9, models.SummarizeRequest{
		ConversationID: "conv-of-another-user",
		Transcript:     "User: plan the trip",
	})

	require.NoError(t, err)
	assert.Empty(t, linked)
	assert.Equal(t, "Trip planning.", summary.Summary)
	assert.Equal(t, "note-1", summary.NoteID, "the note is still stored")
}

func TestSummarize_ConversationLookupFailure_ReturnsSummaryWithoutNote(t *testing.T) {
	d := newSummaryDeps(t)
	d.conversations.EXPECT().GetConversation(gomock.Any(), int64(9), "conv-1").
		Return(models.CipheredConversation{}, errors.New("connection reset"))

	summary, err := d.svc.Summarize(context.Background(), 9, models.SummarizeRequest{
		ConversationID: "conv-1",
		Transcript:     "User: plan the trip",
	})

	require.NoError(t, err)
	assert.Equal(t, "Trip planning.", summary.Summary)
	assert.Empty(t, summary.NoteID)
}

func TestNoteService_CreateNote_RejectsForeignConversation(t *testing.T) {
	ctrl := gomock.NewController(t)
	conversations := mock.NewMockConversationRepository(ctrl)
	svc := service.NewNoteService(mock.NewMockNoteRepository(ctrl), conversations, mock.NewMockCodec(ctrl), staticID("note-1"), logger.Nop())

	conversations.EXPECT().GetConversation(gomock.Any(), int64(2), "conv-of-user-1").
		Return(models.CipheredConversation{}, store.ErrConversationNotFound)

	_, err := svc.CreateNote(context.Background(), models.Note{
		UserID:         2,
		ConversationID: "conv-of-user-1",
		Content:        "stolen link",
	})

	assert.ErrorIs(t, err, store.ErrUnknownConversation)
}

func TestSummarize_WithoutConversationSkipsLookup(t *testing.T) {
	d := newSummaryDeps(t)
	linked := "unset"
	d.expectNote(&linked)

	_, err := d.svc.Summarize(context.Background(), 9, models.SummarizeRequest{Transcript: "User: plan the trip"})

	require.NoError(t, err)
	assert.Empty(t, linked)
}

func TestSummarize_NoteEncryptionFailure_StillReturnsSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mock.NewMockCompleter(ctrl)
	codec := mock.NewMockCodec(ctrl)
	notes := service.NewNoteService(mock.NewMockNoteRepository(ctrl), mock.NewMockConversationRepository(ctrl), codec, staticID("note-1"), logger.Nop())
	svc := service.NewSummaryService(completer, notes, logger.Nop())

	completer.EXPECT().Complete(gomock.Any(), gomock.Any(), true).Return(`{"summary":"ok"}`, nil)
	codec.EXPECT().Encrypt("ok").Return("", errors.New("bad key"))

	summary, err := svc.Summarize(context.Background(), 1, models.SummarizeRequest{Transcript: "x"})

	require.NoError(t, err)
	assert.Equal(t, "ok", summary.Summary)
	assert.Empty(t, summary.NoteID)
}

func TestConversationService_EncryptionFailure_StoresNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	codec := mock.NewMockCodec(ctrl)
	repo := mock.NewMockConversationRepository(ctrl)
	svc := service.NewConversationService(repo, codec, staticID("conv-1"), logger.Nop())

	gomock.InOrder(
		codec.EXPECT().Encrypt("Launch").Return("iv:title", nil),
		codec.EXPECT().Encrypt("You: go\n\n").Return("", errors.New("rand failed")),
	)

	_, err := svc.CreateConversation(context.Background(), 1, models.ConversationInput{
		Title:      "Launch",
		Transcript: "You: go\n\n",
	})

	require.ErrorIs(t, err, service.ErrEncryption)
}

func TestConversationService_DecryptsFieldsIndependently(t *testing.T) {
	ctrl := gomock.NewController(t)
	codec := mock.NewMockCodec(ctrl)
	repo := mock.NewMockConversationRepository(ctrl)
	svc := service.NewConversationService(repo, codec, staticID("unused"), logger.Nop())

	repo.EXPECT().ListConversations(gomock.Any(), int64(4)).Return([]models.CipheredConversation{
		{ID: "c1", UserID: 4, Title: "broken", Transcript: "t1", Messages: "m1"},
		{ID: "c2", UserID: 4, Title: "title2", Transcript: "t2", Messages: "m2"},
	}, nil)
	codec.EXPECT().Decrypt(gomock.Any()).DoAndReturn(func(field string) (string, error) {
		switch {
		case field == "broken":
			return "", errors.New("bad padding")
		case strings.HasPrefix(field, "m"):
			return `[{"role":"user","content":"hi"}]`, nil
		}
		return "plain-" + field, nil
	}).Times(6)

	found, err := svc.ListConversations(context.Background(), 4)

	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, service.DecryptionFailedPlaceholder, found[0].Title)
	assert.Equal(t, "plain-t1", found[0].Transcript)
	assert.Equal(t, []models.Message{{Role: models.RoleUser, Content: "hi"}}, found[0].Messages)
	assert.Equal(t, "plain-title2", found[1].Title)
}
