package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-brainstorm/internal/service"
	"github.com/MKhiriev/go-brainstorm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSummarize(t *testing.T) {
	router, m := newTestRouter(t)

	request := models.SummarizeRequest{ConversationID: conversationID, Transcript: "You: plan the launch"}
	m.summary.EXPECT().
		Summarize(gomock.Any(), testUserID, request).
		Return(models.Summary{Summary: "Launch plan", ActionItems: "- book venue", NoteID: "n1"}, nil)

	rec := do(t, router, http.MethodPost, "/api/ai/summarize", request)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[models.Summary](t, rec)
	assert.Equal(t, "Launch plan", got.Summary)
	assert.Equal(t, "- book venue", got.ActionItems)
	assert.Equal(t, "n1", got.NoteID)
}

func TestSummarize_EmptyTranscriptIsRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/ai/summarize", models.SummarizeRequest{Transcript: "  "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "reply", wantStatus: http.StatusOK},
		{name: "not configured", err: service.ErrAINotConfigured, wantStatus: http.StatusServiceUnavailable},
		{name: "provider down", err: service.ErrAIUnavailable, wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t)

			request := models.ChatRequest{Messages: []models.Message{{Role: models.RoleUser, Content: "hi"}}}
			m.chat.EXPECT().Chat(gomock.Any(), request).Return(models.ChatResponse{Reply: "hello"}, tt.err)

			rec := do(t, router, http.MethodPost, "/api/ai/chat", request)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.err == nil {
				assert.Equal(t, "hello", decodeBody[models.ChatResponse](t, rec).Reply)
			}
		})
	}
}

func TestChat_InvalidRole(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/ai/chat", `{"messages":[{"role":"robot","content":"x"}]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTranscribe(t *testing.T) {
	router, m := newTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "note.webm")
	require.NoError(t, err)
	_, err = part.Write([]byte("audio-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	m.transcription.EXPECT().
		Transcribe(gomock.Any(), "note.webm", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, r io.Reader) (models.TranscriptionResponse, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "audio-bytes", string(data))
			return models.TranscriptionResponse{Text: "hello world"}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/api/ai/transcribe", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello world", decodeBody[models.TranscriptionResponse](t, rec).Text)
}

func TestTranscribe_MissingFile(t *testing.T) {
	router, _ := newTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("model", "whisper-1"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/ai/transcribe", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), errNoAudioFile.Error())
}

func TestCreateRealtimeSession(t *testing.T) {
	router, m := newTestRouter(t)

	expires := time.Date(2026, 5, 1, 12, 1, 0, 0, time.UTC)
	m.realtime.EXPECT().
		CreateSession(gomock.Any()).
		Return(models.RealtimeToken{Token: "ek_123", ExpiresAt: expires, Model: "gpt-4o-realtime-preview"}, nil)

	rec := do(t, router, http.MethodPost, "/api/realtime/session", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[models.RealtimeToken](t, rec)
	assert.Equal(t, "ek_123", got.Token)
	assert.True(t, expires.Equal(got.ExpiresAt))
}
