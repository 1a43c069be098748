package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/internal/mock"
	"github.com/MKhiriev/go-brainstorm/internal/service"
	"github.com/MKhiriev/go-brainstorm/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testToken  = "valid-token"
	testUserID = int64(42)
)

type testMocks struct {
	auth          *mock.MockAuthService
	conversations *mock.MockConversationService
	notes         *mock.MockNoteService
	summary       *mock.MockSummaryService
	chat          *mock.MockChatService
	transcription *mock.MockTranscriptionService
	realtime      *mock.MockRealtimeService
	usage         *mock.MockUsageService
	appInfo       *mock.MockAppInfoService
}

func newTestRouter(t *testing.T) (http.Handler, *testMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &testMocks{
		auth:          mock.NewMockAuthService(ctrl),
		conversations: mock.NewMockConversationService(ctrl),
		notes:         mock.NewMockNoteService(ctrl),
		summary:       mock.NewMockSummaryService(ctrl),
		chat:          mock.NewMockChatService(ctrl),
		transcription: mock.NewMockTranscriptionService(ctrl),
		realtime:      mock.NewMockRealtimeService(ctrl),
		usage:         mock.NewMockUsageService(ctrl),
		appInfo:       mock.NewMockAppInfoService(ctrl),
	}

	m.auth.EXPECT().
		ParseToken(gomock.Any(), testToken).
		Return(models.Token{UserID: testUserID}, nil).
		AnyTimes()

	services := &service.Services{
		AuthService:          m.auth,
		ConversationService:  m.conversations,
		NoteService:          m.notes,
		SummaryService:       m.summary,
		ChatService:          m.chat,
		TranscriptionService: m.transcription,
		RealtimeService:      m.realtime,
		UsageService:         m.usage,
		AppInfoService:       m.appInfo,
	}

	return NewHandler(services, logger.Nop()).Init(), m
}

// do sends an authorized request with an optional JSON body.
func do(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			encoded, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(encoded)
		}
		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
