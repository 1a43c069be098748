package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-brainstorm/internal/service"
	"github.com/MKhiriev/go-brainstorm/internal/store"
	"github.com/MKhiriev/go-brainstorm/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func postPublic(router http.Handler, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_ReturnsBearerHeader(t *testing.T) {
	router, m := newTestRouter(t)

	gomock.InOrder(
		m.auth.EXPECT().
			RegisterUser(gomock.Any(), models.User{Email: "a@b.co", Name: "Ann", Password: "password1"}).
			Return(models.User{UserID: 1, Email: "a@b.co"}, nil),
		m.auth.EXPECT().
			CreateToken(gomock.Any(), models.User{UserID: 1, Email: "a@b.co"}).
			Return(models.Token{SignedString: "jwt"}, nil),
	)

	rec := postPublic(router, "/api/auth/register", `{"email":"a@b.co","name":"Ann","password":"password1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer jwt", rec.Header().Get("Authorization"))
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: fmt.Errorf("%w: bad email", service.ErrInvalidDataProvided), wantStatus: http.StatusBadRequest},
		{name: "duplicate email", err: fmt.Errorf("wrapped: %w", store.ErrEmailAlreadyExists), wantStatus: http.StatusConflict},
		{name: "database", err: store.ErrExecutingStatement, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t)
			m.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(models.User{}, tt.err)

			rec := postPublic(router, "/api/auth/register", `{"email":"a@b.co","password":"password1"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Empty(t, rec.Header().Get("Authorization"))
			body := decodeBody[map[string]string](t, rec)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestRegister_InvalidJSON(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postPublic(router, "/api/auth/register", `{"email":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	router, m := newTestRouter(t)

	m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{UserID: 3}, nil)
	m.auth.EXPECT().CreateToken(gomock.Any(), models.User{UserID: 3}).Return(models.Token{SignedString: "t"}, nil)

	rec := postPublic(router, "/api/auth/login", `{"email":"a@b.co","password":"password1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer t", rec.Header().Get("Authorization"))
}

func TestLogin_WrongPassword(t *testing.T) {
	router, m := newTestRouter(t)

	m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{}, service.ErrWrongPassword)

	rec := postPublic(router, "/api/auth/login", `{"email":"a@b.co","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_TokenCreationFails(t *testing.T) {
	router, m := newTestRouter(t)

	m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{UserID: 3}, nil)
	m.auth.EXPECT().CreateToken(gomock.Any(), gomock.Any()).Return(models.Token{}, service.ErrTokenCreationFailed)

	rec := postPublic(router, "/api/auth/login", `{"email":"a@b.co","password":"password1"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, `{"error":"Internal Server Error"}`, rec.Body.String())
}
