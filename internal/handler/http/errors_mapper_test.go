package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-brainstorm/internal/service"
	"github.com/MKhiriev/go-brainstorm/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("%w: title", service.ErrInvalidDataProvided), want: http.StatusBadRequest},
		{err: service.ErrWrongPassword, want: http.StatusUnauthorized},
		{err: service.ErrTokenIsExpiredOrInvalid, want: http.StatusUnauthorized},
		{err: fmt.Errorf("encrypt: %w", service.ErrEncryption), want: http.StatusInternalServerError},
		{err: service.ErrAINotConfigured, want: http.StatusServiceUnavailable},
		{err: fmt.Errorf("%w: 500", service.ErrAIUnavailable), want: http.StatusBadGateway},
		{err: fmt.Errorf("%w: 400", service.ErrAIProvider), want: http.StatusBadGateway},
		{err: store.ErrEmailAlreadyExists, want: http.StatusConflict},
		{err: store.ErrConversationNotFound, want: http.StatusNotFound},
		{err: store.ErrNoteNotFound, want: http.StatusNotFound},
		{err: store.ErrUnknownConversation, want: http.StatusBadRequest},
		{err: fmt.Errorf("%w: conn reset", store.ErrExecutingQuery), want: http.StatusInternalServerError},
		{err: errors.New("unexpected"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestWriteServiceError_HidesServerErrorText(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	writeServiceError(rec, req, fmt.Errorf("%w: password=secret", store.ErrExecutingStatement), "failed")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestWriteServiceError_ClientErrorCarriesText(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	writeServiceError(rec, req, store.ErrNoteNotFound, "failed")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), store.ErrNoteNotFound.Error())
}
