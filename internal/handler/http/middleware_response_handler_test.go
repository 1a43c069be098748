package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseWriter(t *testing.T) {
	t.Run("defaults to 200", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder()}
		assert.Equal(t, http.StatusOK, rw.Status())
	})

	t.Run("write implies 200 and counts bytes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rec}

		_, _ = rw.Write([]byte("abc"))
		_, _ = rw.Write([]byte("de"))

		assert.Equal(t, http.StatusOK, rw.Status())
		assert.Equal(t, 5, rw.size)
		assert.Equal(t, "abcde", rec.Body.String())
	})

	t.Run("first header wins", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rec}

		rw.WriteHeader(http.StatusNotFound)
		rw.WriteHeader(http.StatusOK)

		assert.Equal(t, http.StatusNotFound, rw.Status())
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
