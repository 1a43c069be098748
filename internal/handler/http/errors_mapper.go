// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-brainstorm/internal/service"
	"github.com/MKhiriev/go-brainstorm/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,
	service.ErrEncryption:              http.StatusInternalServerError,
	service.ErrAINotConfigured:         http.StatusServiceUnavailable,
	service.ErrAIUnavailable:           http.StatusBadGateway,
	service.ErrAIProvider:              http.StatusBadGateway,
	service.ErrAIEmptyResponse:         http.StatusBadGateway,

	store.ErrEmailAlreadyExists:   http.StatusConflict,
	store.ErrNoUserWasFound:       http.StatusNotFound,
	store.ErrConversationNotFound: http.StatusNotFound,
	store.ErrNoteNotFound:         http.StatusNotFound,
	store.ErrUnknownConversation:  http.StatusBadRequest,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError logs err and answers with its mapped status. Client
// errors carry the error text; server errors only the status text.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFromError(err)

	log := loggerFor(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg(msg)
		writeError(w, http.StatusText(status), status)
		return
	}

	log.Warn().Err(err).Int("status", status).Msg(msg)
	writeError(w, err.Error(), status)
}
