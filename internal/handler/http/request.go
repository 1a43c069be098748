// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/internal/utils"
	"github.com/go-chi/chi/v5"
)

const (
	maxJSONBodyBytes  = 4 << 20
	maxAudioBodyBytes = 25 << 20
)

// decodeJSON reads the request body into v. It answers 400 itself and
// reports false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		loggerFor(r).Err(err).Msg("invalid JSON was passed")
		writeError(w, fmt.Sprintf("%s: %s", errInvalidJSON, err), http.StatusBadRequest)
		return false
	}
	return true
}

// requireUserID returns the user id put into the context by auth.
func requireUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, found := utils.GetUserIDFromContext(r.Context())
	if !found {
		loggerFor(r).Error().Msg(errNoUserID.Error())
		writeError(w, errNoUserID.Error(), http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

func pathID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

func writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		loggerFor(r).Err(err).Msg("response writing failed")
	}
}

func writeError(w http.ResponseWriter, msg string, status int) {
	utils.WriteError(w, msg, status)
}

func loggerFor(r *http.Request) *logger.Logger {
	return logger.FromRequest(r)
}
