// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/models"
)

// register creates an account and answers 200 with the session token in the
// Authorization header.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var user models.User
	if !decodeJSON(w, r, &user) {
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		writeServiceError(w, r, err, "user registration failed")
		return
	}

	h.issueToken(w, r, registeredUser)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if !decodeJSON(w, r, &user) {
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		writeServiceError(w, r, err, "user login failed")
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	h.issueToken(w, r, foundUser)
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, user models.User) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		writeServiceError(w, r, err, "creation of token failed")
		return
	}

	w.Header().Set("Authorization", token.Bearer())
	w.WriteHeader(http.StatusOK)
}
