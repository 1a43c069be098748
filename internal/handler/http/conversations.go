// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-brainstorm/models"
)

func (h *Handler) createConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var input models.ConversationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	conversation, err := h.services.ConversationService.CreateConversation(r.Context(), userID, input)
	if err != nil {
		writeServiceError(w, r, err, "error saving conversation")
		return
	}

	writeJSON(w, r, models.CreatedResponse{ID: conversation.ID}, http.StatusCreated)
}

func (h *Handler) listConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	conversations, err := h.services.ConversationService.ListConversations(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "error listing conversations")
		return
	}

	writeJSON(w, r, conversations, http.StatusOK)
}

func (h *Handler) getConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	conversation, err := h.services.ConversationService.GetConversation(r.Context(), userID, pathID(r))
	if err != nil {
		writeServiceError(w, r, err, "error getting conversation")
		return
	}

	writeJSON(w, r, conversation, http.StatusOK)
}

func (h *Handler) renameConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var update models.ConversationTitleUpdate
	if !decodeJSON(w, r, &update) {
		return
	}

	if err := h.services.ConversationService.RenameConversation(r.Context(), userID, pathID(r), update); err != nil {
		writeServiceError(w, r, err, "error renaming conversation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.services.ConversationService.DeleteConversation(r.Context(), userID, pathID(r)); err != nil {
		writeServiceError(w, r, err, "error deleting conversation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
