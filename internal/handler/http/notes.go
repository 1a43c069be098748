// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-brainstorm/models"
)

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var note models.Note
	if !decodeJSON(w, r, &note) {
		return
	}
	note.UserID = userID

	created, err := h.services.NoteService.CreateNote(r.Context(), note)
	if err != nil {
		writeServiceError(w, r, err, "error saving note")
		return
	}

	writeJSON(w, r, models.CreatedResponse{ID: created.ID}, http.StatusCreated)
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	notes, err := h.services.NoteService.ListNotes(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "error listing notes")
		return
	}

	writeJSON(w, r, notes, http.StatusOK)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	note, err := h.services.NoteService.GetNote(r.Context(), userID, pathID(r))
	if err != nil {
		writeServiceError(w, r, err, "error getting note")
		return
	}

	writeJSON(w, r, note, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.services.NoteService.DeleteNote(r.Context(), userID, pathID(r)); err != nil {
		writeServiceError(w, r, err, "error deleting note")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
