// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-brainstorm/internal/service"
	"github.com/MKhiriev/go-brainstorm/models"
)

func (h *Handler) summarize(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var request models.SummarizeRequest
	if !decodeJSON(w, r, &request) {
		return
	}
	if err := h.validator.Validate(r.Context(), request); err != nil {
		writeServiceError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err), "invalid summarize request")
		return
	}

	summary, err := h.services.SummaryService.Summarize(r.Context(), userID, request)
	if err != nil {
		writeServiceError(w, r, err, "error summarizing conversation")
		return
	}

	writeJSON(w, r, summary, http.StatusOK)
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var request models.ChatRequest
	if !decodeJSON(w, r, &request) {
		return
	}
	if err := h.validator.Validate(r.Context(), request); err != nil {
		writeServiceError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err), "invalid chat request")
		return
	}

	response, err := h.services.ChatService.Chat(r.Context(), request)
	if err != nil {
		writeServiceError(w, r, err, "error completing chat")
		return
	}

	writeJSON(w, r, response, http.StatusOK)
}

// transcribe accepts a multipart form with the recording in the "file"
// field.
func (h *Handler) transcribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBodyBytes)
	if err := r.ParseMultipartForm(maxAudioBodyBytes); err != nil {
		writeServiceError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err), "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, errNoAudioFile), "no audio file")
		return
	}
	defer file.Close()

	response, err := h.services.TranscriptionService.Transcribe(r.Context(), header.Filename, file)
	if err != nil {
		writeServiceError(w, r, err, "error transcribing audio")
		return
	}

	writeJSON(w, r, response, http.StatusOK)
}

func (h *Handler) createRealtimeSession(w http.ResponseWriter, r *http.Request) {
	token, err := h.services.RealtimeService.CreateSession(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "error creating realtime session")
		return
	}

	writeJSON(w, r, token, http.StatusOK)
}
