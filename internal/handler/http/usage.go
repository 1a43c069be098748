// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-brainstorm/internal/service"
	"github.com/MKhiriev/go-brainstorm/models"
)

// recordUsage stores spoken seconds and answers with the updated totals.
func (h *Handler) recordUsage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var report models.UsageReport
	if !decodeJSON(w, r, &report) {
		return
	}
	if err := h.validator.Validate(r.Context(), report); err != nil {
		writeServiceError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err), "invalid usage report")
		return
	}

	summary, err := h.services.UsageService.RecordUsage(r.Context(), userID, report)
	if err != nil {
		writeServiceError(w, r, err, "error recording usage")
		return
	}

	writeJSON(w, r, summary, http.StatusOK)
}

func (h *Handler) getUsage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.services.UsageService.GetUsage(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "error getting usage")
		return
	}

	writeJSON(w, r, summary, http.StatusOK)
}
