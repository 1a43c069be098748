// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/version/", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/conversations", h.listConversations)
		r.Post("/api/conversations", h.createConversation)
		r.Get("/api/conversations/{id}", h.getConversation)
		r.Patch("/api/conversations/{id}", h.renameConversation)
		r.Delete("/api/conversations/{id}", h.deleteConversation)

		r.Get("/api/notes", h.listNotes)
		r.Post("/api/notes", h.createNote)
		r.Get("/api/notes/{id}", h.getNote)
		r.Delete("/api/notes/{id}", h.deleteNote)

		r.Post("/api/ai/summarize", h.summarize)
		r.Post("/api/ai/chat", h.chat)
		r.Post("/api/ai/transcribe", h.transcribe)
		r.Post("/api/realtime/session", h.createRealtimeSession)

		r.Post("/api/usage", h.recordUsage)
		r.Get("/api/usage", h.getUsage)
	})

	router.MethodNotAllowed(CheckHTTPMethod())

	return router
}
