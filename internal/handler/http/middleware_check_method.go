// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
)

// CheckHTTPMethod returns the handler registered as the router's
// MethodNotAllowed handler.
//
// Chi answers 405 when a path is known but the method is not. This handler
// answers 404 instead, so callers using an unsupported method cannot tell
// the route exists.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod())
func CheckHTTPMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := loggerFor(r)
		log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("method is not registered for path")
		w.WriteHeader(http.StatusNotFound)
	}
}
