// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client so every resty method is available directly,
// and leaves room for application-specific helpers.
//
// Example usage:
//
//	client := utils.NewHTTPClient("localhost:8080", 10*time.Second)
//	resp, err := client.R().Get("/api/version")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a new HTTPClient with its own connection pool.
//
// baseURL may omit the scheme, in which case http:// is assumed; an empty
// baseURL leaves the client without one. A zero timeout leaves resty's
// default in place.
//
// Returns:
//
//	*HTTPClient - a ready-to-use HTTP client
//
// Example usage:
//
//	client := utils.NewHTTPClient("localhost:8080", 10*time.Second)
//	resp, err := client.R().
//	    SetAuthToken(token).
//	    SetResult(&conversations).
//	    Get("/api/conversations")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New()

	if baseURL != "" {
		client.SetBaseURL(NormalizeBaseURL(baseURL))
	}
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}

// NormalizeBaseURL adds http:// when addr has no scheme and strips a
// trailing slash.
//
// Example usage:
//
//	utils.NormalizeBaseURL("localhost:8080/") // "http://localhost:8080"
//	utils.NormalizeBaseURL("https://api.example.com") // unchanged
func NormalizeBaseURL(addr string) string {
	addr = strings.TrimRight(strings.TrimSpace(addr), "/")
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	return addr
}
