// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/go-brainstorm/internal/config"
	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/internal/utils"
	"github.com/MKhiriev/go-brainstorm/models"
	"github.com/go-resty/resty/v2"
)

var errEmptyAddress = errors.New("empty address")

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter]
// for the server at cfg.HTTPAddress. The address may omit the scheme.
//
// Returns:
//
//	ServerAdapter - an adapter without a session token; Login or Register
//	                sets it
//	error         - when cfg.HTTPAddress is empty
//
// Example usage:
//
//	server, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
//	if err != nil {
//	    return err
//	}
//	if err = server.Login(ctx, models.User{Email: email, Password: pass}); err != nil {
//	    return err
//	}
//	conversations, err := server.ListConversations(ctx)
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	if strings.TrimSpace(cfg.HTTPAddress) == "" {
		return nil, fmt.Errorf("invalid adapter http address: %w", errEmptyAddress)
	}

	client := utils.NewHTTPClient(cfg.HTTPAddress, cfg.RequestTimeout)
	client.SetHeader("Accept", "application/json")

	return &httpServerAdapter{client: client, logger: logger}, nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. POST /api/auth/register answers with
// the token in the Authorization header and no body.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) error {
	return h.authenticate(ctx, "/api/auth/register", user)
}

// Login implements [ServerAdapter].
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) error {
	return h.authenticate(ctx, "/api/auth/login", user)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, user models.User) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post(path)
	if err != nil {
		return h.transportError(path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoToken, err)
	}

	h.SetToken(token)
	return nil
}

func (h *httpServerAdapter) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	var conversations []models.Conversation
	if err := h.doJSON(ctx, resty.MethodGet, "/api/conversations", nil, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (h *httpServerAdapter) GetConversation(ctx context.Context, id string) (models.Conversation, error) {
	var conversation models.Conversation
	err := h.doJSON(ctx, resty.MethodGet, "/api/conversations/"+id, nil, &conversation)
	return conversation, err
}

func (h *httpServerAdapter) RenameConversation(ctx context.Context, id, title string) error {
	return h.doJSON(ctx, resty.MethodPatch, "/api/conversations/"+id, models.ConversationTitleUpdate{Title: title}, nil)
}

func (h *httpServerAdapter) DeleteConversation(ctx context.Context, id string) error {
	return h.doJSON(ctx, resty.MethodDelete, "/api/conversations/"+id, nil, nil)
}

// SaveConversation implements [ServerAdapter] and the voice controller's
// ConversationSaver.
func (h *httpServerAdapter) SaveConversation(ctx context.Context, input models.ConversationInput) (string, error) {
	var created models.CreatedResponse
	if err := h.doJSON(ctx, resty.MethodPost, "/api/conversations", input, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (h *httpServerAdapter) ListNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if err := h.doJSON(ctx, resty.MethodGet, "/api/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// IssueRealtimeToken implements the voice controller's TokenIssuer.
func (h *httpServerAdapter) IssueRealtimeToken(ctx context.Context) (models.RealtimeToken, error) {
	var token models.RealtimeToken
	err := h.doJSON(ctx, resty.MethodPost, "/api/realtime/session", nil, &token)
	return token, err
}

// ReportUsage implements the voice controller's UsageReporter.
func (h *httpServerAdapter) ReportUsage(ctx context.Context, seconds int64) error {
	return h.doJSON(ctx, resty.MethodPost, "/api/usage", models.UsageReport{Seconds: seconds}, nil)
}

func (h *httpServerAdapter) GetUsage(ctx context.Context) (models.UsageSummary, error) {
	var summary models.UsageSummary
	err := h.doJSON(ctx, resty.MethodGet, "/api/usage", nil, &summary)
	return summary, err
}

// Summarize implements the voice controller's Summarizer.
func (h *httpServerAdapter) Summarize(ctx context.Context, conversationID, transcript string) (models.Summary, error) {
	var summary models.Summary
	request := models.SummarizeRequest{ConversationID: conversationID, Transcript: transcript}
	err := h.doJSON(ctx, resty.MethodPost, "/api/ai/summarize", request, &summary)
	return summary, err
}

func (h *httpServerAdapter) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version/")
	if err != nil {
		return "", h.transportError("/api/version/", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

// doJSON sends an authenticated request. body is encoded as JSON when not
// nil and the response is decoded into result when result is not nil.
func (h *httpServerAdapter) doJSON(ctx context.Context, method, path string, body, result any) error {
	req := h.authedRequest(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return h.transportError(path, err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func (h *httpServerAdapter) transportError(path string, err error) error {
	h.logger.Debug().Err(err).Str("path", path).Msg("request to server failed")
	return fmt.Errorf("%w: %s: %w", ErrServerUnreachable, path, err)
}
