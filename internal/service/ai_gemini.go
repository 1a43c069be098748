// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-brainstorm/internal/config"
	"github.com/MKhiriev/go-brainstorm/models"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// geminiModels is the part of *genai.Models used here.
type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient implements [Completer] with the Gemini API.
type GeminiClient struct {
	models geminiModels
	model  string
}

func NewGeminiClient(ctx context.Context, cfg config.AI) (*GeminiClient, error) {
	if cfg.GeminiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key is empty", ErrAINotConfigured)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAINotConfigured, err)
	}

	return &GeminiClient{
		models: client.Models,
		model:  orDefault(cfg.GeminiModel, defaultGeminiModel),
	}, nil
}

// Complete sends system messages as the system instruction and the rest as
// the conversation, mapping the assistant role to Gemini's "model" role.
func (c *GeminiClient) Complete(ctx context.Context, messages []models.Message, jsonMode bool) (string, error) {
	var (
		system   []string
		contents []*genai.Content
	)
	for _, m := range messages {
		switch m.Role {
		case models.RoleSystem:
			system = append(system, m.Content)
		case models.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	generateConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.3),
	}
	if len(system) > 0 {
		generateConfig.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}
	if jsonMode {
		generateConfig.ResponseMIMEType = "application/json"
	}

	resp, err := c.models.GenerateContent(ctx, c.model, contents, generateConfig)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAIUnavailable, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrAIEmptyResponse
	}

	return text, nil
}
