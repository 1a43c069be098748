// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/internal/store"
	"github.com/MKhiriev/go-brainstorm/models"
)

// FallbackSummary is returned when no summary could be produced.
const FallbackSummary = "Summary is not available for this conversation."

const summaryPrompt = `You summarize brainstorming sessions.
Answer with a JSON object with two fields:
"summary": a short paragraph with the main ideas of the session,
"action_items": a list of concrete next steps, possibly empty.
Use the language of the transcript.`

type summaryService struct {
	completer Completer
	notes     NoteService

	logger *logger.Logger
}

// NewSummaryService returns a SummaryService. A nil completer makes every
// summary the fallback.
func NewSummaryService(completer Completer, notes NoteService, logger *logger.Logger) SummaryService {
	return &summaryService{
		completer: completer,
		notes:     notes,
		logger:    logger,
	}
}

// Summarize asks the model for a summary and stores it as a note of the
// conversation. Provider and storage failures are logged; the caller always
// gets a summary. NoteID is empty when the note could not be stored. When the
// conversation is not one of the user's, the note is stored without a link.
func (s *summaryService) Summarize(ctx context.Context, userID int64, request models.SummarizeRequest) (models.Summary, error) {
	log := logger.FromContext(ctx)

	summary := s.generate(ctx, request.Transcript)
	note := models.Note{
		UserID:         userID,
		ConversationID: request.ConversationID,
		Content:        summary.Summary,
		ActionItems:    summary.ActionItems,
	}

	stored, err := s.notes.CreateNote(ctx, note)
	if errors.Is(err, store.ErrUnknownConversation) {
		log.Warn().
			Int64("user_id", userID).
			Str("conversation_id", request.ConversationID).
			Msg("summary refers to an unknown conversation, note is not linked")
		note.ConversationID = ""
		stored, err = s.notes.CreateNote(ctx, note)
	}
	if err != nil {
		log.Err(err).Str("conversation_id", request.ConversationID).Msg("summary note was not stored")
		return summary, nil
	}

	summary.NoteID = stored.ID
	return summary, nil
}

func (s *summaryService) generate(ctx context.Context, transcript string) models.Summary {
	fallback := models.Summary{Summary: FallbackSummary}
	if s.completer == nil || strings.TrimSpace(transcript) == "" {
		return fallback
	}

	answer, err := s.completer.Complete(ctx, []models.Message{
		{Role: models.RoleSystem, Content: summaryPrompt},
		{Role: models.RoleUser, Content: transcript},
	}, true)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("summary provider failed, using fallback")
		return fallback
	}

	summary, ok := parseSummary(answer)
	if !ok {
		return fallback
	}
	return summary
}

type summaryAnswer struct {
	Summary     string          `json:"summary"`
	ActionItems json.RawMessage `json:"action_items"`
}

// parseSummary reads the model's JSON answer. Action items may come as a list
// or as a single string; a list is rendered one "- item" per line. A non-JSON
// answer is used as the summary text.
func parseSummary(answer string) (models.Summary, bool) {
	answer = stripCodeFence(answer)
	if answer == "" {
		return models.Summary{}, false
	}

	var parsed summaryAnswer
	if err := json.Unmarshal([]byte(answer), &parsed); err != nil {
		return models.Summary{Summary: answer}, true
	}

	summary := strings.TrimSpace(parsed.Summary)
	if summary == "" {
		return models.Summary{}, false
	}

	return models.Summary{
		Summary:     summary,
		ActionItems: renderActionItems(parsed.ActionItems),
	}, true
}

func renderActionItems(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		lines := make([]string, 0, len(list))
		for _, item := range list {
			if item = strings.TrimSpace(item); item != "" {
				lines = append(lines, "- "+item)
			}
		}
		return strings.Join(lines, "\n")
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}

	return ""
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
