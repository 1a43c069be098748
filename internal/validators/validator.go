// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-brainstorm/models"
)

// Field names accepted by [BrainstormValidator.Validate].
const (
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldName       = "name"
	FieldTitle      = "title"
	FieldTranscript = "transcript"
	FieldMessages   = "messages"
	FieldContent    = "content"
	FieldSeconds    = "seconds"
)

// Limits on client-supplied text.
const (
	MinPasswordLen   = 8
	MaxNameRunes     = 100
	MaxTitleRunes    = 200
	MaxTranscriptLen = 1 << 20
	MaxMessages      = 2000
)

// BrainstormValidator validates auth, conversation, note, usage and AI
// request payloads. Both values and pointers are accepted.
type BrainstormValidator struct{}

func NewBrainstormValidator() Validator {
	return &BrainstormValidator{}
}

func (v *BrainstormValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(value, fields...)
	case *models.User:
		return v.validateUser(*value, fields...)

	case models.ConversationInput:
		return v.validateConversation(value, fields...)
	case *models.ConversationInput:
		return v.validateConversation(*value, fields...)

	case models.ConversationTitleUpdate:
		return checkTitle(value.Title, false)
	case *models.ConversationTitleUpdate:
		return checkTitle(value.Title, false)

	case models.Note:
		return v.validateNote(value, fields...)
	case *models.Note:
		return v.validateNote(*value, fields...)

	case models.UsageReport:
		return v.validateUsage(value)
	case *models.UsageReport:
		return v.validateUsage(*value)

	case models.SummarizeRequest:
		return checkTranscript(value.Transcript)
	case *models.SummarizeRequest:
		return checkTranscript(value.Transcript)

	case models.ChatRequest:
		return v.validateChat(value)
	case *models.ChatRequest:
		return v.validateChat(*value)

	default:
		return ErrUnsupportedType
	}
}

// validateUser checks register payloads. Login passes FieldEmail and
// FieldPassword only.
func (v *BrainstormValidator) validateUser(user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldName}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			addr, err := mail.ParseAddress(user.Email)
			if err != nil || addr.Address != user.Email {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if utf8.RuneCountInString(user.Password) < MinPasswordLen {
				return ErrInvalidPassword
			}
		case FieldName:
			if utf8.RuneCountInString(user.Name) > MaxNameRunes {
				return ErrInvalidName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *BrainstormValidator) validateConversation(c models.ConversationInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldTranscript, FieldMessages}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if err := checkTitle(c.Title, true); err != nil {
				return err
			}
		case FieldTranscript:
			if len(c.Transcript) > MaxTranscriptLen {
				return ErrTranscriptTooLong
			}
		case FieldMessages:
			if err := checkMessages(c.Messages); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	if strings.TrimSpace(c.Transcript) == "" && len(c.Messages) == 0 {
		return ErrEmptyConversation
	}

	return nil
}

func (v *BrainstormValidator) validateNote(n models.Note, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldContent}
	}

	for _, f := range fields {
		switch f {
		case FieldContent:
			if strings.TrimSpace(n.Content) == "" {
				return ErrEmptyContent
			}
			if len(n.Content)+len(n.ActionItems) > MaxTranscriptLen {
				return ErrTranscriptTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *BrainstormValidator) validateUsage(r models.UsageReport) error {
	if r.Seconds <= 0 {
		return ErrInvalidSeconds
	}
	return nil
}

func (v *BrainstormValidator) validateChat(r models.ChatRequest) error {
	if len(r.Messages) == 0 {
		return ErrNoMessages
	}
	return checkMessages(r.Messages)
}

// checkTitle allows an empty title only when the server may derive one.
func checkTitle(title string, allowEmpty bool) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" && !allowEmpty {
		return ErrInvalidTitle
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleRunes {
		return ErrInvalidTitle
	}
	return nil
}

func checkTranscript(transcript string) error {
	if strings.TrimSpace(transcript) == "" {
		return ErrEmptyTranscript
	}
	if len(transcript) > MaxTranscriptLen {
		return ErrTranscriptTooLong
	}
	return nil
}

func checkMessages(messages []models.Message) error {
	if len(messages) > MaxMessages {
		return ErrTooManyMessages
	}

	for i, m := range messages {
		switch m.Role {
		case models.RoleUser, models.RoleAssistant, models.RoleSystem:
		default:
			return fmt.Errorf("message %d: %w", i, ErrInvalidRole)
		}
		if strings.TrimSpace(m.Content) == "" {
			return fmt.Errorf("message %d: %w", i, ErrEmptyMessage)
		}
	}

	return nil
}
