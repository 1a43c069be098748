// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package voice

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-brainstorm/models"
)

// Transition applies ev to s and returns the next session and the effects to
// run. It never modifies s and performs no I/O.
func Transition(s Session, ev Event) (Session, []Effect) {
	next := s.Clone()

	switch e := ev.(type) {
	case StartRequested:
		if !next.Status.startable() || next.Connected {
			return next, nil
		}
		if next.Status == StatusSaved {
			next.Messages = nil
			next.turns = nil
			next.Transcript = ""
			next.Result = nil
		}
		next.Status = StatusConnecting
		next.LastError = nil
		return next, nil

	case ChannelOpen:
		if next.Status != StatusConnecting {
			return next, nil
		}
		next.Status = StatusConnected
		next.Connected = true
		return next, []Effect{CancelConnectTimer{}, SendInstructions{}}

	case SessionCreated:
		if !next.Connected {
			return next, nil
		}
		return next, []Effect{SendSessionUpdate{}}

	case SpeechStarted:
		if !next.Connected {
			return next, nil
		}
		next.Status = StatusUserSpeaking
		if next.UserSpeakingSince == nil {
			next.UserSpeakingSince = timePtr(e.At)
		}
		next.turnFor(e.ItemID)
		return next, nil

	case SpeechStopped:
		next.UserSeconds += closeInterval(&next.UserSpeakingSince, e.At)
		if !next.Connected {
			return next, nil
		}
		next.Status = StatusProcessing
		if i := next.findTurn(e.ItemID); i >= 0 {
			next.flushPartial(i)
		}
		return next, nil

	case InputTranscriptionDelta:
		i := next.turnFor(e.ItemID)
		next.turns[i].partial += e.Delta
		return next, nil

	case InputTranscriptionCompleted:
		i := next.turnFor(e.ItemID)
		next.turns[i].partial = ""
		next.setUserText(i, e.Transcript)
		return next, nil

	case AssistantTranscriptDelta:
		next.PartialAssistant += e.Delta
		return next, nil

	case AssistantTranscriptDone:
		text := e.Transcript
		if strings.TrimSpace(text) == "" {
			text = next.PartialAssistant
		}
		next.PartialAssistant = ""
		next.appendMessage(models.RoleAssistant, text)
		return next, nil

	case AudioStarted:
		if !next.Connected {
			return next, nil
		}
		next.Status = StatusAISpeaking
		if next.AssistantSpeakingSince == nil {
			next.AssistantSpeakingSince = timePtr(e.At)
		}
		return next, nil

	case AudioStopped:
		next.AssistantSeconds += closeInterval(&next.AssistantSpeakingSince, e.At)
		if next.Connected && next.Status == StatusAISpeaking {
			next.Status = StatusIdle
		}
		return next, nil

	case AssistantAudio:
		if !next.Connected || len(e.Data) == 0 {
			return next, nil
		}
		return next, []Effect{Play{Data: e.Data}}

	case ResponseDone:
		if next.Connected && next.Status == StatusProcessing {
			next.Status = StatusIdle
		}
		return next, nil

	case TransportError:
		switch {
		case next.Connected:
			return next.fail(StatusError, fmt.Errorf("%w: %w", ErrControlChannel, orErr(e.Err, ErrChannelClosed)))
		case next.Status == StatusConnecting:
			return next.fail(StatusError, fmt.Errorf("%w: %w", ErrConnection, orErr(e.Err, ErrChannelClosed)))
		}
		return next, nil

	case Disconnected:
		switch {
		case next.Connected:
			return next.fail(StatusDisconnected, fmt.Errorf("%w: %w", ErrControlChannel, orErr(e.Err, ErrChannelClosed)))
		case next.Status == StatusConnecting:
			return next.fail(StatusError, fmt.Errorf("%w: %w", ErrConnection, orErr(e.Err, ErrChannelClosed)))
		}
		return next, nil

	case ConnectFailed:
		if next.Status != StatusConnecting && !next.Connected {
			return next, nil
		}
		return next.fail(StatusError, fmt.Errorf("%w: %w", ErrConnection, orErr(e.Err, ErrConnection)))

	case ConnectTimeout:
		if next.Status != StatusConnecting {
			return next, nil
		}
		return next.fail(StatusError, fmt.Errorf("%w: %w", ErrConnection, ErrConnectTimeout))

	case Finalize:
		next.UserSeconds += closeInterval(&next.UserSpeakingSince, e.At)
		next.AssistantSeconds += closeInterval(&next.AssistantSpeakingSince, e.At)
		return next, nil

	case TeardownRequested:
		next.reset()
		next.Status = StatusIdle
		return next, []Effect{Release{}}

	case Saved:
		r := e.Result
		next.Result = &r
		next.Status = StatusSaved
		return next, nil
	}

	return next, nil
}

func (s *Session) fail(status Status, err error) (Session, []Effect) {
	s.reset()
	s.Status = status
	s.LastError = err
	return *s, []Effect{Release{}}
}

// reset drops everything tied to the live connection. Messages stay.
func (s *Session) reset() {
	s.Connected = false
	s.UserSeconds = 0
	s.AssistantSeconds = 0
	s.UserSpeakingSince = nil
	s.AssistantSpeakingSince = nil
	s.PartialAssistant = ""
	for i := range s.turns {
		s.turns[i].partial = ""
	}
}

func (s *Session) findTurn(itemID string) int {
	if itemID == "" {
		return len(s.turns) - 1
	}
	for i := len(s.turns) - 1; i >= 0; i-- {
		if s.turns[i].itemID == itemID {
			return i
		}
	}
	return -1
}

// turnFor returns the turn of itemID, creating it when unknown. An empty id
// refers to the latest turn.
func (s *Session) turnFor(itemID string) int {
	if i := s.findTurn(itemID); i >= 0 {
		return i
	}
	s.turns = append(s.turns, userTurn{itemID: itemID, message: -1})
	return len(s.turns) - 1
}

func (s *Session) flushPartial(i int) {
	t := &s.turns[i]
	if t.message >= 0 || strings.TrimSpace(t.partial) == "" {
		return
	}
	t.message = s.appendMessage(models.RoleUser, t.partial)
	t.partial = ""
}

// setUserText replaces the message of turn i, or appends one.
func (s *Session) setUserText(i int, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	t := &s.turns[i]
	if t.message >= 0 {
		s.Messages[t.message].Content = text
		s.Transcript = FormatTranscript(s.Messages)
		return
	}
	t.message = s.appendMessage(models.RoleUser, text)
}

// appendMessage adds a non-empty message and returns its index, or -1.
func (s *Session) appendMessage(role models.Role, text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return -1
	}
	s.Messages = append(s.Messages, models.Message{Role: role, Content: text})
	s.Transcript = FormatTranscript(s.Messages)
	return len(s.Messages) - 1
}

// closeInterval ends the interval started at *since and returns its length in
// seconds. Closing an interval that is not open adds nothing.
func closeInterval(since **time.Time, end time.Time) float64 {
	if *since == nil {
		return 0
	}
	d := end.Sub(**since).Seconds()
	*since = nil
	if d < 0 {
		return 0
	}
	return d
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func orErr(err, fallback error) error {
	if err != nil {
		return err
	}
	return fallback
}
