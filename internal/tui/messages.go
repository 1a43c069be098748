package tui

import (
	"github.com/MKhiriev/go-brainstorm/internal/voice"
	"github.com/MKhiriev/go-brainstorm/models"
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateTo switches the active page of [RootModel]. Payload, when set, is
// delivered to the new page as the next message.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult finishes the login flow when Err is nil.
type LoginResult struct {
	Email string
	Err   error
}

// RegisterResult is produced by the register command.
type RegisterResult struct {
	Email string
	Err   error
}

// RegisterSuccessNotice is shown by the menu after a registration.
type RegisterSuccessNotice struct {
	Email string
}

type conversationsLoadedMsg struct {
	items []models.Conversation
	usage models.UsageSummary
	err   error
}

type notesLoadedMsg struct {
	items []models.Note
	err   error
}

type conversationRenamedMsg struct {
	err error
}

type conversationDeletedMsg struct {
	err error
}

// Voice messages carry the controller that produced them. A message from a
// controller other than the one on screen is dropped.

type sessionUpdateMsg struct {
	controller VoiceController
	session    voice.Session
	closed     bool
}

type voiceStartedMsg struct {
	controller VoiceController
	err        error
}

type voiceSavedMsg struct {
	controller VoiceController
	result     *voice.SaveResult
	err        error
}

type copiedMsg struct {
	what string
	err  error
}
