// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package voice

// Status is the connection status of a voice session.
type Status int

const (
	StatusIdle Status = iota
	StatusConnecting
	StatusConnected
	StatusUserSpeaking
	StatusAISpeaking
	StatusProcessing
	StatusDisconnected
	StatusError
	StatusSaved
)

var statusNames = map[Status]string{
	StatusIdle:         "idle",
	StatusConnecting:   "connecting",
	StatusConnected:    "connected",
	StatusUserSpeaking: "user_speaking",
	StatusAISpeaking:   "ai_speaking",
	StatusProcessing:   "processing",
	StatusDisconnected: "disconnected",
	StatusError:        "error",
	StatusSaved:        "saved",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// startable reports whether a new connection attempt may begin from s.
func (s Status) startable() bool {
	switch s {
	case StatusIdle, StatusDisconnected, StatusError, StatusSaved:
		return true
	default:
		return false
	}
}
