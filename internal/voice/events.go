// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package voice

import "time"

// Event is anything that can move a [Session]: realtime transport messages,
// timers and user commands. The set is closed by the unexported marker.
type Event interface {
	voiceEvent() string
}

type (
	// StartRequested begins a connection attempt.
	StartRequested struct{}

	// ChannelOpen is reported by the transport once the control channel is usable.
	ChannelOpen struct{}

	// SessionCreated is the realtime API acknowledging the session.
	SessionCreated struct{}

	// SpeechStarted is the server's voice activity detector hearing the user
	// start to speak. At opens the user's speaking interval.
	SpeechStarted struct {
		ItemID string
		At     time.Time
	}

	// SpeechStopped closes the user's speaking interval at At and flushes the
	// partial transcript of ItemID.
	SpeechStopped struct {
		ItemID string
		At     time.Time
	}

	// InputTranscriptionDelta is partial text of the user's current utterance.
	InputTranscriptionDelta struct {
		ItemID string
		Delta  string
	}

	// InputTranscriptionCompleted is the final text of a user utterance.
	InputTranscriptionCompleted struct {
		ItemID     string
		Transcript string
	}

	// AssistantTranscriptDelta is partial text of the assistant reply.
	AssistantTranscriptDelta struct {
		ItemID string
		Delta  string
	}

	// AssistantTranscriptDone is the final text of the assistant reply. An
	// empty Transcript falls back to the collected deltas.
	AssistantTranscriptDone struct {
		ItemID     string
		Transcript string
	}

	// AudioStarted opens the assistant's speaking interval at At.
	AudioStarted struct {
		ItemID string
		At     time.Time
	}

	// AudioStopped closes the assistant's speaking interval at At.
	AudioStopped struct {
		ItemID string
		At     time.Time
	}

	// AssistantAudio carries PCM16 audio of the assistant reply.
	AssistantAudio struct {
		Data []byte
	}

	// ResponseDone ends one assistant response.
	ResponseDone struct{}

	// TransportError is an error reported by the realtime service or the
	// transport itself.
	TransportError struct {
		Err error
	}

	// Disconnected means the transport closed.
	Disconnected struct {
		Err error
	}

	// ConnectFailed reports a failed token request, microphone start or dial.
	ConnectFailed struct {
		Err error
	}

	// ConnectTimeout fires when the channel did not open in time.
	ConnectTimeout struct{}

	// Finalize closes any open speaking interval at At.
	Finalize struct {
		At time.Time
	}

	// TeardownRequested releases the connection and returns to idle.
	TeardownRequested struct{}

	// Saved records the result of a successful save.
	Saved struct {
		Result SaveResult
	}
)

func (StartRequested) voiceEvent() string              { return "start" }
func (ChannelOpen) voiceEvent() string                 { return "channel_open" }
func (SessionCreated) voiceEvent() string              { return "session_created" }
func (SpeechStarted) voiceEvent() string               { return "speech_started" }
func (SpeechStopped) voiceEvent() string               { return "speech_stopped" }
func (InputTranscriptionDelta) voiceEvent() string     { return "input_transcription_delta" }
func (InputTranscriptionCompleted) voiceEvent() string { return "input_transcription_completed" }
func (AssistantTranscriptDelta) voiceEvent() string    { return "assistant_transcript_delta" }
func (AssistantTranscriptDone) voiceEvent() string     { return "assistant_transcript_done" }
func (AudioStarted) voiceEvent() string                { return "audio_started" }
func (AudioStopped) voiceEvent() string                { return "audio_stopped" }
func (AssistantAudio) voiceEvent() string              { return "assistant_audio" }
func (ResponseDone) voiceEvent() string                { return "response_done" }
func (TransportError) voiceEvent() string              { return "transport_error" }
func (Disconnected) voiceEvent() string                { return "disconnected" }
func (ConnectFailed) voiceEvent() string               { return "connect_failed" }
func (ConnectTimeout) voiceEvent() string              { return "connect_timeout" }
func (Finalize) voiceEvent() string                    { return "finalize" }
func (TeardownRequested) voiceEvent() string           { return "teardown" }
func (Saved) voiceEvent() string                       { return "saved" }

// EventName returns the stable name of ev, used in logs.
func EventName(ev Event) string {
	if ev == nil {
		return ""
	}
	return ev.voiceEvent()
}

// Effect is work the controller performs after a transition.
type Effect interface {
	voiceEffect()
}

type (
	// SendInstructions seeds the assistant with the system instruction.
	SendInstructions struct{}
	// SendSessionUpdate enables user speech transcription on the session.
	SendSessionUpdate struct{}
	// CancelConnectTimer stops the pending connect timeout.
	CancelConnectTimer struct{}
	// Release stops media, closes the transport and pauses playback.
	Release struct{}
	// Play queues assistant audio for playback.
	Play struct {
		Data []byte
	}
)

func (SendInstructions) voiceEffect()   {}
func (SendSessionUpdate) voiceEffect()  {}
func (CancelConnectTimer) voiceEffect() {}
func (Release) voiceEffect()            {}
func (Play) voiceEffect()               {}
