// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package voice

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/models"
)

const (
	defaultRealtimeURL = "wss://api.openai.com/v1/realtime"
	defaultDialTimeout = 15 * time.Second
	eventBuffer        = 256
	closeGracePeriod   = 2 * time.Second
)

// WebsocketDialer connects to the OpenAI realtime API over a websocket.
type WebsocketDialer struct {
	URL    string
	dialer *websocket.Dialer
	now    func() time.Time
	log    *logger.Logger
}

// NewWebsocketDialer returns a [Dialer]. An empty rawURL selects the public
// realtime endpoint.
func NewWebsocketDialer(rawURL string, log *logger.Logger) *WebsocketDialer {
	if strings.TrimSpace(rawURL) == "" {
		rawURL = defaultRealtimeURL
	}
	return &WebsocketDialer{
		URL:    rawURL,
		dialer: websocket.DefaultDialer,
		now:    time.Now,
		log:    log,
	}
}

// Dial implements [Dialer].
func (d *WebsocketDialer) Dial(ctx context.Context, token models.RealtimeToken) (Transport, error) {
	endpoint, err := url.Parse(d.URL)
	if err != nil {
		return nil, fmt.Errorf("error parsing realtime url: %w", err)
	}
	if token.Model != "" {
		q := endpoint.Query()
		q.Set("model", token.Model)
		endpoint.RawQuery = q.Encode()
	}

	headers := make(http.Header)
	headers.Set("Authorization", "Bearer "+token.Token)
	headers.Set("OpenAI-Beta", "realtime=v1")

	dialCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, defaultDialTimeout)
		defer cancel()
	}

	conn, resp, err := d.dialer.DialContext(dialCtx, endpoint.String(), headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket dial failed (status %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}

	t := &websocketTransport{
		conn:    conn,
		events:  make(chan Event, eventBuffer),
		done:    make(chan struct{}),
		decoder: newServerEventDecoder(d.now),
		log:     d.log,
	}
	t.emit(ChannelOpen{})
	go t.readLoop()

	return t, nil
}

type websocketTransport struct {
	conn    *websocket.Conn
	events  chan Event
	done    chan struct{}
	decoder *serverEventDecoder
	log     *logger.Logger

	writeMu   sync.Mutex
	closeOnce sync.Once
	closed    atomic.Bool

	errMu sync.Mutex
	err   error
}

func (t *websocketTransport) Events() <-chan Event {
	return t.events
}

func (t *websocketTransport) SendInstructions(text string) error {
	return t.sendJSON(clientEvent{
		Type: "conversation.item.create",
		Item: &clientItem{
			Type: "message",
			Role: string(models.RoleSystem),
			Content: []clientContent{
				{Type: "input_text", Text: text},
			},
		},
	})
}

func (t *websocketTransport) SendSessionUpdate(settings SessionSettings) error {
	model := settings.TranscriptionModel
	if model == "" {
		model = "whisper-1"
	}
	session := &clientSession{
		InputAudioTranscription: &transcriptionSettings{Model: model},
		TurnDetection:           &turnDetection{Type: "server_vad"},
		Voice:                   settings.Voice,
	}
	return t.sendJSON(clientEvent{Type: "session.update", Session: session})
}

func (t *websocketTransport) SendAudio(pcm []byte) error {
	return t.sendJSON(clientEvent{
		Type:  "input_audio_buffer.append",
		Audio: base64.StdEncoding.EncodeToString(pcm),
	})
}

// sendJSON writes one client event. Close may run between the first check
// and the lock, so closed is checked again while holding writeMu.
func (t *websocketTransport) sendJSON(v any) error {
	if t.closed.Load() {
		return ErrTransportClosed
	}
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if t.closed.Load() {
		return ErrTransportClosed
	}
	if err := t.conn.WriteJSON(v); err != nil {
		if t.closed.Load() {
			return ErrTransportClosed
		}
		return fmt.Errorf("error writing realtime event: %w", err)
	}
	return nil
}

func (t *websocketTransport) Err() error {
	t.errMu.Lock()
	defer t.errMu.Unlock()
	return t.err
}

func (t *websocketTransport) Close() error {
	t.closeOnce.Do(func() {
		t.closed.Store(true)
		t.setErr(ErrTransportClosed)
		t.writeMu.Lock()
		_ = t.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeGracePeriod))
		t.writeMu.Unlock()
		_ = t.conn.Close()
	})
	<-t.done
	return nil
}

func (t *websocketTransport) setErr(err error) {
	if err == nil {
		return
	}
	t.errMu.Lock()
	defer t.errMu.Unlock()
	if t.err == nil {
		t.err = err
	}
}

func (t *websocketTransport) readLoop() {
	defer close(t.done)
	defer close(t.events)

	for {
		messageType, data, err := t.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return
			}
			t.setErr(err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		events, err := t.decoder.decode(data)
		if err != nil {
			t.log.Warn().Err(err).Msg("skipping undecodable realtime event")
			continue
		}
		for _, ev := range events {
			t.emit(ev)
		}
	}
}

func (t *websocketTransport) emit(ev Event) {
	select {
	case t.events <- ev:
	default:
		t.log.Warn().Str("event", EventName(ev)).Msg("realtime event dropped, consumer is too slow")
	}
}

type clientEvent struct {
	Type    string         `json:"type"`
	Item    *clientItem    `json:"item,omitempty"`
	Session *clientSession `json:"session,omitempty"`
	Audio   string         `json:"audio,omitempty"`
}

type clientItem struct {
	Type    string          `json:"type"`
	Role    string          `json:"role"`
	Content []clientContent `json:"content"`
}

type clientContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type clientSession struct {
	InputAudioTranscription *transcriptionSettings `json:"input_audio_transcription,omitempty"`
	TurnDetection           *turnDetection         `json:"turn_detection,omitempty"`
	Voice                   string                 `json:"voice,omitempty"`
}

type transcriptionSettings struct {
	Model string `json:"model"`
}

type turnDetection struct {
	Type string `json:"type"`
}

type serverEvent struct {
	Type       string `json:"type"`
	ItemID     string `json:"item_id"`
	Delta      string `json:"delta"`
	Transcript string `json:"transcript"`
	Error      *struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// serverEventDecoder maps realtime server messages to [Event]s. It remembers
// which assistant items are producing audio so that the first audio chunk of
// an item is reported as [AudioStarted].
type serverEventDecoder struct {
	now     func() time.Time
	playing map[string]bool
}

func newServerEventDecoder(now func() time.Time) *serverEventDecoder {
	return &serverEventDecoder{now: now, playing: make(map[string]bool)}
}

func (d *serverEventDecoder) decode(data []byte) ([]Event, error) {
	var msg serverEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("error decoding realtime event: %w", err)
	}

	switch msg.Type {
	case "session.created":
		return []Event{SessionCreated{}}, nil
	case "input_audio_buffer.speech_started":
		return []Event{SpeechStarted{ItemID: msg.ItemID, At: d.now()}}, nil
	case "input_audio_buffer.speech_stopped":
		return []Event{SpeechStopped{ItemID: msg.ItemID, At: d.now()}}, nil
	case "conversation.item.input_audio_transcription.delta":
		return []Event{InputTranscriptionDelta{ItemID: msg.ItemID, Delta: msg.Delta}}, nil
	case "conversation.item.input_audio_transcription.completed":
		return []Event{InputTranscriptionCompleted{ItemID: msg.ItemID, Transcript: msg.Transcript}}, nil
	case "response.audio_transcript.delta":
		return []Event{AssistantTranscriptDelta{ItemID: msg.ItemID, Delta: msg.Delta}}, nil
	case "response.audio_transcript.done":
		return []Event{AssistantTranscriptDone{ItemID: msg.ItemID, Transcript: msg.Transcript}}, nil
	case "response.audio.delta":
		pcm, err := base64.StdEncoding.DecodeString(msg.Delta)
		if err != nil {
			return nil, fmt.Errorf("error decoding assistant audio: %w", err)
		}
		var events []Event
		if !d.playing[msg.ItemID] {
			d.playing[msg.ItemID] = true
			events = append(events, AudioStarted{ItemID: msg.ItemID, At: d.now()})
		}
		return append(events, AssistantAudio{Data: pcm}), nil
	case "response.audio.done":
		if !d.playing[msg.ItemID] {
			return nil, nil
		}
		delete(d.playing, msg.ItemID)
		return []Event{AudioStopped{ItemID: msg.ItemID, At: d.now()}}, nil
	case "output_audio_buffer.started":
		return []Event{AudioStarted{At: d.now()}}, nil
	case "output_audio_buffer.stopped", "output_audio_buffer.cleared":
		return []Event{AudioStopped{At: d.now()}}, nil
	case "response.done":
		return []Event{ResponseDone{}}, nil
	case "error":
		message := "realtime api error"
		if msg.Error != nil && msg.Error.Message != "" {
			message = msg.Error.Message
		}
		return []Event{TransportError{Err: errors.New(message)}}, nil
	}

	return nil, nil
}
