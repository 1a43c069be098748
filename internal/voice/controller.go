// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package voice

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/models"
)

const (
	DefaultConnectTimeout = 20 * time.Second
	DefaultInstructions   = "You are a brainstorming partner. Keep answers short, ask one follow-up question at a time, and help the user turn ideas into concrete next steps."

	fallbackSummary = "Summary is not available for this conversation."
	titleMaxRunes   = 60
)

// Config tunes a [Controller].
type Config struct {
	ConnectTimeout time.Duration
	Instructions   string
	Session        SessionSettings
}

// Dependencies are the collaborators of a [Controller].
type Dependencies struct {
	Tokens     TokenIssuer
	Dialer     Dialer
	Microphone MediaSource
	Playback   Playback
	Saver      ConversationSaver
	Usage      UsageReporter
	Summarizer Summarizer
}

// Controller owns one voice [Session] and performs its side effects.
//
// All state changes go through [Transition] under mu. Every connection
// attempt gets a new generation number; events carrying an older generation
// come from a detached transport or a stale timer and are dropped.
type Controller struct {
	cfg  Config
	deps Dependencies
	now  func() time.Time
	log  *logger.Logger

	mu           sync.Mutex
	session      Session
	generation   uint64
	transport    Transport
	connectTimer *time.Timer
	micCancel    context.CancelFunc
	saving       bool
	disposed     bool
	subscribers  []chan Session
}

// NewController creates an idle controller. A zero cfg.ConnectTimeout
// selects [DefaultConnectTimeout], and a nil deps.Playback plays nothing.
//
// The controller does nothing until Start. Close must be called when the
// controller is no longer needed; it is then unusable.
//
// Example usage:
//
//	c := voice.NewController(voice.Config{Instructions: prompt}, deps, log)
//	defer c.Close()
//	updates := c.Subscribe()
//	if err := c.Start(ctx); err != nil {
//	    // the session is in StatusError, offer Retry
//	}
//	result, err := c.Save(ctx, "")
func NewController(cfg Config, deps Dependencies, log *logger.Logger) *Controller {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if strings.TrimSpace(cfg.Instructions) == "" {
		cfg.Instructions = DefaultInstructions
	}
	if deps.Playback == nil {
		deps.Playback = NopPlayback{}
	}

	return &Controller{
		cfg:  cfg,
		deps: deps,
		now:  time.Now,
		log:  log,
	}
}

// SetClock replaces the time source. Intended for tests.
func (c *Controller) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Snapshot returns a copy of the current session.
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Clone()
}

// Subscribe returns a channel that receives the latest session after every
// change. Slow readers only miss intermediate snapshots. The channel is
// closed by Close.
func (c *Controller) Subscribe() <-chan Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Session, 1)
	if c.disposed {
		close(ch)
		return ch
	}
	c.subscribers = append(c.subscribers, ch)
	ch <- c.session.Clone()
	return ch
}

// Start connects a new realtime session: it obtains a credential, starts the
// microphone and dials the transport. Any failure leaves the session in
// StatusError with an [ErrConnection]; nothing is retried automatically.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrDisposed
	}
	c.applyLocked(StartRequested{})
	if c.session.Status != StatusConnecting {
		status := c.session.Status
		c.mu.Unlock()
		return fmt.Errorf("%w: status %s", ErrSessionBusy, status)
	}
	c.generation++
	gen := c.generation
	c.connectTimer = time.AfterFunc(c.cfg.ConnectTimeout, func() {
		c.dispatch(gen, ConnectTimeout{})
	})
	c.mu.Unlock()

	c.log.Debug().Uint64("generation", gen).Msg("starting voice session")

	token, err := c.deps.Tokens.IssueRealtimeToken(ctx)
	if err != nil {
		return c.connectFailed(gen, fmt.Errorf("error issuing realtime token: %w", err))
	}

	micCtx, cancelMic := context.WithCancel(context.Background())
	chunks, err := c.deps.Microphone.Start(micCtx)
	if err != nil {
		cancelMic()
		return c.connectFailed(gen, fmt.Errorf("%w: %w", ErrMicrophoneDenied, err))
	}
	if !c.attach(gen, func() { c.micCancel = cancelMic }) {
		cancelMic()
		return c.startAborted()
	}

	transport, err := c.deps.Dialer.Dial(ctx, token)
	if err != nil {
		return c.connectFailed(gen, fmt.Errorf("error dialing realtime transport: %w", err))
	}
	if !c.attach(gen, func() { c.transport = transport }) {
		_ = transport.Close()
		return c.startAborted()
	}

	go c.pump(gen, transport)
	go c.streamAudio(transport, chunks)

	return nil
}

// Retry tears the current session down and starts a new connection.
func (c *Controller) Retry(ctx context.Context) error {
	c.Teardown()
	return c.Start(ctx)
}

// Teardown releases the connection, media and playback and returns the
// session to idle. Messages are kept. Calling it repeatedly is harmless.
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyLocked(TeardownRequested{})
}

// Close tears the session down and disposes the controller. Results of an
// in-flight Save are not applied afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.applyLocked(TeardownRequested{})
	c.disposed = true
	for _, ch := range c.subscribers {
		close(ch)
	}
	c.subscribers = nil
	_ = c.deps.Playback.Close()
}

// Dispatch feeds an event that did not come from the transport, for example
// a Finalize from the UI.
func (c *Controller) Dispatch(ev Event) {
	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()
	c.dispatch(gen, ev)
}

// Save finishes the conversation: it closes open speaking intervals, stores
// the transcript, reports usage rounded up to whole minutes, asks for a
// summary and tears the connection down.
//
// A storage failure returns [ErrPersistence] and keeps the session as it was
// so Save can be called again. Usage and summary failures are only logged.
//
// Returns:
//   - the stored result, also kept in Session.Result;
//   - [ErrNothingToSave] when no user or assistant message was recorded;
//   - [ErrSaveInProgress] while another Save runs;
//   - [ErrDisposed] after Close. A Save that was running when Close was
//     called returns its result but leaves the session untouched.
func (c *Controller) Save(ctx context.Context, title string) (*SaveResult, error) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil, ErrDisposed
	}
	if c.saving {
		c.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	c.applyLocked(Finalize{At: c.now()})
	snapshot := c.session.Clone()
	c.saving = true
	now := c.now()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.saving = false
		c.mu.Unlock()
	}()

	messages := snapshot.ConversationMessages()
	if len(messages) == 0 {
		return nil, ErrNothingToSave
	}

	transcript := FormatTranscript(messages)
	if strings.TrimSpace(title) == "" {
		title = defaultTitle(messages, now)
	}

	id, err := c.deps.Saver.SaveConversation(ctx, models.ConversationInput{
		Title:      title,
		Transcript: transcript,
		Messages:   messages,
	})
	if err != nil {
		c.log.Err(err).Msg("error saving conversation")
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	seconds := RoundUpToMinute(snapshot.TotalSeconds())
	if seconds > 0 {
		if err = c.deps.Usage.ReportUsage(ctx, seconds); err != nil {
			c.log.Warn().Err(err).Int64("seconds", seconds).Msg("error reporting usage")
		}
	}

	summary, err := c.deps.Summarizer.Summarize(ctx, id, transcript)
	if err != nil {
		c.log.Warn().Err(err).Str("conversation_id", id).Msg("error summarizing conversation")
		summary = models.Summary{Summary: fallbackSummary}
	}

	result := SaveResult{
		ConversationID: id,
		Title:          title,
		Transcript:     transcript,
		Messages:       messages,
		Seconds:        seconds,
		Summary:        summary,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return &result, nil
	}
	c.applyLocked(TeardownRequested{})
	c.applyLocked(Saved{Result: result})

	return &result, nil
}

// RoundUpToMinute converts seconds to whole minutes rounded up, expressed in
// seconds.
func RoundUpToMinute(seconds float64) int64 {
	if seconds <= 0 {
		return 0
	}
	return int64(math.Ceil(seconds/60)) * 60
}

func (c *Controller) dispatch(gen uint64, ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || gen != c.generation {
		return
	}
	c.applyLocked(ev)
}

// attach stores a resource if gen is still the current attempt.
func (c *Controller) attach(gen uint64, set func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || gen != c.generation || c.session.Status != StatusConnecting {
		return false
	}
	set()
	return true
}

func (c *Controller) connectFailed(gen uint64, err error) error {
	c.log.Err(err).Msg("voice session failed to connect")
	c.dispatch(gen, ConnectFailed{Err: err})
	return fmt.Errorf("%w: %w", ErrConnection, err)
}

// startAborted is returned when teardown, a timeout or Close won the race
// against an in-flight Start.
func (c *Controller) startAborted() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.LastError != nil {
		return c.session.LastError
	}
	if c.disposed {
		return ErrDisposed
	}
	return fmt.Errorf("%w: start was cancelled", ErrConnection)
}

func (c *Controller) applyLocked(ev Event) {
	next, effects := Transition(c.session, ev)
	if next.Status != c.session.Status {
		c.log.Debug().
			Str("event", EventName(ev)).
			Str("from", c.session.Status.String()).
			Str("to", next.Status.String()).
			Msg("voice session transition")
	}
	c.session = next
	for _, effect := range effects {
		c.runEffectLocked(effect)
	}
	c.publishLocked()
}

func (c *Controller) runEffectLocked(effect Effect) {
	switch e := effect.(type) {
	case SendInstructions:
		if c.transport == nil {
			return
		}
		if err := c.transport.SendInstructions(c.cfg.Instructions); err != nil {
			c.log.Err(err).Msg("error sending instructions")
		}
	case SendSessionUpdate:
		if c.transport == nil {
			return
		}
		if err := c.transport.SendSessionUpdate(c.cfg.Session); err != nil {
			c.log.Err(err).Msg("error sending session update")
		}
	case CancelConnectTimer:
		c.stopTimerLocked()
	case Play:
		c.deps.Playback.Write(e.Data)
	case Release:
		c.releaseLocked()
	}
}

// releaseLocked detaches and closes everything owned by the current attempt.
func (c *Controller) releaseLocked() {
	c.generation++
	c.stopTimerLocked()
	if c.micCancel != nil {
		c.micCancel()
		c.micCancel = nil
	}
	if c.transport != nil {
		t := c.transport
		c.transport = nil
		if err := t.Close(); err != nil {
			c.log.Warn().Err(err).Msg("error closing realtime transport")
		}
	}
	c.deps.Playback.Pause()
}

func (c *Controller) stopTimerLocked() {
	if c.connectTimer != nil {
		c.connectTimer.Stop()
		c.connectTimer = nil
	}
}

func (c *Controller) publishLocked() {
	snapshot := c.session.Clone()
	for _, ch := range c.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
}

// pump forwards transport events until the transport ends.
func (c *Controller) pump(gen uint64, t Transport) {
	for ev := range t.Events() {
		c.dispatch(gen, ev)
	}

	err := t.Err()
	if err != nil && !errors.Is(err, ErrTransportClosed) {
		c.dispatch(gen, TransportError{Err: err})
		return
	}
	c.dispatch(gen, Disconnected{})
}

func (c *Controller) streamAudio(t Transport, chunks <-chan []byte) {
	for chunk := range chunks {
		if err := t.SendAudio(chunk); err != nil {
			if !errors.Is(err, ErrTransportClosed) {
				c.log.Err(err).Msg("error streaming microphone audio")
			}
			return
		}
	}
}

func defaultTitle(messages []models.Message, now time.Time) string {
	for _, m := range messages {
		if m.Role != models.RoleUser {
			continue
		}
		runes := []rune(strings.Join(strings.Fields(m.Content), " "))
		if len(runes) > titleMaxRunes {
			return string(runes[:titleMaxRunes]) + "…"
		}
		return string(runes)
	}
	return "Brainstorm " + now.Format("2006-01-02 15:04")
}
